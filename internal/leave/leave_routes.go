package leave

import (
	"time"

	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	idempotencyTTL time.Duration,
	jwtSecret string,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaverequest")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "create"),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb, idempotencyTTL),
			handler.Create,
		)

		leaves.GET("/employee/:id",
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetByEmployee,
		)

		// the handler scopes the list to the caller's reports
		leaves.GET("/pending-approvals",
			middleware.RBACAuthorize(rbacService, "leave_request", "read"),
			handler.GetPendingApprovals,
		)

		leaves.POST("/approve",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_request", "approve"),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb, idempotencyTTL),
			handler.Approve,
		)
	}
}
