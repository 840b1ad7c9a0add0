package middleware

import (
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			abortWith(c, err)
			return
		}

		if !allowed {
			zap.L().Named("middleware.rbac").Debug("rbac denied",
				zap.String("role", role),
				zap.String("required", resource+":"+action),
			)
			abortWith(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
