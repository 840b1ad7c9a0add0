package app

import (
	"fmt"

	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/mediator"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildPipeline registers every command and query handler behind the logging
// and validation behaviors, and fails when a request type the HTTP layer
// sends has no handler.
func buildPipeline(leaveService leave.Service, logger *zap.Logger) (*mediator.Mediator, error) {
	validators := mediator.NewValidators(apperror.NewValidator())
	leave.RegisterValidators(validators)

	m := mediator.New(
		mediator.LoggingBehavior(logger),
		mediator.ValidationBehavior(validators),
	)
	if err := leave.RegisterHandlers(m, leaveService); err != nil {
		return nil, fmt.Errorf("register leave handlers: %w", err)
	}
	if err := m.Require(leave.Requests()...); err != nil {
		return nil, err
	}
	return m, nil
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB, outboxRepo)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo, auth.TokenConfig{
		Secret:    cfg.Auth.JWTSecret,
		AccessTTL: cfg.Auth.AccessTokenTTL,
	}, logger)
	employeeService := employee.NewService(employeeRepo, rdb, logger)
	leaveService := leave.NewService(leaveRepo, cfg.Kafka.LeaveTopic, logger)

	pipeline, err := buildPipeline(leaveService, logger)
	if err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.App.IsProduction(), int(cfg.Auth.AccessTokenTTL.Seconds()))
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(pipeline, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.Auth.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.Auth.JWTSecret, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, cfg.App.IdempotencyTTL, cfg.Auth.JWTSecret, logger)
		rbac.RegisterRoutes(api, rbacHandler, cfg.Auth.JWTSecret, logger)
	}

	return nil
}
