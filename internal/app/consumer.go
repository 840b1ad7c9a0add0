package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer applies employee lifecycle events to the local directory until
// SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// the directory cache is optional for the consumer; without redis the
	// api simply serves a stale cache until its TTL expires
	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, 1, logger)
	if err != nil {
		log.Warn("redis unavailable, directory cache will not be invalidated", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	employeeService := employee.NewService(employee.NewRepository(gormDB), rdb, logger)

	reader := connection.NewKafkaReader(cfg.Kafka.Broker, cfg.Kafka.EmployeeTopic, cfg.Kafka.ConsumerGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.ConsumeEmployeeLifecycle(ctx, reader, employeeService, logger); err != nil {
		return err
	}

	log.Info("consumer shut down")
	return nil
}
