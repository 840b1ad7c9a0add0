package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Provisioner interface {
	Provision(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error)
}

const maxProvisionAttempts = 3

var provisionRetryDelay = 2 * time.Second

// ConsumeEmployeeLifecycle keeps the local employee directory in sync with
// the HR system until ctx is done.
//
// A message is committed once it is applied, malformed, ignored or rejected
// by a business rule. An unexpected failure is retried in place; when the
// retries run out the loop returns an error without committing, so after a
// restart the group resumes from the last committed offset.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	provisioner Provisioner,
	logger *zap.Logger,
) error {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return nil
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		err = handleEmployeeMessage(ctx, msg, provisioner, log)
		for attempt := 2; err != nil && attempt <= maxProvisionAttempts; attempt++ {
			select {
			case <-ctx.Done():
				log.Info("employee lifecycle consumer stopped", zap.Int64("uncommitted_offset", msg.Offset))
				return nil
			case <-time.After(provisionRetryDelay):
			}
			log.Warn("retrying employee lifecycle message",
				zap.Int64("offset", msg.Offset),
				zap.Int("attempt", attempt),
			)
			err = handleEmployeeMessage(ctx, msg, provisioner, log)
		}
		if err != nil {
			return fmt.Errorf("employee lifecycle message at partition %d offset %d: %w", msg.Partition, msg.Offset, err)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// handleEmployeeMessage returns an error only for failures worth retrying.
// Malformed payloads and rejected employees return nil so they are committed
// and do not block the partition.
func handleEmployeeMessage(ctx context.Context, msg kafkago.Message, provisioner Provisioner, log *zap.Logger) error {
	var event events.EmployeeProvisionedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	switch event.EventType {
	case events.EmployeeCreated, events.EmployeeUpdated:
	default:
		log.Debug("ignoring employee lifecycle event", zap.String("event_type", event.EventType))
		return nil
	}

	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			ctx = contextutil.WithRequestID(ctx, string(h.Value))
		}
	}

	_, err := provisioner.Provision(ctx, employee.ProvisionEmployeeRequest{
		ID:             event.EmployeeID,
		EmployeeNumber: event.EmployeeNumber,
		FullName:       event.FullName,
		Email:          event.Email,
		EmployeeType:   event.EmployeeType,
		ManagerID:      event.ManagerID,
	})
	if err != nil {
		if apperror.KindOf(err) != apperror.KindUnexpected {
			log.Warn("employee lifecycle event rejected, skipping",
				zap.Uint("employee_id", event.EmployeeID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			return nil
		}

		log.Error("provision employee from event failed",
			zap.Uint("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return err
	}

	log.Info("employee provisioned from event",
		zap.Uint("employee_id", event.EmployeeID),
		zap.String("event_type", event.EventType),
	)
	return nil
}
