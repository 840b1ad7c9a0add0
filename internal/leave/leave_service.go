package leave

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service holds the handlers of the leave commands and queries. They are
// reached through the mediator, which validates requests before calling them.
type Service interface {
	CreateLeaveRequest(ctx context.Context, cmd CreateLeaveRequestCommand) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, cmd ApproveLeaveRequestCommand) (LeaveRequestResponse, error)
	GetPendingApprovals(ctx context.Context, q GetPendingApprovalsQuery) ([]LeaveRequestResponse, error)
	GetLeaveRequestsByEmployee(ctx context.Context, q GetLeaveRequestsByEmployeeQuery) ([]LeaveRequestResponse, error)
}

type service struct {
	repo   Repository
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, topic string, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if topic == "" {
		topic = events.LeaveRequestTopic
	}
	return &service{repo: repo, topic: topic, now: time.Now, logger: l}
}

func (s *service) CreateLeaveRequest(ctx context.Context, cmd CreateLeaveRequestCommand) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave request",
		zap.Uint("employee_id", cmd.EmployeeID),
		zap.String("leave_type", string(cmd.LeaveType)),
		zap.Time("start_date", cmd.StartDate),
		zap.Time("end_date", cmd.EndDate),
	)

	lr := &LeaveRequest{
		EmployeeID: cmd.EmployeeID,
		StartDate:  cmd.StartDate,
		EndDate:    cmd.EndDate,
		LeaveType:  cmd.LeaveType,
		Status:     StatusPending,
		Comments:   cmd.Comments,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.FindEmployee(ctx, cmd.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrEmployeeNotFound
			}
			return err
		}

		if err := tx.Create(ctx, lr); err != nil {
			return err
		}

		return s.appendEvent(ctx, tx, lr, events.LeaveRequestCreated, events.LeaveRequestCreatedEvent{
			EventType:      events.LeaveRequestCreated,
			LeaveRequestID: lr.ID,
			EmployeeID:     lr.EmployeeID,
			LeaveType:      string(lr.LeaveType),
			StartDate:      lr.StartDate.Format(dateLayout),
			EndDate:        lr.EndDate.Format(dateLayout),
			OccurredAt:     s.now().UTC(),
		})
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	log.Info("leave request created",
		zap.Uint("leave_request_id", lr.ID),
		zap.Uint("employee_id", lr.EmployeeID),
	)
	return mapToResponse(*lr), nil
}

// ApproveLeaveRequest decides a Pending request. The row is locked for the
// duration of the transaction, and the update is conditional on the status
// still being Pending, so two racing decisions cannot both succeed.
func (s *service) ApproveLeaveRequest(ctx context.Context, cmd ApproveLeaveRequestCommand) (LeaveRequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave request",
		zap.Uint("leave_request_id", cmd.LeaveRequestID),
		zap.String("status", string(cmd.Status)),
		zap.Uint("actor_employee_id", cmd.ActorEmployeeID),
	)

	var decided LeaveRequest
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		lr, err := tx.FindByIDForUpdate(ctx, cmd.LeaveRequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveRequestNotFound
			}
			return err
		}

		if !lr.IsPending() {
			return leaveerrors.ErrAlreadyDecided
		}

		owner, err := tx.FindEmployee(ctx, lr.EmployeeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if owner == nil || !owner.ReportsTo(cmd.ActorEmployeeID) {
			return leaveerrors.ErrNotEmployeesManager
		}

		decidedAt := s.now().UTC()
		updated, err := tx.Decide(ctx, lr.ID, cmd.Status, cmd.ApprovalComments, cmd.ActorEmployeeID, decidedAt)
		if err != nil {
			return err
		}
		if !updated {
			return leaveerrors.ErrAlreadyDecided
		}

		lr.Status = cmd.Status
		lr.ApprovalComments = cmd.ApprovalComments
		lr.ApprovedBy = &cmd.ActorEmployeeID
		lr.DecidedAt = &decidedAt
		decided = *lr

		return s.appendEvent(ctx, tx, lr, events.LeaveRequestDecided, events.LeaveRequestDecidedEvent{
			EventType:      events.LeaveRequestDecided,
			LeaveRequestID: lr.ID,
			EmployeeID:     lr.EmployeeID,
			Status:         string(lr.Status),
			DecidedBy:      cmd.ActorEmployeeID,
			OccurredAt:     decidedAt,
		})
	})
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	// committed: report the decision even if the caller has gone away
	contextutil.GetLogger(context.WithoutCancel(ctx), s.logger).Info("leave request decided",
		zap.Uint("leave_request_id", decided.ID),
		zap.String("status", string(decided.Status)),
		zap.Uint("decided_by", cmd.ActorEmployeeID),
	)
	return mapToResponse(decided), nil
}

func (s *service) GetPendingApprovals(ctx context.Context, q GetPendingApprovalsQuery) ([]LeaveRequestResponse, error) {
	list, err := s.repo.FindPendingForManager(ctx, q.ManagerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetLeaveRequestsByEmployee(ctx context.Context, q GetLeaveRequestsByEmployeeQuery) ([]LeaveRequestResponse, error) {
	list, err := s.repo.FindByEmployee(ctx, q.EmployeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) appendEvent(ctx context.Context, tx Repository, lr *LeaveRequest, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.AppendEvent(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatUint(uint64(lr.ID), 10),
		EventType:     eventType,
		Topic:         s.topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		LeaveType:        string(l.LeaveType),
		Status:           string(l.Status),
		Comments:         l.Comments,
		ApprovalComments: l.ApprovalComments,
		ApprovedBy:       l.ApprovedBy,
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(list []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(list))
	for i, l := range list {
		resp[i] = mapToResponse(l)
	}
	return resp
}
