package leave

import (
	"context"
	"time"

	"go-leave/internal/employee"
	"go-leave/internal/messaging/kafka"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Transaction runs fn inside one database transaction. fn receives a
	// repository bound to it; returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, l *LeaveRequest) error
	FindByIDForUpdate(ctx context.Context, id uint) (*LeaveRequest, error)
	// Decide moves a Pending request to status. It reports false when the
	// request was no longer Pending.
	Decide(ctx context.Context, id uint, status Status, approvalComments *string, decidedBy uint, decidedAt time.Time) (bool, error)
	FindPendingForManager(ctx context.Context, managerID uint) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequest, error)

	FindEmployee(ctx context.Context, id uint) (*employee.Employee, error)
	AppendEvent(ctx context.Context, event kafka.OutboxEvent) error
}

type repository struct {
	db     *gorm.DB
	outbox kafka.OutboxRepository
}

func NewRepository(db *gorm.DB, outbox kafka.OutboxRepository) Repository {
	return &repository{db: db, outbox: outbox}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx, outbox: r.outbox.WithTx(tx)})
	})
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Decide(ctx context.Context, id uint, status Status, approvalComments *string, decidedBy uint, decidedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":            status,
			"approval_comments": approvalComments,
			"approved_by":       decidedBy,
			"decided_at":        decidedAt,
			"updated_at":        decidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) FindPendingForManager(ctx context.Context, managerID uint) ([]LeaveRequest, error) {
	var result []LeaveRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.manager_id = ?", managerID).
		Where("leave_requests.status = ?", StatusPending).
		Order("leave_requests.start_date DESC").
		Order("leave_requests.id ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uint) ([]LeaveRequest, error) {
	var result []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Order("id ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) FindEmployee(ctx context.Context, id uint) (*employee.Employee, error) {
	var e employee.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) AppendEvent(ctx context.Context, event kafka.OutboxEvent) error {
	return r.outbox.Create(ctx, event)
}
