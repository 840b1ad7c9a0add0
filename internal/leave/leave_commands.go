package leave

import (
	"context"
	"time"

	"go-leave/internal/mediator"
	"go-leave/internal/shared/apperror"
)

// CreateLeaveRequestCommand files a new Pending request for EmployeeID.
type CreateLeaveRequestCommand struct {
	EmployeeID uint      `json:"employee_id" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	LeaveType  LeaveType `json:"leave_type" validate:"required,oneof=Annual Sick Maternity Paternity Unpaid"`
	Comments   string    `json:"comments" validate:"max=1000"`
}

// ApproveLeaveRequestCommand approves or rejects a Pending request on behalf
// of ActorEmployeeID.
type ApproveLeaveRequestCommand struct {
	LeaveRequestID   uint    `json:"leave_request_id" validate:"required"`
	Status           Status  `json:"status" validate:"required,oneof=Approved Rejected"`
	ApprovalComments *string `json:"approval_comments" validate:"omitempty,max=1000"`
	ActorEmployeeID  uint    `json:"actor_employee_id" validate:"required"`
}

type GetPendingApprovalsQuery struct {
	ManagerID uint `json:"manager_id" validate:"required"`
}

type GetLeaveRequestsByEmployeeQuery struct {
	EmployeeID uint `json:"employee_id" validate:"required"`
}

// Requests lists a zero value of every request type the HTTP layer sends,
// for mediator.Require at startup.
func Requests() []any {
	return []any{
		CreateLeaveRequestCommand{},
		ApproveLeaveRequestCommand{},
		GetPendingApprovalsQuery{},
		GetLeaveRequestsByEmployeeQuery{},
	}
}

// RegisterValidators adds the rules struct tags cannot express.
func RegisterValidators(vs *mediator.Validators) {
	mediator.AddValidator(vs, func(ctx context.Context, cmd CreateLeaveRequestCommand) apperror.FieldErrors {
		fields := apperror.FieldErrors{}
		if !cmd.StartDate.IsZero() && !cmd.EndDate.IsZero() && cmd.StartDate.After(cmd.EndDate) {
			fields.Add("start_date", "Start Date must be on or before End Date")
		}
		return fields
	})
}

// RegisterHandlers binds every leave command and query to svc.
func RegisterHandlers(m *mediator.Mediator, svc Service) error {
	if err := mediator.Register(m, svc.CreateLeaveRequest); err != nil {
		return err
	}
	if err := mediator.Register(m, svc.ApproveLeaveRequest); err != nil {
		return err
	}
	if err := mediator.Register(m, svc.GetPendingApprovals); err != nil {
		return err
	}
	return mediator.Register(m, svc.GetLeaveRequestsByEmployee)
}
