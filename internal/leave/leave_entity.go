package leave

import (
	"time"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "Annual"
	LeaveTypeSick      LeaveType = "Sick"
	LeaveTypeMaternity LeaveType = "Maternity"
	LeaveTypePaternity LeaveType = "Paternity"
	LeaveTypeUnpaid    LeaveType = "Unpaid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// LeaveRequest moves from Pending to Approved or Rejected exactly once.
type LeaveRequest struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index:idx_leave_requests_employee_start"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_start"`
	EndDate    time.Time `gorm:"type:date;not null"`
	LeaveType  LeaveType `gorm:"type:varchar(20);not null"`
	Status     Status    `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`
	Comments   string    `gorm:"type:text"`

	ApprovalComments *string `gorm:"type:text"`
	ApprovedBy       *uint
	DecidedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }

func (l LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}
