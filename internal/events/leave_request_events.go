package events

import "time"

const LeaveRequestTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequestCreated = "leave_request_created"
	LeaveRequestDecided = "leave_request_decided"
)

type LeaveRequestCreatedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id"`
	EmployeeID     uint      `json:"employee_id"`
	LeaveType      string    `json:"leave_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type LeaveRequestDecidedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id"`
	EmployeeID     uint      `json:"employee_id"`
	Status         string    `json:"status"`
	DecidedBy      uint      `json:"decided_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
