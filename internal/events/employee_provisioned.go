package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
)

// EmployeeProvisionedEvent is published by the HR system whenever an
// employee record is created or changed.
type EmployeeProvisionedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     uint      `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	EmployeeType   string    `json:"employee_type"`
	ManagerID      *uint     `json:"manager_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
