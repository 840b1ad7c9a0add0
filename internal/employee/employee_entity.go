package employee

import (
	"time"
)

type EmployeeType string

const (
	TypeEmployee EmployeeType = "Employee"
	TypeManager  EmployeeType = "Manager"
)

func (t EmployeeType) Valid() bool {
	return t == TypeEmployee || t == TypeManager
}

// Employee is provisioned from the HR system and only read by the leave
// workflow. ManagerID is a plain id, resolved through the repository.
type Employee struct {
	ID             uint         `gorm:"primaryKey"`
	EmployeeNumber string       `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FullName       string       `gorm:"type:varchar(255);not null"`
	Email          string       `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	EmployeeType   EmployeeType `gorm:"type:varchar(20);not null;default:'Employee'"`
	ManagerID      *uint        `gorm:"index:idx_employees_manager"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Employee) IsManager() bool {
	return e.EmployeeType == TypeManager
}

// ReportsTo reports whether managerID is this employee's manager.
func (e Employee) ReportsTo(managerID uint) bool {
	return e.ManagerID != nil && *e.ManagerID == managerID
}
