package app

import (
	"go-leave/internal/auth"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"

	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&auth.User{},
		&leave.LeaveRequest{},
		&kafka.OutboxEvent{},
	)
}
