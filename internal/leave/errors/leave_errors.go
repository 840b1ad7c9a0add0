package leaveerrors

import (
	"go-leave/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Employee not found",
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Leave request not found",
	)
	ErrAlreadyDecided = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidState,
		"Leave request has already been processed",
	)
	ErrNotEmployeesManager = apperror.New(
		apperror.KindForbidden,
		apperror.CodeForbidden,
		"Only the employee's manager can approve or reject this leave request",
	)
	ErrEmployeeIDNotFound = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Employee ID not found",
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Invalid employee ID",
	)
)
