package employeeerrors

import (
	"go-leave/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Employee not found",
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeConflict,
		"Employee with the same email already exists",
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeConflict,
		"Employee number already exists",
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Invalid employee ID",
	)
	ErrInvalidEmployeeType = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Employee type must be Employee or Manager",
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Missing required fields",
	)
	ErrManagerNotFound = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Manager does not exist",
	)
	ErrManagerNotAManager = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Referenced manager is not of type Manager",
	)
	ErrSelfManaged = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidInput,
		"Employee cannot be their own manager",
	)
	ErrManagerHasReports = apperror.New(
		apperror.KindBusinessRule,
		apperror.CodeInvalidState,
		"Employee still manages other employees and must remain a Manager",
	)
)
