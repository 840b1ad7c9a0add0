package autherrors

import (
	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.KindUnauthorized,
		apperror.CodeUnauthorized,
		"Invalid email or password",
	)
	ErrTokenNotFound = apperror.New(
		apperror.KindUnauthorized,
		apperror.CodeUnauthorized,
		"Token not found",
	)
	ErrInvalidToken = apperror.New(
		apperror.KindUnauthorized,
		"INVALID_TOKEN",
		"Invalid token",
	)
	ErrTokenExpired = apperror.New(
		apperror.KindUnauthorized,
		"TOKEN_EXPIRED",
		"Token has expired",
	)
	ErrInvalidUserID = apperror.New(
		apperror.KindUnauthorized,
		"INVALID_TOKEN",
		"User ID not found in token",
	)
	ErrUserNotFound = apperror.New(
		apperror.KindUnauthorized,
		apperror.CodeUnauthorized,
		"User not found",
	)
	ErrUserInactive = apperror.New(
		apperror.KindForbidden,
		apperror.CodeForbidden,
		"User account is inactive",
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.KindUnexpected,
		apperror.CodeInternalError,
		"Failed to generate token",
	)
	ErrForbidden = apperror.New(
		apperror.KindForbidden,
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
	)
)
