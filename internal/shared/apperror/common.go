package apperror

// Generic errors for layers that have no module-specific sentinel.
var (
	ErrForbidden = New(
		KindForbidden,
		CodeForbidden,
		"You do not have permission to access this resource",
	)

	ErrInternal = New(
		KindUnexpected,
		CodeInternalError,
		"An unexpected error occurred",
	)

	ErrUnauthorized = New(
		KindUnauthorized,
		CodeUnauthorized,
		"Authentication is required",
	)
)
