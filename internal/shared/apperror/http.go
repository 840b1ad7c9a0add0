package apperror

import (
	"errors"
	"strings"
)

// HTTPError is the client-visible rendering of a failure.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Errors  []string
}

// ToHTTP translates err into its wire form. Internal detail of unexpected
// errors never reaches Message.
func ToHTTP(err error) HTTPError {
	kind := KindOf(err)

	switch kind {
	case KindValidation, KindBusinessRule, KindNotFound, KindForbidden, KindUnauthorized:
		var verr *ValidationError
		if errors.As(err, &verr) {
			lines := verr.Fields.Flatten()
			return HTTPError{
				Status:  kind.HTTPStatus(),
				Code:    CodeValidation,
				Message: strings.Join(lines, ", "),
				Errors:  lines,
			}
		}
		var appErr *AppError
		errors.As(err, &appErr)
		return HTTPError{
			Status:  kind.HTTPStatus(),
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	case KindUnexpected:
		return HTTPError{
			Status:  ErrInternal.HTTPStatus,
			Code:    ErrInternal.Code,
			Message: ErrInternal.Message,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
