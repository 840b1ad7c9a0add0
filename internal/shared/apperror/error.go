package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind is the closed set of failure classes the HTTP boundary knows how to
// render. The zero value is KindUnexpected so that anything unclassified
// ends up as a 500.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindBusinessRule
	KindNotFound
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unexpected"
	}
}

// HTTPStatus returns the wire status for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindBusinessRule:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind       Kind   // Failure class used by the boundary
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Err        error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(kind Kind, code, message string) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: kind.HTTPStatus(),
		Err:        nil,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, kind Kind, code, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: kind.HTTPStatus(),
		Err:        err,
	}
}

func NewBusinessRule(message string) *AppError {
	return New(KindBusinessRule, CodeInvalidState, message)
}

func NewNotFound(message string) *AppError {
	return New(KindNotFound, CodeNotFound, message)
}

func NewForbidden(message string) *AppError {
	return New(KindForbidden, CodeForbidden, message)
}

// FieldErrors maps a field name to its messages, in the order they were added.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		f[field] = append(f[field], msgs...)
	}
}

// Flatten renders "field: message" lines, fields sorted by name.
func (f FieldErrors) Flatten() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, msg := range f[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}

type ValidationError struct {
	Fields FieldErrors
}

func NewValidation(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldValidation is a shorthand for a single field failure.
func NewFieldValidation(field, message string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, message)
	return NewValidation(fields)
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields.Flatten(), ", ")
}

// KindOf classifies err. Errors that are neither *AppError nor
// *ValidationError anywhere in their chain are KindUnexpected.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnexpected
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}
