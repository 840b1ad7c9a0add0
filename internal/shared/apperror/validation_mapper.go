package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// recipient_phone -> Recipient Phone
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationErrors converts validator output into field errors keyed by
// json field name. Any other error is reported against "body".
func MapValidationErrors(err error) FieldErrors {
	fields := FieldErrors{}
	if err == nil {
		return fields
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		fields.Add("body", "Invalid input")
		return fields
	}

	for _, e := range errs {
		fieldName := e.Field()
		fields.Add(fieldName, fieldMessage(formatFieldName(fieldName), e))
	}
	return fields
}

func fieldMessage(human string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", human)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", human, strings.ReplaceAll(e.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", human)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", human, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", human, e.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", human, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", human)
	}
}
