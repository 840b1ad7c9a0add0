package mediator

import (
	"context"
	"reflect"

	"go-leave/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

type validateFunc func(ctx context.Context, req any) apperror.FieldErrors

// Validators holds the per-request-type validators consulted by
// ValidationBehavior, plus an optional struct-tag validator applied to
// every request.
type Validators struct {
	structs *validator.Validate
	byType  map[reflect.Type][]validateFunc
}

func NewValidators(structs *validator.Validate) *Validators {
	return &Validators{
		structs: structs,
		byType:  make(map[reflect.Type][]validateFunc),
	}
}

// AddValidator registers fn for Req. Validators run in registration order.
func AddValidator[Req any](vs *Validators, fn func(ctx context.Context, req Req) apperror.FieldErrors) {
	t := reflect.TypeOf((*Req)(nil)).Elem()
	vs.byType[t] = append(vs.byType[t], func(ctx context.Context, req any) apperror.FieldErrors {
		return fn(ctx, req.(Req))
	})
}

// Validate runs every validator for req and returns the merged field errors.
func (vs *Validators) Validate(ctx context.Context, req any) apperror.FieldErrors {
	fields := apperror.FieldErrors{}

	if vs.structs != nil && isStruct(req) {
		if err := vs.structs.StructCtx(ctx, req); err != nil {
			fields.Merge(apperror.MapValidationErrors(err))
		}
	}

	for _, fn := range vs.byType[reflect.TypeOf(req)] {
		if errs := fn(ctx, req); len(errs) > 0 {
			fields.Merge(errs)
		}
	}
	return fields
}

// ValidationBehavior aborts with a *apperror.ValidationError when any
// validator reports a field error. The handler is not called in that case.
func ValidationBehavior(vs *Validators) Behavior {
	return func(ctx context.Context, req any, next Next) (any, error) {
		if fields := vs.Validate(ctx, req); len(fields) > 0 {
			return nil, apperror.NewValidation(fields)
		}
		return next(ctx)
	}
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
