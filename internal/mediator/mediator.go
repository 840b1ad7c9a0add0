// Package mediator dispatches typed commands and queries to exactly one
// handler through a fixed chain of behaviors.
//
// Handlers and behaviors are registered at startup. Register composes the
// behaviors around the handler once, so Send only looks up the prepared chain
// for the request's type. The registry is not safe for concurrent writes and
// must not be modified once requests are being served.
package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrHandlerNotFound  = errors.New("mediator: no handler registered")
	ErrDuplicateHandler = errors.New("mediator: handler already registered")
	ErrResultType       = errors.New("mediator: unexpected result type")
)

// Next invokes the remainder of the pipeline.
type Next func(ctx context.Context) (any, error)

// Behavior wraps the rest of the pipeline for every request type.
type Behavior func(ctx context.Context, req any, next Next) (any, error)

// HandlerFunc handles one concrete request type.
type HandlerFunc[Req any, Res any] func(ctx context.Context, req Req) (Res, error)

type pipeline func(ctx context.Context, req any) (any, error)

type Mediator struct {
	behaviors []Behavior
	pipelines map[reflect.Type]pipeline
}

// New creates a mediator. behaviors[0] is the outermost scope.
func New(behaviors ...Behavior) *Mediator {
	return &Mediator{
		behaviors: behaviors,
		pipelines: make(map[reflect.Type]pipeline),
	}
}

// Register binds handler to Req and builds its call chain.
func Register[Req any, Res any](m *Mediator, handler HandlerFunc[Req, Res]) error {
	t := reflect.TypeOf((*Req)(nil)).Elem()
	if _, exists := m.pipelines[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t)
	}

	var p pipeline = func(ctx context.Context, req any) (any, error) {
		return handler(ctx, req.(Req))
	}
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		behavior, inner := m.behaviors[i], p
		p = func(ctx context.Context, req any) (any, error) {
			return behavior(ctx, req, func(ctx context.Context) (any, error) {
				return inner(ctx, req)
			})
		}
	}

	m.pipelines[t] = p
	return nil
}

// Require reports every request whose type has no registered handler.
// Call it at startup with a zero value of each dispatched request type.
func (m *Mediator) Require(reqs ...any) error {
	var missing []error
	for _, req := range reqs {
		t := reflect.TypeOf(req)
		if _, ok := m.pipelines[t]; !ok {
			missing = append(missing, fmt.Errorf("%w: %s", ErrHandlerNotFound, t))
		}
	}
	return errors.Join(missing...)
}

// Send dispatches req through its pipeline and returns the handler's result.
func Send[Res any, Req any](ctx context.Context, m *Mediator, req Req) (Res, error) {
	var zero Res

	p, ok := m.pipelines[reflect.TypeOf((*Req)(nil)).Elem()]
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrHandlerNotFound, req)
	}

	out, err := p(ctx, req)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}

	res, ok := out.(Res)
	if !ok {
		return zero, fmt.Errorf("%w: got %T for %T", ErrResultType, out, req)
	}
	return res, nil
}

// RequestName is the name logged for a request: its Go type name.
func RequestName(req any) string {
	t := reflect.TypeOf(req)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
