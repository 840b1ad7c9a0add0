package mediator

import (
	"context"
	"fmt"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

// LoggingBehavior logs any failure coming out of the rest of the pipeline
// with the request name and payload, then passes it on untouched. Panics are
// logged and re-raised.
func LoggingBehavior(logger *zap.Logger) Behavior {
	base := logger
	if base == nil {
		base = zap.L()
	}
	base = base.Named("mediator")

	return func(ctx context.Context, req any, next Next) (res any, err error) {
		log := contextutil.GetLogger(ctx, base)

		defer func() {
			if r := recover(); r != nil {
				log.Error("unhandled panic for request",
					zap.String("request", RequestName(req)),
					zap.Any("payload", req),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"),
				)
				panic(r)
			}
		}()

		res, err = next(ctx)
		if err != nil {
			log.Error("unhandled error for request",
				zap.String("request", RequestName(req)),
				zap.Any("payload", req),
				zap.String("kind", apperror.KindOf(err).String()),
				zap.Error(err),
			)
		}
		return res, err
	}
}
