package middleware

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders errors pushed with c.Error into the response envelope
// and turns panics into a generic 500. Install it before any middleware that
// can fail.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	base := logger.Named("http.error")
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l := contextutil.GetLogger(c.Request.Context(), base)
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					response.Error(c, http.StatusInternalServerError, apperror.ErrInternal.Message, nil)
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		httpErr := apperror.ToHTTP(err)
		l := contextutil.GetLogger(c.Request.Context(), base)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		}
		if httpErr.Status >= http.StatusInternalServerError {
			l.Error("request failed", append(fields, zap.Error(err))...)
		} else {
			l.Warn("request rejected", append(fields, zap.String("message", httpErr.Message))...)
		}

		response.Error(c, httpErr.Status, httpErr.Message, httpErr.Errors)
	}
}
