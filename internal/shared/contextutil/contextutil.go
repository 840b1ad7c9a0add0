package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// private key type so values never collide with other packages
type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	userIDKey     contextKey = "user_id"
	employeeIDKey contextKey = "employee_id"
	loggerKey     contextKey = "logger"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- User ID Helpers ---

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}

// --- Employee ID Helpers ---

// WithEmployeeID records the employee the authenticated caller resolves to.
func WithEmployeeID(ctx context.Context, employeeID uint) context.Context {
	return context.WithValue(ctx, employeeIDKey, employeeID)
}

// GetEmployeeID reports the caller's employee id. Callers that are not
// linked to an employee record (service accounts, HR admins) return false.
func GetEmployeeID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(employeeIDKey).(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// --- Logger Helpers ---

// WithLogger stores the request-scoped zap logger in the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, then defaultLogger, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID  string
	UserID     string
	EmployeeID uint
}

// ExtractMetadata collects tracing info for manual logging.
func ExtractMetadata(ctx context.Context) Metadata {
	employeeID, _ := GetEmployeeID(ctx)
	return Metadata{
		RequestID:  GetRequestID(ctx),
		UserID:     GetUserID(ctx),
		EmployeeID: employeeID,
	}
}
