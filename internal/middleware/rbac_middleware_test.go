package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEnforcer struct {
	enforceFn func(role, resource, action string) (bool, error)
}

func (f *fakeEnforcer) Enforce(role, resource, action string) (bool, error) {
	return f.enforceFn(role, resource, action)
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	enforcer := &fakeEnforcer{
		enforceFn: func(role, resource, action string) (bool, error) {
			if role == "broken" {
				return false, errors.New("policy store unavailable")
			}
			return role == "manager" && resource == "leave_request" && action == "approve", nil
		},
	}

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "allowed", role: "manager", wantStatus: http.StatusOK},
		{name: "denied", role: "employee", wantStatus: http.StatusForbidden},
		{name: "no role", role: "", wantStatus: http.StatusUnauthorized},
		{name: "enforcer failure", role: "broken", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.ErrorHandler(zap.NewNop()))
			r.POST("/approve",
				func(c *gin.Context) {
					if tt.role != "" {
						c.Set(middleware.ContextRole, tt.role)
					}
				},
				middleware.RBACAuthorize(enforcer, "leave_request", "approve"),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/approve", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set(middleware.ContextUserID, "u-1") },
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/x", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
