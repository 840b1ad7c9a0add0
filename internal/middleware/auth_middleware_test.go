package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var body response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type caller struct {
		UserID        string `json:"user_id"`
		Role          string `json:"role"`
		EmployeeID    uint   `json:"employee_id"`
		HasEmployee   bool   `json:"has_employee"`
		CtxEmployeeID uint   `json:"ctx_employee_id"`
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		id, ok := middleware.CallerEmployeeID(c)
		ctxID, _ := contextutil.GetEmployeeID(c.Request.Context())
		c.JSON(http.StatusOK, caller{
			UserID:        c.GetString(middleware.ContextUserID),
			Role:          c.GetString(middleware.ContextRole),
			EmployeeID:    id,
			HasEmployee:   ok,
			CtxEmployeeID: ctxID,
		})
	})

	exp := time.Now().Add(time.Hour).Unix()

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token not found", decodeEnvelope(t, w).Message)
	})

	t.Run("token with employee id", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1", "employee_id": 5, "role": "manager", "exp": exp,
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got caller
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, "manager", got.Role)
		assert.True(t, got.HasEmployee)
		assert.Equal(t, uint(5), got.EmployeeID)
		assert.Equal(t, uint(5), got.CtxEmployeeID)
	})

	t.Run("token without employee id from cookie", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-2", "role": "hr_admin", "exp": exp,
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got caller
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.HasEmployee)
		assert.Zero(t, got.CtxEmployeeID)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1", "exp": time.Now().Add(-time.Minute).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", decodeEnvelope(t, w).Message)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{"user_id": "u-1", "exp": exp})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", decodeEnvelope(t, w).Message)
	})

	t.Run("missing user id claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{"role": "employee", "exp": exp})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
