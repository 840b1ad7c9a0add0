package middleware

import (
	autherrors "go-leave/internal/auth/errors"

	"github.com/gin-gonic/gin"
)

// ExtractUserID guards routes that key state by user, such as idempotency.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			abortWith(c, autherrors.ErrInvalidUserID)
			return
		}

		c.Set("user_id_validated", userIDStr)
		c.Next()
	}
}
