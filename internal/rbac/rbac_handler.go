package rbac

import (
	"net/http"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lists what the caller's role may do, for UI gating.
func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString(middleware.ContextRole)
	if role == "" {
		_ = c.Error(apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.PermissionsForRole(role)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		Role:        role,
		Permissions: perms,
	}, nil)
}
