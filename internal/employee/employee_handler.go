package employee

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get employee directory")

	resp, err := h.service.GetDirectory(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if strings.Contains(strings.ToLower(e.FullName), q) ||
				strings.Contains(strings.ToLower(e.Email), q) ||
				strings.Contains(strings.ToLower(e.EmployeeNumber), q) {
				filtered = append(filtered, e)
			}
		}
		resp = filtered
	} else {
		// never sort the slice shared with the cache
		resp = append([]EmployeeResponse(nil), resp...)
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "name")))
	sortDir := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_dir", "asc")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	sort.SliceStable(resp, func(i, j int) bool {
		a, b := resp[i], resp[j]
		if sortDir == "desc" {
			a, b = b, a
		}
		switch sortBy {
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case "id":
			return a.ID < b.ID
		default:
			return strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
		}
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	rawID := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", rawID))

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(employeeerrors.ErrInvalidEmployeeID)
		return
	}

	resp, err := h.service.GetByID(ctx, uint(id))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
