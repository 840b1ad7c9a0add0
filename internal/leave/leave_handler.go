package leave

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/mediator"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler translates HTTP requests into pipeline commands. It never talks to
// the service directly.
type Handler struct {
	mediator *mediator.Mediator
	logger   *zap.Logger
}

func NewHandler(m *mediator.Mediator, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{mediator: m, logger: l}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave request bind failed", zap.Error(err))
		_ = c.Error(apperror.NewFieldValidation("body", "Request body is invalid"))
		return
	}

	fields := apperror.FieldErrors{}
	start := parseDate(fields, "start_date", "Start Date", req.StartDate)
	end := parseDate(fields, "end_date", "End Date", req.EndDate)
	if len(fields) > 0 {
		_ = c.Error(apperror.NewValidation(fields))
		return
	}

	cmd := CreateLeaveRequestCommand{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  LeaveType(strings.TrimSpace(req.LeaveType)),
		Comments:   req.Comments,
	}

	resp, err := mediator.Send[LeaveRequestResponse](c.Request.Context(), h.mediator, cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(leaveerrors.ErrInvalidEmployeeID)
		return
	}

	resp, err := mediator.Send[[]LeaveRequestResponse](c.Request.Context(), h.mediator,
		GetLeaveRequestsByEmployeeQuery{EmployeeID: uint(id)})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPendingApprovals(c *gin.Context) {
	managerID, ok := middleware.CallerEmployeeID(c)
	if !ok {
		_ = c.Error(leaveerrors.ErrEmployeeIDNotFound)
		return
	}

	resp, err := mediator.Send[[]LeaveRequestResponse](c.Request.Context(), h.mediator,
		GetPendingApprovalsQuery{ManagerID: managerID})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	actorID, ok := middleware.CallerEmployeeID(c)
	if !ok {
		_ = c.Error(leaveerrors.ErrEmployeeIDNotFound)
		return
	}

	var req ApproveLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http approve leave request bind failed", zap.Error(err))
		_ = c.Error(apperror.NewFieldValidation("body", "Request body is invalid"))
		return
	}

	cmd := ApproveLeaveRequestCommand{
		LeaveRequestID:   req.LeaveRequestID,
		Status:           Status(strings.TrimSpace(req.Status)),
		ApprovalComments: req.ApprovalComments,
		ActorEmployeeID:  actorID,
	}

	resp, err := mediator.Send[LeaveRequestResponse](c.Request.Context(), h.mediator, cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// parseDate leaves required-field reporting to the pipeline and only flags
// values that are present but malformed.
func parseDate(fields apperror.FieldErrors, field, human, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		fields.Add(field, human+" must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return t
}
