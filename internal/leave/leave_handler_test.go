package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/mediator"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLeaveService struct {
	createFn  func(ctx context.Context, cmd leave.CreateLeaveRequestCommand) (leave.LeaveRequestResponse, error)
	approveFn func(ctx context.Context, cmd leave.ApproveLeaveRequestCommand) (leave.LeaveRequestResponse, error)
	pendingFn func(ctx context.Context, q leave.GetPendingApprovalsQuery) ([]leave.LeaveRequestResponse, error)
	byEmpFn   func(ctx context.Context, q leave.GetLeaveRequestsByEmployeeQuery) ([]leave.LeaveRequestResponse, error)
}

func (f *fakeLeaveService) CreateLeaveRequest(ctx context.Context, cmd leave.CreateLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, cmd)
	}
	return leave.LeaveRequestResponse{}, nil
}

func (f *fakeLeaveService) ApproveLeaveRequest(ctx context.Context, cmd leave.ApproveLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, cmd)
	}
	return leave.LeaveRequestResponse{}, nil
}

func (f *fakeLeaveService) GetPendingApprovals(ctx context.Context, q leave.GetPendingApprovalsQuery) ([]leave.LeaveRequestResponse, error) {
	if f.pendingFn != nil {
		return f.pendingFn(ctx, q)
	}
	return []leave.LeaveRequestResponse{}, nil
}

func (f *fakeLeaveService) GetLeaveRequestsByEmployee(ctx context.Context, q leave.GetLeaveRequestsByEmployeeQuery) ([]leave.LeaveRequestResponse, error) {
	if f.byEmpFn != nil {
		return f.byEmpFn(ctx, q)
	}
	return []leave.LeaveRequestResponse{}, nil
}

func newPipeline(t *testing.T, svc leave.Service) *mediator.Mediator {
	t.Helper()
	vs := mediator.NewValidators(apperror.NewValidator())
	leave.RegisterValidators(vs)
	m := mediator.New(mediator.LoggingBehavior(zap.NewNop()), mediator.ValidationBehavior(vs))
	assert.NoError(t, leave.RegisterHandlers(m, svc))
	assert.NoError(t, m.Require(leave.Requests()...))
	return m
}

// callerEmployeeID stands in for the auth middleware.
func setupLeaveRouter(t *testing.T, svc leave.Service, callerEmployeeID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "2b9c5f0e-6a57-4d3b-9b7e-1c0f0c7f4a10")
		if callerEmployeeID != 0 {
			c.Set(middleware.ContextEmployeeID, callerEmployeeID)
		}
		c.Next()
	})

	h := leave.NewHandler(newPipeline(t, svc), zap.NewNop())
	r.POST("/leaverequest", h.Create)
	r.GET("/leaverequest/employee/:id", h.GetByEmployee)
	r.GET("/leaverequest/pending-approvals", h.GetPendingApprovals)
	r.POST("/leaverequest/approve", h.Approve)
	return r
}

type leaveEnvelope struct {
	Succeeded bool            `json:"succeeded"`
	Message   string          `json:"message"`
	Errors    []string        `json:"errors"`
	Data      json.RawMessage `json:"data"`
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, leaveEnvelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env leaveEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got leave.CreateLeaveRequestCommand
		svc := &fakeLeaveService{createFn: func(ctx context.Context, cmd leave.CreateLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			got = cmd
			return leave.LeaveRequestResponse{ID: 1, EmployeeID: cmd.EmployeeID, Status: "Pending"}, nil
		}}
		r := setupLeaveRouter(t, svc, 3)

		w, env := doJSON(r, http.MethodPost, "/leaverequest",
			`{"employee_id":3,"start_date":"2026-05-04","end_date":"2026-05-06","leave_type":"Annual","comments":"trip"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Succeeded)
		assert.Equal(t, uint(3), got.EmployeeID)
		assert.Equal(t, leave.LeaveTypeAnnual, got.LeaveType)
		assert.Equal(t, 4, got.StartDate.Day())

		var data leave.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Pending", data.Status)
	})

	t.Run("start after end never reaches the handler", func(t *testing.T) {
		called := false
		svc := &fakeLeaveService{createFn: func(ctx context.Context, cmd leave.CreateLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			called = true
			return leave.LeaveRequestResponse{}, nil
		}}
		r := setupLeaveRouter(t, svc, 3)

		w, env := doJSON(r, http.MethodPost, "/leaverequest",
			`{"employee_id":3,"start_date":"2026-05-10","end_date":"2026-05-06","leave_type":"Annual"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Succeeded)
		assert.Equal(t, []string{"start_date: Start Date must be on or before End Date"}, env.Errors)
		assert.False(t, called)
	})

	t.Run("unknown leave type and missing employee", func(t *testing.T) {
		r := setupLeaveRouter(t, &fakeLeaveService{}, 3)

		w, env := doJSON(r, http.MethodPost, "/leaverequest",
			`{"start_date":"2026-05-04","end_date":"2026-05-06","leave_type":"Vacation"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{
			"employee_id: Employee Id is required",
			"leave_type: Leave Type must be one of [Annual, Sick, Maternity, Paternity, Unpaid]",
		}, env.Errors)
		assert.Equal(t, "employee_id: Employee Id is required, leave_type: Leave Type must be one of [Annual, Sick, Maternity, Paternity, Unpaid]", env.Message)
	})

	t.Run("malformed date", func(t *testing.T) {
		r := setupLeaveRouter(t, &fakeLeaveService{}, 3)

		w, env := doJSON(r, http.MethodPost, "/leaverequest",
			`{"employee_id":3,"start_date":"04/05/2026","end_date":"2026-05-06","leave_type":"Sick"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"start_date: Start Date must be a date in YYYY-MM-DD format"}, env.Errors)
	})

	t.Run("missing owner maps to 404", func(t *testing.T) {
		svc := &fakeLeaveService{createFn: func(ctx context.Context, cmd leave.CreateLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotFound
		}}
		r := setupLeaveRouter(t, svc, 3)

		w, env := doJSON(r, http.MethodPost, "/leaverequest",
			`{"employee_id":42,"start_date":"2026-05-04","end_date":"2026-05-04","leave_type":"Unpaid"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Employee not found", env.Message)
	})
}

func TestHandler_GetByEmployee(t *testing.T) {
	t.Run("lists requests", func(t *testing.T) {
		svc := &fakeLeaveService{byEmpFn: func(ctx context.Context, q leave.GetLeaveRequestsByEmployeeQuery) ([]leave.LeaveRequestResponse, error) {
			assert.Equal(t, uint(3), q.EmployeeID)
			return []leave.LeaveRequestResponse{{ID: 2}, {ID: 1}}, nil
		}}
		r := setupLeaveRouter(t, svc, 3)

		w, env := doJSON(r, http.MethodGet, "/leaverequest/employee/3", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var data []leave.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data, 2)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := setupLeaveRouter(t, &fakeLeaveService{}, 3)

		w, env := doJSON(r, http.MethodGet, "/leaverequest/employee/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid employee ID", env.Message)
	})
}

func TestHandler_GetPendingApprovals(t *testing.T) {
	t.Run("caller without employee id", func(t *testing.T) {
		r := setupLeaveRouter(t, &fakeLeaveService{}, 0)

		w, env := doJSON(r, http.MethodGet, "/leaverequest/pending-approvals", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Succeeded)
		assert.Equal(t, "Employee ID not found", env.Message)
	})

	t.Run("uses the caller as manager", func(t *testing.T) {
		svc := &fakeLeaveService{pendingFn: func(ctx context.Context, q leave.GetPendingApprovalsQuery) ([]leave.LeaveRequestResponse, error) {
			assert.Equal(t, uint(2), q.ManagerID)
			return []leave.LeaveRequestResponse{}, nil
		}}
		r := setupLeaveRouter(t, svc, 2)

		w, env := doJSON(r, http.MethodGet, "/leaverequest/pending-approvals", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Succeeded)
		assert.JSONEq(t, `[]`, string(env.Data))
	})
}

func TestHandler_Approve(t *testing.T) {
	t.Run("forbidden maps to 403", func(t *testing.T) {
		svc := &fakeLeaveService{approveFn: func(ctx context.Context, cmd leave.ApproveLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			assert.Equal(t, uint(5), cmd.ActorEmployeeID)
			return leave.LeaveRequestResponse{}, leaveerrors.ErrNotEmployeesManager
		}}
		r := setupLeaveRouter(t, svc, 5)

		w, env := doJSON(r, http.MethodPost, "/leaverequest/approve", `{"leave_request_id":1,"status":"Approved"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Only the employee's manager can approve or reject this leave request", env.Message)
	})

	t.Run("already decided maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{approveFn: func(ctx context.Context, cmd leave.ApproveLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, leaveerrors.ErrAlreadyDecided
		}}
		r := setupLeaveRouter(t, svc, 2)

		w, env := doJSON(r, http.MethodPost, "/leaverequest/approve", `{"leave_request_id":1,"status":"Rejected"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Leave request has already been processed", env.Message)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		r := setupLeaveRouter(t, &fakeLeaveService{}, 2)

		w, env := doJSON(r, http.MethodPost, "/leaverequest/approve", `{"leave_request_id":1,"status":"Pending"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"status: Status must be one of [Approved, Rejected]"}, env.Errors)
	})

	t.Run("unexpected failure hides details", func(t *testing.T) {
		svc := &fakeLeaveService{approveFn: func(ctx context.Context, cmd leave.ApproveLeaveRequestCommand) (leave.LeaveRequestResponse, error) {
			return leave.LeaveRequestResponse{}, errors.New("pq: deadlock detected")
		}}
		r := setupLeaveRouter(t, svc, 2)

		w, env := doJSON(r, http.MethodPost, "/leaverequest/approve", `{"leave_request_id":1,"status":"Approved"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", env.Message)
		assert.NotContains(t, w.Body.String(), "deadlock")
	})
}
