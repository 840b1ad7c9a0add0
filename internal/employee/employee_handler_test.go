package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeEmployeeService struct {
	getByIDFn      func(ctx context.Context, id uint) (employee.EmployeeResponse, error)
	getDirectoryFn func(ctx context.Context) ([]employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id uint) (employee.EmployeeResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return employee.EmployeeResponse{}, nil
}

func (f *fakeEmployeeService) GetDirectory(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if f.getDirectoryFn != nil {
		return f.getDirectoryFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeService) Provision(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func setupEmployeeRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	h := employee.NewHandler(svc, zap.NewNop())
	r.GET("/employee", h.GetAll)
	r.GET("/employee/:id", h.GetById)
	return r
}

type directoryEnvelope struct {
	Succeeded bool                        `json:"succeeded"`
	Message   string                      `json:"message"`
	Data      []employee.EmployeeResponse `json:"data"`
	Meta      *response.PaginationMeta    `json:"meta"`
}

func TestHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		getDirectoryFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: 3, FullName: "Citra", Email: "citra@example.com"},
				{ID: 1, FullName: "Ani", Email: "ani@example.com"},
				{ID: 2, FullName: "Budi", Email: "budi@example.com"},
			}, nil
		},
	}
	router := setupEmployeeRouter(svc)

	t.Run("sorted and paged", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/employee?page=1&page_size=2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body directoryEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Succeeded)
		if assert.Len(t, body.Data, 2) {
			assert.Equal(t, "Ani", body.Data[0].FullName)
			assert.Equal(t, "Budi", body.Data[1].FullName)
		}
		if assert.NotNil(t, body.Meta) {
			assert.Equal(t, int64(3), body.Meta.Total)
			assert.Equal(t, 2, body.Meta.TotalPages)
		}
	})

	t.Run("filtered", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/employee?q=citra", nil)
		router.ServeHTTP(w, req)

		var body directoryEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		if assert.Len(t, body.Data, 1) {
			assert.Equal(t, uint(3), body.Data[0].ID)
		}
	})
}

func TestHandler_GetById(t *testing.T) {
	svc := &fakeEmployeeService{
		getByIDFn: func(ctx context.Context, id uint) (employee.EmployeeResponse, error) {
			if id == 1 {
				return employee.EmployeeResponse{ID: 1, FullName: "Ani"}, nil
			}
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	router := setupEmployeeRouter(svc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{name: "found", path: "/employee/1", wantStatus: http.StatusOK},
		{name: "not found", path: "/employee/9", wantStatus: http.StatusNotFound, wantMsg: "Employee not found"},
		{name: "bad id", path: "/employee/abc", wantStatus: http.StatusBadRequest, wantMsg: "Invalid employee ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body response.Envelope
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Succeeded)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
