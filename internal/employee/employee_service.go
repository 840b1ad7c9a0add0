package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DirectoryCacheKey = "employees:directory"

const directoryCacheTTL = time.Hour

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	GetDirectory(ctx context.Context) ([]EmployeeResponse, error)
	Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService wires the employee directory. rdb may be nil, in which case the
// directory is always read from the repository.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))

	if id == 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			s.logger.Error("get employee by id failed", zap.Uint("employee_id", id), zap.Error(err))
		}
		return EmployeeResponse{}, mapped
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetDirectory(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DirectoryCacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// collapse concurrent cache misses into one query
	v, err, _ := s.sf.Do(DirectoryCacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, DirectoryCacheKey, jsonData, directoryCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee directory failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee directory failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

// Provision creates or updates an employee as received from the HR system.
// A referenced manager must already exist and be of type Manager, and an
// employee with direct reports cannot be provisioned as anything else.
func (s *service) Provision(ctx context.Context, req ProvisionEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("provision employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.ID),
		zap.String("employee_number", req.EmployeeNumber),
	)

	if req.ID == 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if strings.TrimSpace(req.EmployeeNumber) == "" ||
		strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" {
		return EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields
	}

	employeeType := EmployeeType(req.EmployeeType)
	if employeeType == "" {
		employeeType = TypeEmployee
	}
	if !employeeType.Valid() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeType
	}

	if req.ManagerID != nil {
		if *req.ManagerID == req.ID {
			return EmployeeResponse{}, employeeerrors.ErrSelfManaged
		}
		manager, err := s.repo.FindByID(ctx, *req.ManagerID)
		if err != nil {
			mapped := mapRepositoryError(err)
			if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
				s.logger.Warn("provision employee manager not found",
					zap.Uint("employee_id", req.ID),
					zap.Uint("manager_id", *req.ManagerID),
				)
				return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
			}
			s.logger.Error("provision employee manager lookup failed", zap.Error(err))
			return EmployeeResponse{}, mapped
		}
		if !manager.IsManager() {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotAManager
		}
	}

	if employeeType != TypeManager {
		hasReports, err := s.repo.HasReports(ctx, req.ID)
		if err != nil {
			s.logger.Error("provision employee reports lookup failed", zap.Uint("employee_id", req.ID), zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if hasReports {
			s.logger.Warn("provision employee demotes manager with reports", zap.Uint("employee_id", req.ID))
			return EmployeeResponse{}, employeeerrors.ErrManagerHasReports
		}
	}

	empl := &Employee{
		ID:             req.ID,
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		EmployeeType:   employeeType,
		ManagerID:      req.ManagerID,
	}

	if err := s.repo.Upsert(ctx, empl); err != nil {
		s.logger.Error("provision employee persist failed", zap.Uint("employee_id", req.ID), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateDirectory(ctx)

	s.logger.Info("provision employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
		zap.String("employee_type", string(empl.EmployeeType)),
	)

	return mapToResponse(*empl), nil
}

func (s *service) invalidateDirectory(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DirectoryCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee directory cache",
			zap.Error(err),
			zap.String("key", DirectoryCacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID,
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		EmployeeType:   string(empl.EmployeeType),
		ManagerID:      empl.ManagerID,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		resp[i] = mapToResponse(e)
	}
	return resp
}
