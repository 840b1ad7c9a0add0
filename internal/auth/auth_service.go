package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"
	"go-leave/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

// EmployeeLookup resolves the employee linked to an account.
type EmployeeLookup interface {
	FindByID(ctx context.Context, id uint) (*employee.Employee, error)
}

type TokenConfig struct {
	Secret    string
	AccessTTL time.Duration
}

type service struct {
	repo      Repository
	employees EmployeeLookup
	tokens    TokenConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeLookup, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		tokens:    tokens,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login user lookup failed", zap.Error(err))
			return "", AuthResponse{}, err
		}
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", AuthResponse{}, autherrors.ErrUserInactive
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return "", AuthResponse{}, err
	}

	token, err := s.generateToken(user, role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role),
	)

	return token, toResponse(user, role), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return AuthResponse{}, err
	}

	return toResponse(user, role), nil
}

// resolveRole prefers the explicit account role and otherwise derives one
// from the linked employee's type.
func (s *service) resolveRole(ctx context.Context, user *User) (string, error) {
	if role := strings.ToLower(strings.TrimSpace(user.Role)); role != "" {
		return role, nil
	}

	if user.EmployeeID == nil {
		return rbac.RoleEmployee, nil
	}

	empl, err := s.employees.FindByID(ctx, *user.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("linked employee missing",
				zap.String("user_id", user.ID.String()),
				zap.Uint("employee_id", *user.EmployeeID),
			)
			return rbac.RoleEmployee, nil
		}
		return "", err
	}

	if empl.IsManager() {
		return rbac.RoleManager, nil
	}
	return rbac.RoleEmployee, nil
}

func (s *service) generateToken(user *User, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokens.AccessTTL).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = *user.EmployeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func toResponse(user *User, role string) AuthResponse {
	return AuthResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       role,
	}
}
