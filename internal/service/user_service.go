package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/search"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

type userRepository interface {
	List(ctx context.Context, clientID string, filters map[string]string, limit, offset int) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// CreateUserRequest registers an admin console user.
type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	FullName string          `json:"fullName" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR"`
}

// UpdateUserRequest modifies an admin console user.
type UpdateUserRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	FullName string          `json:"fullName" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR"`
	Active   bool            `json:"active"`
}

// UserService handles admin user management.
type UserService struct {
	repo            userRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(repo userRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches users using a normalized query.
func (s *UserService) List(ctx context.Context, clientID string, q search.Query) ([]models.User, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)

	users, total, err := s.repo.List(ctx, clientID, n.SearchFilters, n.Size, n.Offset())
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return users, &meta, nil
}

// Get loads a user scoped to the tenant.
func (s *UserService) Get(ctx context.Context, clientID, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if user.ClientID != clientID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

// Create registers a new admin console user.
func (s *UserService) Create(ctx context.Context, clientID string, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		ClientID:     clientID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, nil
}

// Update persists user changes.
func (s *UserService) Update(ctx context.Context, clientID, id string, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.Get(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.Role = req.Role
	user.Active = req.Active
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return user, nil
}
