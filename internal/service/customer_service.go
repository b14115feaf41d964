package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/search"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

type customerRepository interface {
	List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, int, error)
	FindByID(ctx context.Context, clientID, id string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
}

// UpsertCustomerRequest carries customer profile fields.
type UpsertCustomerRequest struct {
	FirstName   string     `json:"firstName" validate:"required"`
	LastName    string     `json:"lastName" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	LicenseNo   string     `json:"licenseNo"`
	Active      *bool      `json:"active"`
}

// CustomerService handles renter profile use-cases.
type CustomerService struct {
	repo            customerRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewCustomerService constructs the customer service.
func NewCustomerService(repo customerRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *CustomerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches customers using a normalized query.
func (s *CustomerService) List(ctx context.Context, clientID string, q search.Query) ([]models.Customer, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)

	filter := models.CustomerFilter{ClientID: clientID, Page: n.PageNumber, PageSize: n.Size}
	for key, value := range n.SearchFilters {
		switch strings.ToLower(key) {
		case "active":
			active := value == "true"
			filter.Active = &active
		case "phone":
			filter.Phone = value
		default:
			filter.Keyword = value
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list customers")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return items, &meta, nil
}

// Get loads a single customer scoped to the tenant.
func (s *CustomerService) Get(ctx context.Context, clientID, id string) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, clientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load customer")
	}
	return customer, nil
}

// Create registers a new customer.
func (s *CustomerService) Create(ctx context.Context, clientID string, req UpsertCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid customer payload")
	}

	now := time.Now().UTC()
	customer := &models.Customer{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		LicenseNo:   req.LicenseNo,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create customer")
	}
	return customer, nil
}

// Update persists customer profile changes.
func (s *CustomerService) Update(ctx context.Context, clientID, id string, req UpsertCustomerRequest) (*models.Customer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid customer payload")
	}

	customer, err := s.Get(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.DateOfBirth = req.DateOfBirth
	customer.LicenseNo = req.LicenseNo
	if req.Active != nil {
		customer.Active = *req.Active
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "customer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update customer")
	}
	return customer, nil
}
