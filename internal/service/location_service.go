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

type locationRepository interface {
	List(ctx context.Context, filter models.LocationFilter) ([]models.Location, int, error)
	FindByID(ctx context.Context, clientID, id string) (*models.Location, error)
	Create(ctx context.Context, l *models.Location) error
	Update(ctx context.Context, l *models.Location) error
}

// UpsertLocationRequest carries rental branch fields.
type UpsertLocationRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Active  *bool  `json:"active"`
}

// LocationService handles rental branch use-cases.
type LocationService struct {
	repo            locationRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewLocationService constructs the location service.
func NewLocationService(repo locationRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *LocationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches branches using a normalized query.
func (s *LocationService) List(ctx context.Context, clientID string, q search.Query) ([]models.Location, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)

	filter := models.LocationFilter{ClientID: clientID, Page: n.PageNumber, PageSize: n.Size}
	for key, value := range n.SearchFilters {
		switch strings.ToLower(key) {
		case "active":
			active := value == "true"
			filter.Active = &active
		default:
			filter.Keyword = value
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list locations")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return items, &meta, nil
}

// Get loads a single branch scoped to the tenant.
func (s *LocationService) Get(ctx context.Context, clientID, id string) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, clientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "location not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load location")
	}
	return location, nil
}

// Create registers a rental branch.
func (s *LocationService) Create(ctx context.Context, clientID string, req UpsertLocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location payload")
	}

	now := time.Now().UTC()
	location := &models.Location{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create location")
	}
	return location, nil
}

// Update persists branch changes.
func (s *LocationService) Update(ctx context.Context, clientID, id string, req UpsertLocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location payload")
	}

	location, err := s.Get(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	location.Name = req.Name
	location.Address = req.Address
	location.City = req.City
	if req.Active != nil {
		location.Active = *req.Active
	}
	location.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "location not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update location")
	}
	return location, nil
}
