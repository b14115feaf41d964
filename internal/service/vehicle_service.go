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

type vehicleRepository interface {
	List(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, int, error)
	FindByID(ctx context.Context, clientID, id string) (*models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) error
	Update(ctx context.Context, v *models.Vehicle) error
}

// UpsertVehicleRequest carries fleet unit fields.
type UpsertVehicleRequest struct {
	VehicleNo     string `json:"vehicleNo" validate:"required"`
	LicensePlate  string `json:"licensePlate" validate:"required"`
	VehicleTypeID string `json:"vehicleTypeId" validate:"required"`
	VehicleType   string `json:"vehicleType" validate:"required"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          int    `json:"year" validate:"omitempty,gte=1980"`
	LocationID    string `json:"locationId" validate:"required"`
	Odometer      int    `json:"odometer" validate:"gte=0"`
	Active        *bool  `json:"active"`
}

// VehicleService handles fleet unit use-cases.
type VehicleService struct {
	repo            vehicleRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewVehicleService constructs the vehicle service.
func NewVehicleService(repo vehicleRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *VehicleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VehicleService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches fleet units using a normalized query.
func (s *VehicleService) List(ctx context.Context, clientID string, q search.Query) ([]models.Vehicle, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)

	filter := models.VehicleFilter{ClientID: clientID, Page: n.PageNumber, PageSize: n.Size}
	for key, value := range n.SearchFilters {
		switch strings.ToLower(key) {
		case "active":
			active := value == "true"
			filter.Active = &active
		case "vehicleno":
			filter.VehicleNo = value
		case "vehicletypeid":
			filter.VehicleTypeID = value
		case "locationid":
			filter.LocationID = value
		default:
			filter.Keyword = value
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list vehicles")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return items, &meta, nil
}

// Get loads a single vehicle scoped to the tenant.
func (s *VehicleService) Get(ctx context.Context, clientID, id string) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, clientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load vehicle")
	}
	return vehicle, nil
}

// Create registers a fleet unit.
func (s *VehicleService) Create(ctx context.Context, clientID string, req UpsertVehicleRequest) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vehicle payload")
	}

	now := time.Now().UTC()
	vehicle := &models.Vehicle{
		ID:            uuid.NewString(),
		ClientID:      clientID,
		VehicleNo:     req.VehicleNo,
		LicensePlate:  req.LicensePlate,
		VehicleTypeID: req.VehicleTypeID,
		VehicleType:   req.VehicleType,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		LocationID:    req.LocationID,
		Odometer:      req.Odometer,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create vehicle")
	}
	return vehicle, nil
}

// Update persists fleet unit changes.
func (s *VehicleService) Update(ctx context.Context, clientID, id string, req UpsertVehicleRequest) (*models.Vehicle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid vehicle payload")
	}

	vehicle, err := s.Get(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	vehicle.VehicleNo = req.VehicleNo
	vehicle.LicensePlate = req.LicensePlate
	vehicle.VehicleTypeID = req.VehicleTypeID
	vehicle.VehicleType = req.VehicleType
	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.LocationID = req.LocationID
	vehicle.Odometer = req.Odometer
	if req.Active != nil {
		vehicle.Active = *req.Active
	}
	vehicle.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "vehicle not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update vehicle")
	}
	return vehicle, nil
}
