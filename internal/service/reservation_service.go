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

type reservationRepository interface {
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, int, error)
	FindByID(ctx context.Context, clientID, id string) (*models.Reservation, error)
	Create(ctx context.Context, res *models.Reservation) error
	UpdateStatus(ctx context.Context, clientID, id string, status models.ReservationStatus) error
}

// CreateReservationRequest books a vehicle type for a customer.
type CreateReservationRequest struct {
	ReservationNumber string    `json:"reservationNumber" validate:"required"`
	CustomerID        string    `json:"customerId" validate:"required"`
	CustomerName      string    `json:"customerName" validate:"required"`
	VehicleTypeID     string    `json:"vehicleTypeId" validate:"required"`
	VehicleType       string    `json:"vehicleType" validate:"required"`
	StartDate         time.Time `json:"startDate" validate:"required"`
	EndDate           time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	PickupLocation    string    `json:"pickupLocation" validate:"required"`
	ReturnLocation    string    `json:"returnLocation" validate:"required"`
}

// ReservationService handles booking use-cases.
type ReservationService struct {
	repo            reservationRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewReservationService constructs the reservation service.
func NewReservationService(repo reservationRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches reservations using a normalized query.
func (s *ReservationService) List(ctx context.Context, clientID string, q search.Query) ([]models.Reservation, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)

	filter := models.ReservationFilter{ClientID: clientID, Page: n.PageNumber, PageSize: n.Size}
	for key, value := range n.SearchFilters {
		switch strings.ToLower(key) {
		case "statuses", "status":
			for _, raw := range strings.Split(value, ",") {
				if status := strings.ToUpper(strings.TrimSpace(raw)); status != "" {
					filter.Statuses = append(filter.Statuses, models.ReservationStatus(status))
				}
			}
		case "customerid":
			filter.CustomerID = value
		case "reservationnumber":
			filter.ReservationNumber = value
		case "vehicletypeid":
			filter.VehicleTypeID = value
		default:
			filter.Keyword = value
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reservations")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return items, &meta, nil
}

// Get loads a single reservation scoped to the tenant.
func (s *ReservationService) Get(ctx context.Context, clientID, id string) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, clientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservation")
	}
	return reservation, nil
}

// Create books a reservation in the Open status.
func (s *ReservationService) Create(ctx context.Context, clientID string, req CreateReservationRequest) (*models.Reservation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}

	now := time.Now().UTC()
	reservation := &models.Reservation{
		ID:                uuid.NewString(),
		ClientID:          clientID,
		ReservationNumber: req.ReservationNumber,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		VehicleTypeID:     req.VehicleTypeID,
		VehicleType:       req.VehicleType,
		Status:            models.ReservationStatusOpen,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		PickupLocation:    req.PickupLocation,
		ReturnLocation:    req.ReturnLocation,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reservation")
	}
	return reservation, nil
}

// UpdateStatus transitions a reservation between life cycle states.
func (s *ReservationService) UpdateStatus(ctx context.Context, clientID, id string, status models.ReservationStatus) error {
	switch status {
	case models.ReservationStatusOpen, models.ReservationStatusConfirmed,
		models.ReservationStatusCancelled, models.ReservationStatusNoShow:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown reservation status")
	}
	if err := s.repo.UpdateStatus(ctx, clientID, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "reservation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reservation status")
	}
	return nil
}
