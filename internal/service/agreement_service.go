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

type agreementRepository interface {
	List(ctx context.Context, filter models.AgreementFilter) ([]models.Agreement, int, error)
	FindByID(ctx context.Context, clientID, id string) (*models.Agreement, error)
	Create(ctx context.Context, a *models.Agreement) error
	Update(ctx context.Context, a *models.Agreement) error
	UpdateStatus(ctx context.Context, clientID, id string, status models.AgreementStatus) error
}

// CreateAgreementRequest opens a new rental agreement.
type CreateAgreementRequest struct {
	AgreementNumber  string    `json:"agreementNumber" validate:"required"`
	CustomerID       string    `json:"customerId" validate:"required"`
	CustomerName     string    `json:"customerName" validate:"required"`
	VehicleID        string    `json:"vehicleId" validate:"required"`
	VehicleNo        string    `json:"vehicleNo" validate:"required"`
	CheckoutDate     time.Time `json:"checkoutDate" validate:"required"`
	CheckoutLocation string    `json:"checkoutLocation" validate:"required"`
	TotalAmount      float64   `json:"totalAmount" validate:"gte=0"`
}

// AgreementService handles rental agreement use-cases.
type AgreementService struct {
	repo            agreementRepository
	defaultPageSize int
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewAgreementService constructs the agreement service.
func NewAgreementService(repo agreementRepository, defaultPageSize int, validate *validator.Validate, logger *zap.Logger) *AgreementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgreementService{repo: repo, defaultPageSize: defaultPageSize, validator: validate, logger: logger}
}

// List searches agreements using a normalized query.
func (s *AgreementService) List(ctx context.Context, clientID string, q search.Query) ([]models.Agreement, *response.PageMeta, error) {
	n := search.Normalize(q, s.defaultPageSize)
	filter := agreementFilterFrom(clientID, n)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list agreements")
	}
	meta := response.NewPageMeta(n.PageNumber, n.Size, total)
	return items, &meta, nil
}

// Get loads a single agreement scoped to the tenant.
func (s *AgreementService) Get(ctx context.Context, clientID, id string) (*models.Agreement, error) {
	agreement, err := s.repo.FindByID(ctx, clientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "agreement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load agreement")
	}
	return agreement, nil
}

// Create opens a new agreement in the Open status.
func (s *AgreementService) Create(ctx context.Context, clientID string, req CreateAgreementRequest) (*models.Agreement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid agreement payload")
	}

	now := time.Now().UTC()
	agreement := &models.Agreement{
		ID:               uuid.NewString(),
		ClientID:         clientID,
		AgreementNumber:  req.AgreementNumber,
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		VehicleID:        req.VehicleID,
		VehicleNo:        req.VehicleNo,
		Status:           models.AgreementStatusOpen,
		CheckoutDate:     req.CheckoutDate,
		CheckoutLocation: req.CheckoutLocation,
		TotalAmount:      req.TotalAmount,
		BalanceDue:       req.TotalAmount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, agreement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create agreement")
	}
	return agreement, nil
}

// UpdateStatus transitions an agreement between life cycle states.
func (s *AgreementService) UpdateStatus(ctx context.Context, clientID, id string, status models.AgreementStatus) error {
	switch status {
	case models.AgreementStatusOpen, models.AgreementStatusClosed, models.AgreementStatusVoid:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown agreement status")
	}
	if err := s.repo.UpdateStatus(ctx, clientID, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "agreement not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update agreement status")
	}
	return nil
}

// agreementFilterFrom maps the canonical filter strings onto the typed
// repository filter. Unknown keys are folded into the keyword search.
func agreementFilterFrom(clientID string, n search.Normalized) models.AgreementFilter {
	filter := models.AgreementFilter{
		ClientID: clientID,
		Page:     n.PageNumber,
		PageSize: n.Size,
	}
	for key, value := range n.SearchFilters {
		switch strings.ToLower(key) {
		case "statuses", "status":
			for _, raw := range strings.Split(value, ",") {
				if status := strings.ToUpper(strings.TrimSpace(raw)); status != "" {
					filter.Statuses = append(filter.Statuses, models.AgreementStatus(status))
				}
			}
		case "customerid":
			filter.CustomerID = value
		case "vehicleno":
			filter.VehicleNo = value
		case "agreementnumber":
			filter.AgreementNumber = value
		default:
			filter.Keyword = value
		}
	}
	return filter
}
