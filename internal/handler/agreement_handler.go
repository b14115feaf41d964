package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// AgreementHandler exposes rental agreement endpoints.
type AgreementHandler struct {
	agreements *service.AgreementService
}

// NewAgreementHandler constructs AgreementHandler.
func NewAgreementHandler(agreements *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreements: agreements}
}

// List godoc
// @Summary Search agreements
// @Tags Agreements
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param Statuses query string false "Comma separated statuses"
// @Param CustomerId query string false "Filter by customer"
// @Param VehicleNo query string false "Filter by vehicle number"
// @Param AgreementNumber query string false "Filter by agreement number"
// @Success 200 {object} response.Envelope
// @Router /agreements [get]
func (h *AgreementHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, meta, err := h.agreements.List(c.Request.Context(), claims.ClientID, searchQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary Get agreement detail
// @Tags Agreements
// @Produce json
// @Param id path string true "Agreement ID"
// @Success 200 {object} response.Envelope
// @Router /agreements/{id} [get]
func (h *AgreementHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	agreement, err := h.agreements.Get(c.Request.Context(), claims.ClientID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, agreement, nil)
}

// Create godoc
// @Summary Open a new agreement
// @Tags Agreements
// @Accept json
// @Produce json
// @Param payload body service.CreateAgreementRequest true "Agreement payload"
// @Success 201 {object} response.Envelope
// @Router /agreements [post]
func (h *AgreementHandler) Create(c *gin.Context) {
	var req service.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	agreement, err := h.agreements.Create(c.Request.Context(), claims.ClientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, agreement)
}

// UpdateStatus godoc
// @Summary Transition agreement status
// @Tags Agreements
// @Accept json
// @Produce json
// @Param id path string true "Agreement ID"
// @Param payload body object true "Status payload"
// @Success 204 "No Content"
// @Router /agreements/{id}/status [put]
func (h *AgreementHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status models.AgreementStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}
	claims := claimsFromContext(c)
	if err := h.agreements.UpdateStatus(c.Request.Context(), claims.ClientID, c.Param("id"), payload.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
