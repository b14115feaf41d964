package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// ReservationHandler exposes booking endpoints.
type ReservationHandler struct {
	reservations *service.ReservationService
}

// NewReservationHandler constructs ReservationHandler.
func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// List godoc
// @Summary Search reservations
// @Tags Reservations
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, meta, err := h.reservations.List(c.Request.Context(), claims.ClientID, searchQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary Get reservation detail
// @Tags Reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Envelope
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	reservation, err := h.reservations.Get(c.Request.Context(), claims.ClientID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reservation, nil)
}

// Create godoc
// @Summary Book a reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body service.CreateReservationRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req service.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	reservation, err := h.reservations.Create(c.Request.Context(), claims.ClientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reservation)
}

// UpdateStatus godoc
// @Summary Transition reservation status
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param payload body object true "Status payload"
// @Success 204 "No Content"
// @Router /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}
	claims := claimsFromContext(c)
	if err := h.reservations.UpdateStatus(c.Request.Context(), claims.ClientID, c.Param("id"), payload.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
