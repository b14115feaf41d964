package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// VehicleHandler exposes fleet unit endpoints.
type VehicleHandler struct {
	vehicles *service.VehicleService
}

// NewVehicleHandler constructs VehicleHandler.
func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// List godoc
// @Summary Search vehicles
// @Tags Vehicles
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, meta, err := h.vehicles.List(c.Request.Context(), claims.ClientID, searchQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary Get vehicle detail
// @Tags Vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.Envelope
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	vehicle, err := h.vehicles.Get(c.Request.Context(), claims.ClientID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vehicle, nil)
}

// Create godoc
// @Summary Register a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param payload body service.UpsertVehicleRequest true "Vehicle payload"
// @Success 201 {object} response.Envelope
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	var req service.UpsertVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	vehicle, err := h.vehicles.Create(c.Request.Context(), claims.ClientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vehicle)
}

// Update godoc
// @Summary Update a vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param payload body service.UpsertVehicleRequest true "Vehicle payload"
// @Success 200 {object} response.Envelope
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	var req service.UpsertVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	vehicle, err := h.vehicles.Update(c.Request.Context(), claims.ClientID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vehicle, nil)
}
