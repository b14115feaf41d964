package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// LocationHandler exposes rental branch endpoints.
type LocationHandler struct {
	locations *service.LocationService
}

// NewLocationHandler constructs LocationHandler.
func NewLocationHandler(locations *service.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// List godoc
// @Summary Search locations
// @Tags Locations
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, meta, err := h.locations.List(c.Request.Context(), claims.ClientID, searchQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary Get location detail
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Envelope
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	location, err := h.locations.Get(c.Request.Context(), claims.ClientID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, location, nil)
}

// Create godoc
// @Summary Register a location
// @Tags Locations
// @Accept json
// @Produce json
// @Param payload body service.UpsertLocationRequest true "Location payload"
// @Success 201 {object} response.Envelope
// @Router /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req service.UpsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	location, err := h.locations.Create(c.Request.Context(), claims.ClientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, location)
}

// Update godoc
// @Summary Update a location
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param payload body service.UpsertLocationRequest true "Location payload"
// @Success 200 {object} response.Envelope
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	var req service.UpsertLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	location, err := h.locations.Update(c.Request.Context(), claims.ClientID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, location, nil)
}
