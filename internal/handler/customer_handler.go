package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// CustomerHandler exposes renter profile endpoints.
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List godoc
// @Summary Search customers
// @Tags Customers
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	items, meta, err := h.customers.List(c.Request.Context(), claims.ClientID, searchQueryFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary Get customer detail
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Envelope
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	customer, err := h.customers.Get(c.Request.Context(), claims.ClientID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, customer, nil)
}

// Create godoc
// @Summary Register a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param payload body service.UpsertCustomerRequest true "Customer payload"
// @Success 201 {object} response.Envelope
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	customer, err := h.customers.Create(c.Request.Context(), claims.ClientID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, customer)
}

// Update godoc
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param payload body service.UpsertCustomerRequest true "Customer payload"
// @Success 200 {object} response.Envelope
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	var req service.UpsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	claims := claimsFromContext(c)
	customer, err := h.customers.Update(c.Request.Context(), claims.ClientID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, customer, nil)
}
