package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// WidgetHandler exposes dashboard widget endpoints.
type WidgetHandler struct {
	widgets *service.WidgetService
}

// NewWidgetHandler constructs WidgetHandler.
func NewWidgetHandler(widgets *service.WidgetService) *WidgetHandler {
	return &WidgetHandler{widgets: widgets}
}

// List godoc
// @Summary List dashboard widgets
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/widgets [get]
func (h *WidgetHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	widgets, err := h.widgets.List(c.Request.Context(), claims.ClientID, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, widgets, nil)
}

// Save godoc
// @Summary Save dashboard widget layout
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param payload body service.SaveWidgetsRequest true "Widget layout"
// @Success 200 {object} response.Envelope
// @Router /dashboard/widgets [put]
func (h *WidgetHandler) Save(c *gin.Context) {
	var req service.SaveWidgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid widget payload"))
		return
	}
	claims := claimsFromContext(c)
	widgets, err := h.widgets.Save(c.Request.Context(), claims.ClientID, claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, widgets, nil)
}
