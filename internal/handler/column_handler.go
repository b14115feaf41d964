package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// ColumnHandler exposes column header setting endpoints.
type ColumnHandler struct {
	columns *service.ColumnService
}

// NewColumnHandler constructs ColumnHandler.
func NewColumnHandler(columns *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

// SaveColumnsRequest is the layout save payload for one search screen.
type SaveColumnsRequest struct {
	Type         models.ColumnListType        `json:"type" binding:"required"`
	Settings     []models.ColumnHeaderSetting `json:"settings" binding:"required"`
	AccessorKeys []string                     `json:"accessorKeys"`
}

// List godoc
// @Summary List column settings for a search screen
// @Tags Columns
// @Produce json
// @Param type query int true "List type (1 Agreement, 2 Customer, 3 Vehicle, 4 Reservation)"
// @Success 200 {object} response.Envelope
// @Router /columns [get]
func (h *ColumnHandler) List(c *gin.Context) {
	listType, err := strconv.Atoi(c.Query("type"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type query parameter required"))
		return
	}
	claims := claimsFromContext(c)
	settings, err := h.columns.List(c.Request.Context(), claims.ClientID, claims.UserID, models.ColumnListType(listType))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Save godoc
// @Summary Save column settings for a search screen
// @Tags Columns
// @Accept json
// @Produce json
// @Param payload body handler.SaveColumnsRequest true "Column layout"
// @Success 200 {object} response.Envelope
// @Router /columns [put]
func (h *ColumnHandler) Save(c *gin.Context) {
	var req SaveColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid column payload"))
		return
	}
	claims := claimsFromContext(c)
	update, err := h.columns.Save(c.Request.Context(), claims.ClientID, claims.UserID, req.Type, req.Settings, req.AccessorKeys)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, update, nil)
}
