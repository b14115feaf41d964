package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// ReportHandler exposes the report catalog, runner and export endpoints.
type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// List godoc
// @Summary List the report catalog
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	reports, err := h.reports.List(c.Request.Context(), claims.ClientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Describe godoc
// @Summary Get report detail and session criteria
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Describe(c *gin.Context) {
	claims := claimsFromContext(c)
	detail, criteria, err := h.reports.Describe(c.Request.Context(), claims.ClientID, claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"reportId":       detail.ReportID,
		"name":           detail.Name,
		"title":          detail.Title,
		"searchCriteria": detail.SearchCriteria,
		"outputFields":   detail.OutputFields,
		"values":         criteria,
	}, nil)
}

// SetCriterion godoc
// @Summary Update one report criterion value
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body models.CriterionValue true "Criterion value"
// @Success 204 "No Content"
// @Router /reports/{id}/criteria [put]
func (h *ReportHandler) SetCriterion(c *gin.Context) {
	var payload models.CriterionValue
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid criterion payload"))
		return
	}
	claims := claimsFromContext(c)
	if err := h.reports.SetCriterion(c.Request.Context(), claims.ClientID, claims.UserID, c.Param("id"), payload.Name, payload.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Run godoc
// @Summary Run a report with the session criteria
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reports/{id}/run [post]
func (h *ReportHandler) Run(c *gin.Context) {
	result, err := h.reports.Run(c.Request.Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Reset the report session to its initial criteria
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 204 "No Content"
// @Router /reports/{id}/reset [post]
func (h *ReportHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if err := h.reports.Reset(c.Request.Context(), claims.ClientID, claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Result godoc
// @Summary Get the last run result of the session
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{id}/result [get]
func (h *ReportHandler) Result(c *gin.Context) {
	claims := claimsFromContext(c)
	result, err := h.reports.LastResult(c.Request.Context(), claims.ClientID, claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Queue a report export
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body object true "Export format"
// @Success 202 {object} response.Envelope
// @Router /reports/{id}/exports [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var payload struct {
		Format models.ExportFormat `json:"format" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format required"))
		return
	}
	job, err := h.exports.Enqueue(c.Request.Context(), identityFromContext(c), c.Param("id"), payload.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// ExportStatus godoc
// @Summary Get export job status
// @Tags Reports
// @Produce json
// @Param jobId path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /reports/exports/{jobId} [get]
func (h *ReportHandler) ExportStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	job, err := h.exports.Get(c.Request.Context(), c.Param("jobId"), claims.ClientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Download godoc
// @Summary Download a rendered export by signed token
// @Tags Reports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /reports/exports/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token query parameter required"))
		return
	}
	file, err := h.exports.Download(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(file.Name())+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
