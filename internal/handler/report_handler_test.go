package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/middleware"
	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
)

type fakeReportCatalog struct {
	detail *models.ReportDetail
	rows   []models.ReportRow
}

func (f *fakeReportCatalog) List(ctx context.Context, clientID string) ([]models.ReportSummary, error) {
	return []models.ReportSummary{{ReportID: f.detail.ReportID, Name: f.detail.Name, Title: f.detail.Title}}, nil
}

func (f *fakeReportCatalog) GetDetail(ctx context.Context, clientID, reportID string) (*models.ReportDetail, error) {
	return f.detail, nil
}

func (f *fakeReportCatalog) Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error) {
	return f.rows, nil
}

func reportTestDetail() *models.ReportDetail {
	def := "Today"
	return &models.ReportDetail{
		ReportID: "rpt-1",
		Name:     "agreements",
		Title:    "Agreement Summary",
		SearchCriteria: []models.SearchCriterion{
			{Name: "startDate", FieldType: models.FieldTypeDate, DefaultValue: &def},
		},
	}
}

func testContextWithClaims(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", ClientID: "c-1", Role: models.RoleAdmin})
	return c, rec
}

func newReportHandlerForTest(repo *fakeReportCatalog) *ReportHandler {
	reports := service.NewReportService(service.ReportServiceParams{
		Repo: repo,
		Now:  func() time.Time { return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) },
	})
	return NewReportHandler(reports, nil)
}

func TestReportHandlerDescribeSeedsCriteria(t *testing.T) {
	handler := newReportHandlerForTest(&fakeReportCatalog{detail: reportTestDetail()})

	c, rec := testContextWithClaims(t, http.MethodGet, "/reports/rpt-1", "")
	c.Params = gin.Params{{Key: "id", Value: "rpt-1"}}

	handler.Describe(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Values []models.CriterionValue `json:"values"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Values, 1)
	assert.Equal(t, models.CriterionValue{Name: "startDate", Value: "2024-03-15"}, envelope.Data.Values[0])
}

func TestReportHandlerRunReturnsRows(t *testing.T) {
	handler := newReportHandlerForTest(&fakeReportCatalog{
		detail: reportTestDetail(),
		rows:   []models.ReportRow{{"agreementNumber": "AGR-1"}},
	})

	c, rec := testContextWithClaims(t, http.MethodPost, "/reports/rpt-1/run", "")
	c.Params = gin.Params{{Key: "id", Value: "rpt-1"}}

	handler.Run(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, models.RunStatusSucceeded, envelope.Data.Status)
	assert.Len(t, envelope.Data.Rows, 1)
}

func TestReportHandlerSetCriterionRejectsUnknownName(t *testing.T) {
	handler := newReportHandlerForTest(&fakeReportCatalog{detail: reportTestDetail()})

	c, rec := testContextWithClaims(t, http.MethodPut, "/reports/rpt-1/criteria", `{"name":"nope","value":"x"}`)
	c.Params = gin.Params{{Key: "id", Value: "rpt-1"}}
	c.Request.Header.Set("Content-Type", "application/json")

	handler.SetCriterion(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
