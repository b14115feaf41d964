package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

type fakeReportRepo struct {
	summaries  []models.ReportSummary
	detail     *models.ReportDetail
	detailErr  error
	rows       []models.ReportRow
	execErr    error
	detailHits int
}

func (f *fakeReportRepo) List(ctx context.Context, clientID string) ([]models.ReportSummary, error) {
	return f.summaries, nil
}

func (f *fakeReportRepo) GetDetail(ctx context.Context, clientID, reportID string) (*models.ReportDetail, error) {
	f.detailHits++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeReportRepo) Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error) {
	return f.rows, f.execErr
}

func TestReportServiceDescribeReusesSession(t *testing.T) {
	repo := &fakeReportRepo{detail: runnerDetail()}
	svc := NewReportService(ReportServiceParams{Repo: repo, Now: fixedNow})

	_, criteria, err := svc.Describe(context.Background(), "c-1", "u-1", "rpt-agreements")
	require.NoError(t, err)
	require.Len(t, criteria, 1)

	require.NoError(t, svc.SetCriterion(context.Background(), "c-1", "u-1", "rpt-agreements", "startDate", "2024-02-01"))

	_, criteria, err = svc.Describe(context.Background(), "c-1", "u-1", "rpt-agreements")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", criteria[0].Value)
	assert.Equal(t, 1, repo.detailHits)
}

func TestReportServiceSessionsAreIsolated(t *testing.T) {
	repo := &fakeReportRepo{detail: runnerDetail()}
	svc := NewReportService(ReportServiceParams{Repo: repo, Now: fixedNow})

	require.NoError(t, svc.SetCriterion(context.Background(), "c-1", "u-1", "rpt-agreements", "startDate", "2024-02-01"))

	_, criteria, err := svc.Describe(context.Background(), "c-1", "u-2", "rpt-agreements")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", criteria[0].Value)
}

func TestReportServiceUnknownReport(t *testing.T) {
	repo := &fakeReportRepo{detailErr: sql.ErrNoRows}
	svc := NewReportService(ReportServiceParams{Repo: repo, Now: fixedNow})

	_, _, err := svc.Describe(context.Background(), "c-1", "u-1", "missing")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestReportServiceRunRecordsOutcome(t *testing.T) {
	repo := &fakeReportRepo{
		detail: runnerDetail(),
		rows:   []models.ReportRow{{"agreementNumber": "AGR-1"}},
	}
	svc := NewReportService(ReportServiceParams{Repo: repo, Now: fixedNow})

	result, err := svc.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"}, "rpt-agreements")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusSucceeded, result.Status)
	assert.Len(t, result.Rows, 1)
}

func TestReportServiceRenderUsesOutputFields(t *testing.T) {
	detail := runnerDetail()
	detail.OutputFields = []models.ReportField{
		{Name: "agreementNumber", DataType: "string"},
		{Name: "totalAmount", DataType: "decimal"},
	}
	svc := NewReportService(ReportServiceParams{Repo: &fakeReportRepo{}, Now: fixedNow})

	dataset := svc.Render(detail, []models.ReportRow{
		{"agreementNumber": "AGR-1", "totalAmount": "120.5", "ignored": "x"},
	})

	assert.Equal(t, []string{"agreementNumber", "totalAmount"}, dataset.Headers)
	require.Len(t, dataset.Rows, 1)
	assert.Equal(t, "120.50", dataset.Rows[0]["totalAmount"])
	assert.NotContains(t, dataset.Rows[0], "ignored")
}

func TestReportServiceRenderFallbackHeadersSorted(t *testing.T) {
	detail := runnerDetail()
	detail.OutputFields = nil
	svc := NewReportService(ReportServiceParams{Repo: &fakeReportRepo{}, Now: fixedNow})

	rows := []models.ReportRow{
		{"vehicleNo": "V-9", "agreementNumber": "AGR-1", "customer": "Ann"},
	}
	dataset := svc.Render(detail, rows)

	assert.Equal(t, []string{"agreementNumber", "customer", "vehicleNo"}, dataset.Headers)
	for i := 0; i < 10; i++ {
		again := svc.Render(detail, rows)
		assert.Equal(t, dataset.Headers, again.Headers)
	}
}
