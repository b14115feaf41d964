package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

type fakeExecutor struct {
	mu       sync.Mutex
	calls    int
	captured []models.CriterionValue
	rows     []models.ReportRow
	err      error
	block    chan struct{}
}

func (f *fakeExecutor) Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error) {
	f.mu.Lock()
	f.calls++
	f.captured = append([]models.CriterionValue(nil), criteria...)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.rows, f.err
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func runnerDetail() *models.ReportDetail {
	return &models.ReportDetail{
		ReportID: "rpt-agreements",
		Name:     "agreements",
		Title:    "Agreement Summary",
		SearchCriteria: []models.SearchCriterion{
			{Name: "startDate", FieldType: models.FieldTypeDate, DefaultValue: strPtr("ThisMonth")},
			{Name: "tenant", FieldType: models.FieldTypeTextBox, DefaultValue: strPtr("clientid")},
			{Name: "operator", FieldType: models.FieldTypeTextBox, DefaultValue: strPtr("UserId")},
		},
	}
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func TestReportRunnerLifecycle(t *testing.T) {
	exec := &fakeExecutor{rows: []models.ReportRow{{"total": int64(3)}}}
	runner := NewReportRunner(ReportRunnerParams{
		Detail:   runnerDetail(),
		Executor: exec,
		Now:      fixedNow,
	})

	assert.Equal(t, models.RunStatusIdle, runner.Status())
	require.NoError(t, runner.SetCriterion("startDate", "2024-01-01"))

	result, err := runner.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusSucceeded, result.Status)
	assert.Equal(t, models.RunStatusSucceeded, runner.Status())
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, fixedNow(), result.StartedAt)
	assert.Equal(t, fixedNow(), result.FinishedAt)

	captured := exec.captured
	require.Len(t, captured, 3)
	assert.Equal(t, models.CriterionValue{Name: "startDate", Value: "2024-01-01"}, captured[0])
	assert.Equal(t, models.CriterionValue{Name: "tenant", Value: "c-1"}, captured[1])
	assert.Equal(t, models.CriterionValue{Name: "operator", Value: "u-1"}, captured[2])
}

func TestReportRunnerSetUnknownCriterion(t *testing.T) {
	runner := NewReportRunner(ReportRunnerParams{Detail: runnerDetail(), Executor: &fakeExecutor{}, Now: fixedNow})

	err := runner.SetCriterion("nope", "x")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestReportRunnerFailureKeepsUserSafeMessage(t *testing.T) {
	exec := &fakeExecutor{err: errors.New(`pq: syntax error at or near "FRM"`)}
	runner := NewReportRunner(ReportRunnerParams{Detail: runnerDetail(), Executor: exec, Now: fixedNow})

	result, err := runner.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"})
	require.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, runner.Status())
	assert.Equal(t, appErrors.ErrReportFailed.Message, result.Message)
	assert.NotContains(t, result.Message, "syntax error")
}

func TestReportRunnerSecondRunWhilePendingIsRejected(t *testing.T) {
	exec := &fakeExecutor{block: make(chan struct{})}
	runner := NewReportRunner(ReportRunnerParams{Detail: runnerDetail(), Executor: exec, Now: fixedNow})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = runner.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"})
	}()

	require.Eventually(t, func() bool {
		return runner.Status() == models.RunStatusRunning
	}, time.Second, 5*time.Millisecond)

	_, err := runner.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"})
	require.ErrorIs(t, err, appErrors.ErrRunInProgress)

	close(exec.block)
	<-firstDone

	assert.Equal(t, 1, exec.callCount())
}

func TestReportRunnerReset(t *testing.T) {
	exec := &fakeExecutor{rows: []models.ReportRow{{"total": int64(1)}}}
	runner := NewReportRunner(ReportRunnerParams{Detail: runnerDetail(), Executor: exec, Now: fixedNow})

	require.NoError(t, runner.SetCriterion("startDate", "2020-01-01"))
	_, err := runner.Run(context.Background(), RunnerIdentity{ClientID: "c-1", UserID: "u-1"})
	require.NoError(t, err)

	require.NoError(t, runner.Reset())
	assert.Equal(t, models.RunStatusIdle, runner.Status())
	assert.Empty(t, runner.Result().Rows)

	criteria := runner.Criteria()
	require.Len(t, criteria, 1)
	assert.Equal(t, models.CriterionValue{Name: "startDate", Value: "2024-03-01"}, criteria[0])
}
