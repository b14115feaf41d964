package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/export"
)

type reportRepository interface {
	List(ctx context.Context, clientID string) ([]models.ReportSummary, error)
	GetDetail(ctx context.Context, clientID, reportID string) (*models.ReportDetail, error)
	Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error)
}

// ReportServiceParams configures a ReportService.
type ReportServiceParams struct {
	Repo       reportRepository
	Metrics    *MetricsService
	RunTimeout time.Duration
	Logger     *zap.Logger
	Now        func() time.Time
}

// ReportService serves the report catalog and owns one ReportRunner per
// (client, user, report) session.
type ReportService struct {
	repo       reportRepository
	metrics    *MetricsService
	runTimeout time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	runners map[string]*ReportRunner
}

// NewReportService constructs a report service.
func NewReportService(params ReportServiceParams) *ReportService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &ReportService{
		repo:       params.Repo,
		metrics:    params.Metrics,
		runTimeout: params.RunTimeout,
		logger:     params.Logger,
		now:        params.Now,
		runners:    make(map[string]*ReportRunner),
	}
}

// List returns the report catalog visible to the tenant.
func (s *ReportService) List(ctx context.Context, clientID string) ([]models.ReportSummary, error) {
	reports, err := s.repo.List(ctx, clientID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return reports, nil
}

// Describe loads a report's detail and the criteria of the caller's session,
// creating the session when none exists yet.
func (s *ReportService) Describe(ctx context.Context, clientID, userID, reportID string) (*models.ReportDetail, []models.CriterionValue, error) {
	runner, err := s.runnerFor(ctx, clientID, userID, reportID)
	if err != nil {
		return nil, nil, err
	}
	return runner.detail, runner.Criteria(), nil
}

// SetCriterion updates one criterion value in the caller's session.
func (s *ReportService) SetCriterion(ctx context.Context, clientID, userID, reportID, name, value string) error {
	runner, err := s.runnerFor(ctx, clientID, userID, reportID)
	if err != nil {
		return err
	}
	return runner.SetCriterion(name, value)
}

// Reset restores the caller's session to its initial criteria.
func (s *ReportService) Reset(ctx context.Context, clientID, userID, reportID string) error {
	runner, err := s.runnerFor(ctx, clientID, userID, reportID)
	if err != nil {
		return err
	}
	return runner.Reset()
}

// Run executes the caller's session with the current criteria. The hidden
// session criteria come from identity, never from the request body.
func (s *ReportService) Run(ctx context.Context, identity RunnerIdentity, reportID string) (models.RunResult, error) {
	runner, err := s.runnerFor(ctx, identity.ClientID, identity.UserID, reportID)
	if err != nil {
		return models.RunResult{}, err
	}
	result, runErr := runner.Run(ctx, identity)
	if s.metrics != nil && result.Status != "" {
		s.metrics.RecordReportRun(result.Status)
	}
	return result, runErr
}

// BoundCriteria returns the exact criterion set the caller's session would
// execute with, hidden session criteria included.
func (s *ReportService) BoundCriteria(ctx context.Context, identity RunnerIdentity, reportID string) ([]models.CriterionValue, error) {
	runner, err := s.runnerFor(ctx, identity.ClientID, identity.UserID, reportID)
	if err != nil {
		return nil, err
	}
	return runner.BoundCriteria(identity), nil
}

// LastResult returns the outcome of the caller's most recent run.
func (s *ReportService) LastResult(ctx context.Context, clientID, userID, reportID string) (models.RunResult, error) {
	runner, err := s.runnerFor(ctx, clientID, userID, reportID)
	if err != nil {
		return models.RunResult{}, err
	}
	return runner.Result(), nil
}

// Render formats a run's rows into an export dataset using the report's
// declared output fields. Rows missing a declared field render empty cells;
// reports without declared fields fall back to the columns of the first row,
// sorted by name so exports are stable across runs.
func (s *ReportService) Render(detail *models.ReportDetail, rows []models.ReportRow) export.Dataset {
	fields := detail.OutputFields
	if len(fields) == 0 && len(rows) > 0 {
		names := make([]string, 0, len(rows[0]))
		for name := range rows[0] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fields = append(fields, models.ReportField{Name: name, DataType: "string"})
		}
	}

	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name
	}

	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rendered := make(map[string]string, len(fields))
		for _, f := range fields {
			rendered[f.Name] = FormatReportValue(f.DataType, row[f.Name])
		}
		out[i] = rendered
	}
	return export.Dataset{Headers: headers, Rows: out}
}

func sessionKey(clientID, userID, reportID string) string {
	return strings.Join([]string{clientID, userID, reportID}, "|")
}

// runnerFor returns the session runner, creating it from the catalog on
// first use.
func (s *ReportService) runnerFor(ctx context.Context, clientID, userID, reportID string) (*ReportRunner, error) {
	key := sessionKey(clientID, userID, reportID)

	s.mu.Lock()
	runner, ok := s.runners[key]
	s.mu.Unlock()
	if ok {
		return runner, nil
	}

	detail, err := s.repo.GetDetail(ctx, clientID, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.runners[key]; ok {
		return existing, nil
	}
	runner = NewReportRunner(ReportRunnerParams{
		Detail:   detail,
		Executor: s.repo,
		Timeout:  s.runTimeout,
		Logger:   s.logger,
		Now:      s.now,
	})
	s.runners[key] = runner
	return runner, nil
}
