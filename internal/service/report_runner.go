package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

// ReportExecutor runs a report's stored query with the bound criteria.
type ReportExecutor interface {
	Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error)
}

// RunnerIdentity carries the session-bound values injected into hidden
// criteria at execution time.
type RunnerIdentity struct {
	ClientID   string
	UserID     string
	CustomerID string
}

// ReportRunnerParams configures a ReportRunner.
type ReportRunnerParams struct {
	Detail   *models.ReportDetail
	Executor ReportExecutor
	Timeout  time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

// ReportRunner holds the criteria and execution state for one report
// session. One runner serves one report for one caller; all methods are safe
// for concurrent use.
type ReportRunner struct {
	detail   *models.ReportDetail
	executor ReportExecutor
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	pending  bool
	status   models.RunStatus
	criteria []models.CriterionValue
	result   models.RunResult
}

// NewReportRunner builds a runner seeded with the report's initial criteria.
func NewReportRunner(params ReportRunnerParams) *ReportRunner {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	return &ReportRunner{
		detail:   params.Detail,
		executor: params.Executor,
		timeout:  params.Timeout,
		logger:   params.Logger,
		now:      params.Now,
		status:   models.RunStatusIdle,
		criteria: MakeInitialCriteria(params.Detail, params.Now()),
	}
}

// Criteria returns a copy of the current criterion values.
func (r *ReportRunner) Criteria() []models.CriterionValue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.CriterionValue, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// SetCriterion updates the value of a named criterion. Unknown names are
// rejected so a typo in the request never silently widens a query.
func (r *ReportRunner) SetCriterion(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.criteria {
		if strings.EqualFold(r.criteria[i].Name, name) {
			r.criteria[i].Value = value
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, "unknown report criterion: "+name)
}

// Status returns the current run status.
func (r *ReportRunner) Status() models.RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Result returns the outcome of the last completed run.
func (r *ReportRunner) Result() models.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Reset restores the initial criteria and returns the runner to idle. A
// reset while a run is pending is refused.
func (r *ReportRunner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		return appErrors.Clone(appErrors.ErrRunInProgress, "report run still in progress")
	}
	r.criteria = MakeInitialCriteria(r.detail, r.now())
	r.status = models.RunStatusIdle
	r.result = models.RunResult{Status: models.RunStatusIdle}
	return nil
}

// Run executes the report with the current criteria plus the hidden
// session-bound criteria resolved from identity. While a run is pending any
// further Run call returns ErrRunInProgress without starting a second
// execution.
func (r *ReportRunner) Run(ctx context.Context, identity RunnerIdentity) (models.RunResult, error) {
	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return models.RunResult{}, appErrors.ErrRunInProgress
	}
	r.pending = true
	r.status = models.RunStatusRunning
	startedAt := r.now()
	criteria := r.boundCriteriaLocked(identity)
	r.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.executor.Execute(runCtx, r.detail, criteria)
	finishedAt := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = false

	if err != nil {
		r.logger.Error("report execution failed",
			zap.String("report_id", r.detail.ReportID),
			zap.Error(err))
		r.status = models.RunStatusFailed
		r.result = models.RunResult{
			Status:     models.RunStatusFailed,
			Message:    appErrors.ErrReportFailed.Message,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		return r.result, appErrors.Wrap(err, appErrors.ErrReportFailed.Code, appErrors.ErrReportFailed.Status, appErrors.ErrReportFailed.Message)
	}

	r.status = models.RunStatusSucceeded
	r.result = models.RunResult{
		Status:     models.RunStatusSucceeded,
		Rows:       rows,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	return r.result, nil
}

// BoundCriteria returns the current criteria with the hidden session
// criteria resolved from identity, the exact set a run would execute with.
func (r *ReportRunner) BoundCriteria(identity RunnerIdentity) []models.CriterionValue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boundCriteriaLocked(identity)
}

// boundCriteriaLocked appends the hidden session criteria to a copy of the
// visible ones. Caller must hold r.mu.
func (r *ReportRunner) boundCriteriaLocked(identity RunnerIdentity) []models.CriterionValue {
	bound := make([]models.CriterionValue, len(r.criteria))
	copy(bound, r.criteria)

	for _, c := range r.detail.SearchCriteria {
		if !isHiddenCriterion(c) {
			continue
		}
		def := ""
		if c.DefaultValue != nil {
			def = strings.ToLower(strings.TrimSpace(*c.DefaultValue))
		}
		var value string
		switch {
		case def == "clientid":
			value = identity.ClientID
		case def == "userid":
			value = identity.UserID
		default:
			value = identity.CustomerID
		}
		bound = append(bound, models.CriterionValue{Name: c.Name, Value: value})
	}
	return bound
}
