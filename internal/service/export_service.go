package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/repository"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
	"github.com/rentall-dev/fleet-admin-api/pkg/export"
	"github.com/rentall-dev/fleet-admin-api/pkg/jobs"
	"github.com/rentall-dev/fleet-admin-api/pkg/storage"
)

type exportJobRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export job behaviour.
type ExportConfig struct {
	APIPrefix       string
	ResultTTL       time.Duration
	CleanupInterval time.Duration
	Workers         int
	MaxRetries      int
}

// ExportService renders finished report runs to CSV or PDF as background
// jobs and serves the results through signed URLs.
type ExportService struct {
	reports *ReportService
	repo    reportRepository
	jobsDB  exportJobRepository
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	queue   *jobs.Queue
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService and its worker queue. Call
// Start before enqueueing.
func NewExportService(reports *ReportService, repo reportRepository, jobsDB exportJobRepository, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}

	s := &ExportService{
		reports: reports,
		repo:    repo,
		jobsDB:  jobsDB,
		storage: store,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
	s.queue = jobs.NewQueue("report-export", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the worker queue and the result cleanup loop.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the worker queue.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue snapshots the caller's session criteria into a persisted job and
// schedules it for rendering.
func (s *ExportService) Enqueue(ctx context.Context, identity RunnerIdentity, reportID string, format models.ExportFormat) (*models.ExportJob, error) {
	if format != models.ExportFormatCSV && format != models.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+string(format))
	}

	criteria, err := s.reports.BoundCriteria(ctx, identity, reportID)
	if err != nil {
		return nil, err
	}
	detail, _, err := s.reports.Describe(ctx, identity.ClientID, identity.UserID, reportID)
	if err != nil {
		return nil, err
	}

	job := &models.ExportJob{
		ReportID: reportID,
		Status:   models.ExportStatusQueued,
		Params: models.ExportJobParams{
			ClientID: identity.ClientID,
			UserID:   identity.UserID,
			Criteria: criteria,
			Format:   format,
			Title:    detail.Title,
		},
		CreatedBy: identity.UserID,
	}
	if err := s.jobsDB.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "report-export"}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule export job")
	}
	return job, nil
}

// Get returns an export job scoped to its owner.
func (s *ExportService) Get(ctx context.Context, jobID, clientID string) (*models.ExportJob, error) {
	job, err := s.jobsDB.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export job")
	}
	if job.Params.ClientID != clientID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// Download resolves a signed token to the rendered file.
func (s *ExportService) Download(token string) (*os.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, nil
}

// process renders one queued export job. Failures are persisted and
// returned so the queue can retry.
func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	record, err := s.jobsDB.GetByID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", job.ID, err)
	}

	processing := models.ExportStatusProcessing
	if err := s.jobsDB.Update(ctx, record.ID, repository.UpdateExportJobParams{Status: &processing}); err != nil {
		s.logger.Warn("failed to mark export job processing", zap.String("job_id", record.ID), zap.Error(err))
	}

	payload, err := s.render(ctx, record)
	if err != nil {
		s.markFailed(ctx, record.ID, err)
		return err
	}

	relPath, err := s.storage.Save(s.buildFilename(record), payload)
	if err != nil {
		s.markFailed(ctx, record.ID, err)
		return fmt.Errorf("store export %s: %w", record.ID, err)
	}

	token, _, err := s.signer.Generate(record.ID, relPath)
	if err != nil {
		s.markFailed(ctx, record.ID, err)
		return fmt.Errorf("sign export %s: %w", record.ID, err)
	}

	finished := models.ExportStatusFinished
	progress := 100
	url := strings.TrimRight(s.cfg.APIPrefix, "/") + "/reports/exports/download?token=" + token
	now := time.Now().UTC()
	if err := s.jobsDB.Update(ctx, record.ID, repository.UpdateExportJobParams{
		Status:     &finished,
		Progress:   &progress,
		ResultURL:  &url,
		FinishedAt: &now,
	}); err != nil {
		return fmt.Errorf("finish export %s: %w", record.ID, err)
	}

	s.logger.Info("export job finished",
		zap.String("job_id", record.ID),
		zap.String("report_id", record.ReportID),
		zap.String("format", string(record.Params.Format)))
	return nil
}

func (s *ExportService) render(ctx context.Context, record *models.ExportJob) ([]byte, error) {
	detail, err := s.repo.GetDetail(ctx, record.Params.ClientID, record.ReportID)
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", record.ReportID, err)
	}
	rows, err := s.repo.Execute(ctx, detail, record.Params.Criteria)
	if err != nil {
		return nil, fmt.Errorf("execute report %s: %w", record.ReportID, err)
	}

	dataset := s.reports.Render(detail, rows)
	switch record.Params.Format {
	case models.ExportFormatPDF:
		return s.pdf.Render(dataset, detail.Title)
	default:
		return s.csv.Render(dataset)
	}
}

func (s *ExportService) markFailed(ctx context.Context, jobID string, cause error) {
	failed := models.ExportStatusFailed
	msg := appErrors.ErrReportFailed.Message
	now := time.Now().UTC()
	if err := s.jobsDB.Update(ctx, jobID, repository.UpdateExportJobParams{
		Status:       &failed,
		ErrorMessage: &msg,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Warn("failed to mark export job failed", zap.String("job_id", jobID), zap.Error(err))
	}
	s.logger.Error("export job failed", zap.String("job_id", jobID), zap.Error(cause))
}

func (s *ExportService) buildFilename(record *models.ExportJob) string {
	base := sanitizeFilename(record.Params.Title)
	if base == "" {
		base = "report"
	}
	return fmt.Sprintf("%s-%s.%s", base, record.ID, record.Params.Format)
}

func sanitizeFilename(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, raw)
	return strings.ToLower(strings.Trim(cleaned, "-"))
}

// cleanupLoop periodically removes expired export files and their rows.
func (s *ExportService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupExpired(ctx)
		}
	}
}

func (s *ExportService) cleanupExpired(ctx context.Context) {
	removed, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("expired export files removed", zap.Int("count", len(removed)))
	}

	cutoff := time.Now().UTC().Add(-s.cfg.ResultTTL)
	stale, err := s.jobsDB.ListFinishedBefore(ctx, cutoff, 100)
	if err != nil {
		s.logger.Warn("failed to list stale export jobs", zap.Error(err))
		return
	}
	for _, job := range stale {
		var emptyURL string
		if err := s.jobsDB.Update(ctx, job.ID, repository.UpdateExportJobParams{ResultURL: &emptyURL}); err != nil {
			s.logger.Warn("failed to clear stale export url", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}
