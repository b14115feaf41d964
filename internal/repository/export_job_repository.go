package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// ExportJobRepository persists background report export jobs.
type ExportJobRepository struct {
	db *sqlx.DB
}

// NewExportJobRepository creates a new instance of ExportJobRepository.
func NewExportJobRepository(db *sqlx.DB) *ExportJobRepository {
	return &ExportJobRepository{db: db}
}

const exportJobColumns = `id, report_id, params, status, progress, result_url, created_by, created_at, finished_at, error_message`

// Create inserts a new export job, assigning an id when absent.
func (r *ExportJobRepository) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO report_export_jobs (id, report_id, params, status, progress, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		job.ID, job.ReportID, job.Params, job.Status, job.Progress, job.CreatedBy, job.CreatedAt,
	); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// GetByID loads a single export job.
func (r *ExportJobRepository) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	query := `SELECT ` + exportJobColumns + ` FROM report_export_jobs WHERE id = $1 LIMIT 1`
	var job models.ExportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find export job: %w", err)
	}
	return &job, nil
}

// UpdateExportJobParams captures optional field updates for a job.
type UpdateExportJobParams struct {
	Status       *models.ExportStatus
	Progress     *int
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// Update applies the provided field updates to a job row.
func (r *ExportJobRepository) Update(ctx context.Context, id string, params UpdateExportJobParams) error {
	sets := make([]string, 0, 5)
	args := []interface{}{id}

	if params.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *params.Status)
	}
	if params.Progress != nil {
		sets = append(sets, fmt.Sprintf("progress = $%d", len(args)+1))
		args = append(args, *params.Progress)
	}
	if params.ResultURL != nil {
		sets = append(sets, fmt.Sprintf("result_url = $%d", len(args)+1))
		args = append(args, *params.ResultURL)
	}
	if params.ErrorMessage != nil {
		sets = append(sets, fmt.Sprintf("error_message = $%d", len(args)+1))
		args = append(args, *params.ErrorMessage)
	}
	if params.FinishedAt != nil {
		sets = append(sets, fmt.Sprintf("finished_at = $%d", len(args)+1))
		args = append(args, *params.FinishedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE report_export_jobs SET %s WHERE id = $1`, strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	return nil
}

// ListQueued returns jobs awaiting processing, oldest first.
func (r *ExportJobRepository) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	query := fmt.Sprintf(`SELECT `+exportJobColumns+` FROM report_export_jobs WHERE status = $1 ORDER BY created_at ASC LIMIT %d`, limit)
	jobs := make([]models.ExportJob, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, models.ExportStatusQueued); err != nil {
		return nil, fmt.Errorf("list queued export jobs: %w", err)
	}
	return jobs, nil
}

// ListFinishedBefore returns finished jobs older than the cutoff for cleanup.
func (r *ExportJobRepository) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	query := fmt.Sprintf(`SELECT `+exportJobColumns+` FROM report_export_jobs WHERE status = $1 AND finished_at < $2 ORDER BY finished_at ASC LIMIT %d`, limit)
	jobs := make([]models.ExportJob, 0)
	if err := r.db.SelectContext(ctx, &jobs, query, models.ExportStatusFinished, cutoff); err != nil {
		return nil, fmt.Errorf("list finished export jobs: %w", err)
	}
	return jobs, nil
}
