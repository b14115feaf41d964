package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// ReportRepository provides access to the report catalog and executes
// stored report queries.
type ReportRepository struct {
	db      *sqlx.DB
	maxRows int
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sqlx.DB, maxRows int) *ReportRepository {
	if maxRows <= 0 {
		maxRows = 5000
	}
	return &ReportRepository{db: db, maxRows: maxRows}
}

// List returns the report catalog for a client.
func (r *ReportRepository) List(ctx context.Context, clientID string) ([]models.ReportSummary, error) {
	const query = `SELECT report_id, name, COALESCE(title, '') AS title FROM reports WHERE client_id = $1 ORDER BY name ASC`
	reports := make([]models.ReportSummary, 0)
	if err := r.db.SelectContext(ctx, &reports, query, clientID); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetDetail loads a report definition with its criteria and output fields.
func (r *ReportRepository) GetDetail(ctx context.Context, clientID, reportID string) (*models.ReportDetail, error) {
	const query = `SELECT report_id, name, COALESCE(title, '') AS title, query FROM reports WHERE client_id = $1 AND report_id = $2 LIMIT 1`
	var detail models.ReportDetail
	if err := r.db.GetContext(ctx, &detail, query, clientID, reportID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find report by id: %w", err)
	}

	const criteriaQuery = `SELECT report_id, name, display_name, field_type, default_value
		FROM report_search_criteria WHERE report_id = $1 ORDER BY name ASC`
	criteria := make([]models.SearchCriterion, 0)
	if err := r.db.SelectContext(ctx, &criteria, criteriaQuery, reportID); err != nil {
		return nil, fmt.Errorf("load report criteria: %w", err)
	}
	for i := range criteria {
		criteria[i].FieldType = models.ParseFieldType(criteria[i].FieldTypeTag)
	}
	detail.SearchCriteria = criteria

	const fieldsQuery = `SELECT report_id, name, data_type FROM report_output_fields WHERE report_id = $1 ORDER BY name ASC`
	fields := make([]models.ReportField, 0)
	if err := r.db.SelectContext(ctx, &fields, fieldsQuery, reportID); err != nil {
		return nil, fmt.Errorf("load report output fields: %w", err)
	}
	detail.OutputFields = fields

	return &detail, nil
}

// Execute runs the report's stored query with the serialized criteria bound
// as named parameters and returns the flat result rows.
func (r *ReportRepository) Execute(ctx context.Context, detail *models.ReportDetail, criteria []models.CriterionValue) ([]models.ReportRow, error) {
	params := make(map[string]interface{}, len(criteria))
	for _, c := range criteria {
		params[c.Name] = c.Value
	}

	bound, args, err := sqlx.Named(detail.Query, params)
	if err != nil {
		return nil, fmt.Errorf("bind report parameters: %w", err)
	}
	bound = r.db.Rebind(bound)

	rows, err := r.db.QueryxContext(ctx, bound, args...)
	if err != nil {
		return nil, fmt.Errorf("execute report %s: %w", detail.ReportID, err)
	}
	defer rows.Close() //nolint:errcheck

	results := make([]models.ReportRow, 0)
	for rows.Next() {
		if len(results) >= r.maxRows {
			break
		}
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		for key, value := range row {
			if raw, ok := value.([]byte); ok {
				row[key] = string(raw)
			}
		}
		results = append(results, models.ReportRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return results, nil
}
