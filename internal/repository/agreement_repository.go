package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// AgreementRepository provides database access for rental agreements.
type AgreementRepository struct {
	db *sqlx.DB
}

// NewAgreementRepository creates a new instance of AgreementRepository.
func NewAgreementRepository(db *sqlx.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

const agreementColumns = `id, client_id, agreement_number, customer_id, customer_name, vehicle_id, vehicle_no, status,
	checkout_date, checkin_date, checkout_location, checkin_location, total_amount, balance_due, created_at, updated_at`

// List returns agreements matching the filter with the total match count.
func (r *AgreementRepository) List(ctx context.Context, filter models.AgreementFilter) ([]models.Agreement, int, error) {
	conditions := []string{"client_id = $1"}
	args := []interface{}{filter.ClientID}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(statuses))
	}
	if filter.CustomerID != "" {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)+1))
		args = append(args, filter.CustomerID)
	}
	if filter.VehicleNo != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_no = $%d", len(args)+1))
		args = append(args, filter.VehicleNo)
	}
	if filter.AgreementNumber != "" {
		conditions = append(conditions, fmt.Sprintf("agreement_number = $%d", len(args)+1))
		args = append(args, filter.AgreementNumber)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(customer_name) LIKE $%d OR LOWER(agreement_number) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM agreements`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count agreements: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+agreementColumns+` FROM agreements%s ORDER BY checkout_date DESC LIMIT %d OFFSET %d`,
		where, filter.PageSize, (filter.Page-1)*filter.PageSize)
	agreements := make([]models.Agreement, 0)
	if err := r.db.SelectContext(ctx, &agreements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list agreements: %w", err)
	}

	return agreements, total, nil
}

// FindByID returns an agreement by identifier scoped to the client.
func (r *AgreementRepository) FindByID(ctx context.Context, clientID, id string) (*models.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE client_id = $1 AND id = $2 LIMIT 1`
	var agreement models.Agreement
	if err := r.db.GetContext(ctx, &agreement, query, clientID, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find agreement by id: %w", err)
	}
	return &agreement, nil
}

// Create inserts a new agreement row.
func (r *AgreementRepository) Create(ctx context.Context, a *models.Agreement) error {
	const query = `INSERT INTO agreements (id, client_id, agreement_number, customer_id, customer_name, vehicle_id, vehicle_no,
		status, checkout_date, checkin_date, checkout_location, checkin_location, total_amount, balance_due, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	if _, err := r.db.ExecContext(ctx, query,
		a.ID, a.ClientID, a.AgreementNumber, a.CustomerID, a.CustomerName, a.VehicleID, a.VehicleNo,
		a.Status, a.CheckoutDate, a.CheckinDate, a.CheckoutLocation, a.CheckinLocation, a.TotalAmount, a.BalanceDue, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create agreement: %w", err)
	}
	return nil
}

// Update persists mutable agreement fields.
func (r *AgreementRepository) Update(ctx context.Context, a *models.Agreement) error {
	const query = `UPDATE agreements SET customer_id = $3, customer_name = $4, vehicle_id = $5, vehicle_no = $6, status = $7,
		checkout_date = $8, checkin_date = $9, checkout_location = $10, checkin_location = $11, total_amount = $12, balance_due = $13, updated_at = $14
		WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query,
		a.ClientID, a.ID, a.CustomerID, a.CustomerName, a.VehicleID, a.VehicleNo, a.Status,
		a.CheckoutDate, a.CheckinDate, a.CheckoutLocation, a.CheckinLocation, a.TotalAmount, a.BalanceDue, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agreement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus transitions an agreement to the provided status.
func (r *AgreementRepository) UpdateStatus(ctx context.Context, clientID, id string, status models.AgreementStatus) error {
	const query = `UPDATE agreements SET status = $3, updated_at = NOW() WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, clientID, id, status)
	if err != nil {
		return fmt.Errorf("update agreement status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
