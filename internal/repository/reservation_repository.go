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

// ReservationRepository provides database access for bookings.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, client_id, reservation_number, customer_id, customer_name, vehicle_type_id, vehicle_type,
	status, start_date, end_date, pickup_location, return_location, created_at, updated_at`

// List returns reservations matching the filter with the total match count.
func (r *ReservationRepository) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, int, error) {
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
	if filter.ReservationNumber != "" {
		conditions = append(conditions, fmt.Sprintf("reservation_number = $%d", len(args)+1))
		args = append(args, filter.ReservationNumber)
	}
	if filter.VehicleTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_type_id = $%d", len(args)+1))
		args = append(args, filter.VehicleTypeID)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(customer_name) LIKE $%d OR LOWER(reservation_number) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reservations`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count reservations: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+reservationColumns+` FROM reservations%s ORDER BY start_date DESC LIMIT %d OFFSET %d`,
		where, filter.PageSize, (filter.Page-1)*filter.PageSize)
	reservations := make([]models.Reservation, 0)
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reservations: %w", err)
	}

	return reservations, total, nil
}

// FindByID returns a reservation by identifier scoped to the client.
func (r *ReservationRepository) FindByID(ctx context.Context, clientID, id string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE client_id = $1 AND id = $2 LIMIT 1`
	var reservation models.Reservation
	if err := r.db.GetContext(ctx, &reservation, query, clientID, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find reservation by id: %w", err)
	}
	return &reservation, nil
}

// Create inserts a new reservation row.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	const query = `INSERT INTO reservations (id, client_id, reservation_number, customer_id, customer_name, vehicle_type_id,
		vehicle_type, status, start_date, end_date, pickup_location, return_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := r.db.ExecContext(ctx, query,
		res.ID, res.ClientID, res.ReservationNumber, res.CustomerID, res.CustomerName, res.VehicleTypeID,
		res.VehicleType, res.Status, res.StartDate, res.EndDate, res.PickupLocation, res.ReturnLocation, res.CreatedAt, res.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// UpdateStatus transitions a reservation to the provided status.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, clientID, id string, status models.ReservationStatus) error {
	const query = `UPDATE reservations SET status = $3, updated_at = NOW() WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, clientID, id, status)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
