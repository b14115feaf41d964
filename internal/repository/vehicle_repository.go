package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// VehicleRepository provides database access for fleet units.
type VehicleRepository struct {
	db *sqlx.DB
}

// NewVehicleRepository creates a new instance of VehicleRepository.
func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, client_id, vehicle_no, license_plate, vehicle_type_id, vehicle_type, make, model, year,
	location_id, odometer, active, created_at, updated_at`

// List returns vehicles matching the filter with the total match count.
func (r *VehicleRepository) List(ctx context.Context, filter models.VehicleFilter) ([]models.Vehicle, int, error) {
	conditions := []string{"client_id = $1"}
	args := []interface{}{filter.ClientID}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.VehicleNo != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_no = $%d", len(args)+1))
		args = append(args, filter.VehicleNo)
	}
	if filter.VehicleTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("vehicle_type_id = $%d", len(args)+1))
		args = append(args, filter.VehicleTypeID)
	}
	if filter.LocationID != "" {
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)+1))
		args = append(args, filter.LocationID)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(vehicle_no) LIKE $%d OR LOWER(license_plate) LIKE $%d OR LOWER(make) LIKE $%d OR LOWER(model) LIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM vehicles`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+vehicleColumns+` FROM vehicles%s ORDER BY vehicle_no ASC LIMIT %d OFFSET %d`,
		where, filter.PageSize, (filter.Page-1)*filter.PageSize)
	vehicles := make([]models.Vehicle, 0)
	if err := r.db.SelectContext(ctx, &vehicles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// FindByID returns a vehicle by identifier scoped to the client.
func (r *VehicleRepository) FindByID(ctx context.Context, clientID, id string) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE client_id = $1 AND id = $2 LIMIT 1`
	var vehicle models.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, clientID, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find vehicle by id: %w", err)
	}
	return &vehicle, nil
}

// Create inserts a new vehicle row.
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	const query = `INSERT INTO vehicles (id, client_id, vehicle_no, license_plate, vehicle_type_id, vehicle_type, make, model,
		year, location_id, odometer, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := r.db.ExecContext(ctx, query,
		v.ID, v.ClientID, v.VehicleNo, v.LicensePlate, v.VehicleTypeID, v.VehicleType, v.Make, v.Model,
		v.Year, v.LocationID, v.Odometer, v.Active, v.CreatedAt, v.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// Update persists mutable vehicle fields.
func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	const query = `UPDATE vehicles SET vehicle_no = $3, license_plate = $4, vehicle_type_id = $5, vehicle_type = $6, make = $7,
		model = $8, year = $9, location_id = $10, odometer = $11, active = $12, updated_at = $13 WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query,
		v.ClientID, v.ID, v.VehicleNo, v.LicensePlate, v.VehicleTypeID, v.VehicleType, v.Make,
		v.Model, v.Year, v.LocationID, v.Odometer, v.Active, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
