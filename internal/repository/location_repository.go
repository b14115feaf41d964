package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// LocationRepository provides database access for rental branches.
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, client_id, name, address, city, active, created_at, updated_at`

// List returns locations matching the filter with the total match count.
func (r *LocationRepository) List(ctx context.Context, filter models.LocationFilter) ([]models.Location, int, error) {
	conditions := []string{"client_id = $1"}
	args := []interface{}{filter.ClientID}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(city) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM locations`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+locationColumns+` FROM locations%s ORDER BY name ASC LIMIT %d OFFSET %d`,
		where, filter.PageSize, (filter.Page-1)*filter.PageSize)
	locations := make([]models.Location, 0)
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}

	return locations, total, nil
}

// FindByID returns a location by identifier scoped to the client.
func (r *LocationRepository) FindByID(ctx context.Context, clientID, id string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE client_id = $1 AND id = $2 LIMIT 1`
	var location models.Location
	if err := r.db.GetContext(ctx, &location, query, clientID, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return &location, nil
}

// Create inserts a new location row.
func (r *LocationRepository) Create(ctx context.Context, l *models.Location) error {
	const query = `INSERT INTO locations (id, client_id, name, address, city, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		l.ID, l.ClientID, l.Name, l.Address, l.City, l.Active, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// Update persists mutable location fields.
func (r *LocationRepository) Update(ctx context.Context, l *models.Location) error {
	const query = `UPDATE locations SET name = $3, address = $4, city = $5, active = $6, updated_at = $7 WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, l.ClientID, l.ID, l.Name, l.Address, l.City, l.Active, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
