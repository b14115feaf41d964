package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// CustomerRepository provides database access for renter profiles.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, client_id, first_name, last_name, email, phone, date_of_birth, license_no, active, created_at, updated_at`

// List returns customers matching the filter with the total match count.
func (r *CustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, int, error) {
	conditions := []string{"client_id = $1"}
	args := []interface{}{filter.ClientID}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Phone != "" {
		conditions = append(conditions, fmt.Sprintf("phone = $%d", len(args)+1))
		args = append(args, filter.Phone)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(email) LIKE $%d)",
			len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+customerColumns+` FROM customers%s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d`,
		where, filter.PageSize, (filter.Page-1)*filter.PageSize)
	customers := make([]models.Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}

	return customers, total, nil
}

// FindByID returns a customer by identifier scoped to the client.
func (r *CustomerRepository) FindByID(ctx context.Context, clientID, id string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE client_id = $1 AND id = $2 LIMIT 1`
	var customer models.Customer
	if err := r.db.GetContext(ctx, &customer, query, clientID, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find customer by id: %w", err)
	}
	return &customer, nil
}

// Create inserts a new customer row.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	const query = `INSERT INTO customers (id, client_id, first_name, last_name, email, phone, date_of_birth, license_no, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		c.ID, c.ClientID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.LicenseNo, c.Active, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// Update persists mutable customer fields.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	const query = `UPDATE customers SET first_name = $3, last_name = $4, email = $5, phone = $6, date_of_birth = $7,
		license_no = $8, active = $9, updated_at = $10 WHERE client_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query,
		c.ClientID, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DateOfBirth, c.LicenseNo, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
