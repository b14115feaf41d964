package models

import "time"

// Customer is a renter profile.
type Customer struct {
	ID          string     `db:"id" json:"id"`
	ClientID    string     `db:"client_id" json:"clientId"`
	FirstName   string     `db:"first_name" json:"firstName"`
	LastName    string     `db:"last_name" json:"lastName"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	LicenseNo   string     `db:"license_no" json:"licenseNo"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// CustomerFilter captures list criteria derived from normalized search input.
type CustomerFilter struct {
	ClientID string
	Active   *bool
	Phone    string
	Keyword  string
	Page     int
	PageSize int
}
