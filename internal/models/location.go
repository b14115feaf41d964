package models

import "time"

// Location is a rental branch where vehicles are checked out and returned.
type Location struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"clientId"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	City      string    `db:"city" json:"city"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// LocationFilter captures list criteria derived from normalized search input.
type LocationFilter struct {
	ClientID string
	Active   *bool
	Keyword  string
	Page     int
	PageSize int
}
