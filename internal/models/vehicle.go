package models

import "time"

// Vehicle is a fleet unit available for rental.
type Vehicle struct {
	ID            string    `db:"id" json:"id"`
	ClientID      string    `db:"client_id" json:"clientId"`
	VehicleNo     string    `db:"vehicle_no" json:"vehicleNo"`
	LicensePlate  string    `db:"license_plate" json:"licensePlate"`
	VehicleTypeID string    `db:"vehicle_type_id" json:"vehicleTypeId"`
	VehicleType   string    `db:"vehicle_type" json:"vehicleType"`
	Make          string    `db:"make" json:"make"`
	Model         string    `db:"model" json:"model"`
	Year          int       `db:"year" json:"year"`
	LocationID    string    `db:"location_id" json:"locationId"`
	Odometer      int       `db:"odometer" json:"odometer"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// VehicleFilter captures list criteria derived from normalized search input.
type VehicleFilter struct {
	ClientID      string
	Active        *bool
	VehicleNo     string
	VehicleTypeID string
	LocationID    string
	Keyword       string
	Page          int
	PageSize      int
}
