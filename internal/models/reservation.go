package models

import "time"

// ReservationStatus enumerates booking life cycle states.
type ReservationStatus string

const (
	ReservationStatusOpen      ReservationStatus = "OPEN"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusNoShow    ReservationStatus = "NOSHOW"
)

// Reservation is a future booking for a vehicle type at a location.
type Reservation struct {
	ID                string            `db:"id" json:"id"`
	ClientID          string            `db:"client_id" json:"clientId"`
	ReservationNumber string            `db:"reservation_number" json:"reservationNumber"`
	CustomerID        string            `db:"customer_id" json:"customerId"`
	CustomerName      string            `db:"customer_name" json:"customerName"`
	VehicleTypeID     string            `db:"vehicle_type_id" json:"vehicleTypeId"`
	VehicleType       string            `db:"vehicle_type" json:"vehicleType"`
	Status            ReservationStatus `db:"status" json:"status"`
	StartDate         time.Time         `db:"start_date" json:"startDate"`
	EndDate           time.Time         `db:"end_date" json:"endDate"`
	PickupLocation    string            `db:"pickup_location" json:"pickupLocation"`
	ReturnLocation    string            `db:"return_location" json:"returnLocation"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updatedAt"`
}

// ReservationFilter captures list criteria derived from normalized search input.
type ReservationFilter struct {
	ClientID          string
	Statuses          []ReservationStatus
	CustomerID        string
	ReservationNumber string
	VehicleTypeID     string
	Keyword           string
	Page              int
	PageSize          int
}
