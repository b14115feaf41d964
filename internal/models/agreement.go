package models

import "time"

// AgreementStatus enumerates rental agreement life cycle states.
type AgreementStatus string

const (
	AgreementStatusOpen   AgreementStatus = "OPEN"
	AgreementStatusClosed AgreementStatus = "CLOSED"
	AgreementStatusVoid   AgreementStatus = "VOID"
)

// Agreement is a rental agreement binding a customer to a vehicle.
type Agreement struct {
	ID                string          `db:"id" json:"id"`
	ClientID          string          `db:"client_id" json:"clientId"`
	AgreementNumber   string          `db:"agreement_number" json:"agreementNumber"`
	CustomerID        string          `db:"customer_id" json:"customerId"`
	CustomerName      string          `db:"customer_name" json:"customerName"`
	VehicleID         string          `db:"vehicle_id" json:"vehicleId"`
	VehicleNo         string          `db:"vehicle_no" json:"vehicleNo"`
	Status            AgreementStatus `db:"status" json:"status"`
	CheckoutDate      time.Time       `db:"checkout_date" json:"checkoutDate"`
	CheckinDate       *time.Time      `db:"checkin_date" json:"checkinDate,omitempty"`
	CheckoutLocation  string          `db:"checkout_location" json:"checkoutLocation"`
	CheckinLocation   *string         `db:"checkin_location" json:"checkinLocation,omitempty"`
	TotalAmount       float64         `db:"total_amount" json:"totalAmount"`
	BalanceDue        float64         `db:"balance_due" json:"balanceDue"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// AgreementFilter captures list criteria derived from normalized search input.
type AgreementFilter struct {
	ClientID        string
	Statuses        []AgreementStatus
	CustomerID      string
	VehicleNo       string
	AgreementNumber string
	Keyword         string
	Page            int
	PageSize        int
}
