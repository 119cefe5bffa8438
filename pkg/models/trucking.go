package models

import "time"

// TruckingOperation is one land movement under a contract. LAND-routed rows
// with no explicit trucking cells still synthesize a single operation from
// the contract identifiers so the movement exists for follow-up entry.
type TruckingOperation struct {
	ID                string     `json:"id" db:"id"`
	ContractID        *string    `json:"contract_id,omitempty" db:"contract_id"`
	ContractNumber    *string    `json:"contract_number,omitempty" db:"contract_number"`
	PONumber          *string    `json:"po_number,omitempty" db:"po_number"`
	OperationID       *string    `json:"operation_id,omitempty" db:"operation_id"`
	Leg               int        `json:"leg" db:"leg"`
	TruckingCompany   *string    `json:"trucking_company,omitempty" db:"trucking_company"`
	VehicleNumber     *string    `json:"vehicle_number,omitempty" db:"vehicle_number"`
	LoadingLocation   *string    `json:"loading_location,omitempty" db:"loading_location"`
	DischargeLocation *string    `json:"discharge_location,omitempty" db:"discharge_location"`
	QuantitySent      *float64   `json:"quantity_sent,omitempty" db:"quantity_sent"`
	QuantityDelivered *float64   `json:"quantity_delivered,omitempty" db:"quantity_delivered"`
	DepartureDate     *time.Time `json:"departure_date,omitempty" db:"departure_date"`
	ArrivalDate       *time.Time `json:"arrival_date,omitempty" db:"arrival_date"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
