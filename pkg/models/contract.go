package models

import "time"

// Contract statuses
const (
	ContractStatusActive    = "ACTIVE"
	ContractStatusCompleted = "COMPLETED"
	ContractStatusCancelled = "CANCELLED"
)

// Contract is a purchase contract with a supplier
type Contract struct {
	ID              string     `json:"id" db:"id"`
	ContractNumber  *string    `json:"contract_number,omitempty" db:"contract_number"`
	PONumber        *string    `json:"po_number,omitempty" db:"po_number"`
	ContractDate    *time.Time `json:"contract_date,omitempty" db:"contract_date"`
	SupplierName    *string    `json:"supplier_name,omitempty" db:"supplier_name"`
	ProductName     *string    `json:"product_name,omitempty" db:"product_name"`
	ProductGrade    *string    `json:"product_grade,omitempty" db:"product_grade"`
	QuantityOrdered *float64   `json:"quantity_ordered,omitempty" db:"quantity_ordered"`
	UnitPrice       *float64   `json:"unit_price,omitempty" db:"unit_price"`
	ContractValue   *float64   `json:"contract_value,omitempty" db:"contract_value"`
	Currency        *string    `json:"currency,omitempty" db:"currency"`
	DeliveryTerms   *string    `json:"delivery_terms,omitempty" db:"delivery_terms"`
	Destination     *string    `json:"destination,omitempty" db:"destination"`
	SeaLand         *string    `json:"sea_land,omitempty" db:"sea_land"`
	PaymentTerms    *string    `json:"payment_terms,omitempty" db:"payment_terms"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// UpsertContractResult reports the contract row an upsert landed on and
// whether the statement inserted rather than merged. StatusOverridden is set
// when the source row carried a status other than ACTIVE that the upsert
// discarded; callers surface this rather than silently swallowing it.
type UpsertContractResult struct {
	Contract         Contract `json:"contract"`
	IsNew            bool     `json:"is_new"`
	StatusOverridden bool     `json:"status_overridden"`
}

// ContractListResponse is a paginated page of contracts
type ContractListResponse struct {
	Items      []Contract `json:"items"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
