package models

import "time"

// Payment statuses. Imports only ever create PENDING placeholders; the
// manual reconciliation workflow owns the rest of the lifecycle.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusOverdue  = "OVERDUE"
	PaymentStatusDisputed = "DISPUTED"
)

// Payment is one scheduled payment under a contract
type Payment struct {
	ID             string     `json:"id" db:"id"`
	ContractID     *string    `json:"contract_id,omitempty" db:"contract_id"`
	ContractNumber *string    `json:"contract_number,omitempty" db:"contract_number"`
	PONumber       *string    `json:"po_number,omitempty" db:"po_number"`
	Amount         *float64   `json:"amount,omitempty" db:"amount"`
	Currency       *string    `json:"currency,omitempty" db:"currency"`
	DueDate        *time.Time `json:"due_date,omitempty" db:"due_date"`
	DPDate         *time.Time `json:"dp_date,omitempty" db:"dp_date"`
	PayoffDate     *time.Time `json:"payoff_date,omitempty" db:"payoff_date"`
	Deviation      *float64   `json:"deviation,omitempty" db:"deviation"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
