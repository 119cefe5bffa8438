package models

import (
	"time"

	"github.com/Ramsey-B/fern/pkg/database"
)

// Import lifecycle statuses
const (
	ImportStatusProcessing          = "processing"
	ImportStatusCompleted           = "completed"
	ImportStatusCompletedWithErrors = "completed_with_errors"
	ImportStatusFailed              = "failed"
)

// Import row states
const (
	ImportRowStatusPending   = "pending"
	ImportRowStatusProcessed = "processed"
	ImportRowStatusFailed    = "failed"
	ImportRowStatusSkipped   = "skipped"
)

// Import is one upload of a source workbook
type Import struct {
	ID               string     `json:"id" db:"id"`
	FileName         string     `json:"file_name" db:"file_name"`
	SheetName        string     `json:"sheet_name" db:"sheet_name"`
	Status           string     `json:"status" db:"status"`
	TotalRecords     int        `json:"total_records" db:"total_records"`
	ProcessedRecords int        `json:"processed_records" db:"processed_records"`
	FailedRecords    int        `json:"failed_records" db:"failed_records"`
	SkippedRecords   int        `json:"skipped_records" db:"skipped_records"`
	UploadedBy       *string    `json:"uploaded_by,omitempty" db:"uploaded_by"`
	StartedAt        time.Time  `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateImportRequest starts one ingestion run
type CreateImportRequest struct {
	FileName     string  `json:"file_name" validate:"required"`
	SheetName    string  `json:"sheet_name" validate:"required"`
	UploadedBy   *string `json:"uploaded_by,omitempty"`
	TotalRecords int     `json:"total_records" validate:"gte=0"`
}

// ImportRow is the immutable raw-row archive plus its processing outcome.
// RawCells snapshots the source row exactly as read so failures can be
// replayed or inspected later.
type ImportRow struct {
	ID           string                   `json:"id" db:"id"`
	ImportID     string                   `json:"import_id" db:"import_id"`
	RowIndex     int                      `json:"row_index" db:"row_index"`
	Status       string                   `json:"status" db:"status"`
	ErrorMessage *string                  `json:"error_message,omitempty" db:"error_message"`
	RawCells     database.JSONB[[]string] `json:"raw_cells" db:"raw_cells"`
	CreatedAt    time.Time                `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at" db:"updated_at"`
}

// ProcessedRow is the deduplicated, category-structured form of a source row.
// Rows sharing the same (contract_number, po_number, sto_number) triple are
// updated in place across imports rather than accumulated.
type ProcessedRow struct {
	ID             string                       `json:"id" db:"id"`
	ImportID       string                       `json:"import_id" db:"import_id"`
	ImportRowID    string                       `json:"import_row_id" db:"import_row_id"`
	ContractNumber *string                      `json:"contract_number,omitempty" db:"contract_number"`
	PONumber       *string                      `json:"po_number,omitempty" db:"po_number"`
	STONumber      *string                      `json:"sto_number,omitempty" db:"sto_number"`
	SupplierName   *string                      `json:"supplier_name,omitempty" db:"supplier_name"`
	ProductName    *string                      `json:"product_name,omitempty" db:"product_name"`
	VesselName     *string                      `json:"vessel_name,omitempty" db:"vessel_name"`
	Record         database.JSONB[ImportRecord] `json:"record" db:"record"`
	CreatedAt      time.Time                    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time                    `json:"updated_at" db:"updated_at"`
}

// ImportListResponse is a paginated page of imports
type ImportListResponse struct {
	Items      []Import `json:"items"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// ImportRowListResponse is a paginated page of archived rows
type ImportRowListResponse struct {
	Items      []ImportRow `json:"items"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

// RowError describes one failed or rejected row in an import result
type RowError struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

// ImportSummary counts the entities touched while distributing an import
type ImportSummary struct {
	ContractsCreated     int `json:"contracts_created"`
	ContractsUpdated     int `json:"contracts_updated"`
	ShipmentsCreated     int `json:"shipments_created"`
	ShipmentsUpdated     int `json:"shipments_updated"`
	PortLegsUpserted     int `json:"port_legs_upserted"`
	QualitySurveys       int `json:"quality_surveys"`
	TruckingOperations   int `json:"trucking_operations"`
	PaymentsTouched      int `json:"payments_touched"`
	StatusesForcedActive int `json:"statuses_forced_active"`
}

// Add folds another summary into s. Used to accumulate per-row summaries
// into the import-level total.
func (s *ImportSummary) Add(o ImportSummary) {
	s.ContractsCreated += o.ContractsCreated
	s.ContractsUpdated += o.ContractsUpdated
	s.ShipmentsCreated += o.ShipmentsCreated
	s.ShipmentsUpdated += o.ShipmentsUpdated
	s.PortLegsUpserted += o.PortLegsUpserted
	s.QualitySurveys += o.QualitySurveys
	s.TruckingOperations += o.TruckingOperations
	s.PaymentsTouched += o.PaymentsTouched
	s.StatusesForcedActive += o.StatusesForcedActive
}

// ImportResult is the client-facing outcome of one import run. Errors is
// capped; TotalRecords remains the authoritative count.
type ImportResult struct {
	ImportID         string        `json:"import_id"`
	Status           string        `json:"status"`
	TotalRecords     int           `json:"total_records"`
	ProcessedRecords int           `json:"processed_records"`
	FailedRecords    int           `json:"failed_records"`
	SkippedRecords   int           `json:"skipped_records"`
	Errors           []RowError    `json:"errors"`
	ErrorsTruncated  bool          `json:"errors_truncated"`
	Summary          ImportSummary `json:"summary"`
}
