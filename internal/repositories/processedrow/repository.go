package processedrow

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var columns = []string{
	"id", "import_id", "import_row_id",
	"contract_number", "po_number", "sto_number",
	"supplier_name", "product_name", "vessel_name",
	"record", "created_at", "updated_at",
}

// Repository handles processed row persistence. Rows are deduplicated by the
// (contract_number, po_number, sto_number) identity triple: a later row with
// the same triple updates the earlier one in place, which is what makes
// re-imports and multi-pass files idempotent.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new processed row repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// UpsertResult contains the result of an upsert operation
type UpsertResult struct {
	Row   *models.ProcessedRow
	IsNew bool
}

// Upsert stores the structured record for one row, replacing any earlier row
// sharing the same identity triple. Denormalized lookup keys merge null-safe
// so a sparse later row never erases an earlier key. Rows with no key at all
// insert plainly; there is no identity to deduplicate on and collapsing them
// onto a shared blank key would overwrite unrelated archives.
func (r *Repository) Upsert(ctx context.Context, tx database.Tx, importID, importRowID string, record *models.ImportRecord) (*UpsertResult, error) {
	ctx, span := tracing.StartSpan(ctx, "processedrow.Repository.Upsert")
	defer span.End()

	contractNumber, poNumber, stoNumber := record.TriKey()
	now := time.Now().UTC()

	if contractNumber == "" && poNumber == "" && stoNumber == "" {
		return r.insertKeyless(ctx, tx, importID, importRowID, record, now)
	}

	query := `
		INSERT INTO processed_rows (
			id, import_id, import_row_id,
			contract_number, po_number, sto_number,
			supplier_name, product_name, vessel_name,
			record, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $11)
		ON CONFLICT (COALESCE(contract_number, ''), COALESCE(po_number, ''), COALESCE(sto_number, ''))
		WHERE COALESCE(contract_number, '') <> ''
		   OR COALESCE(po_number, '') <> ''
		   OR COALESCE(sto_number, '') <> ''
		DO UPDATE SET
			import_id = EXCLUDED.import_id,
			import_row_id = EXCLUDED.import_row_id,
			supplier_name = COALESCE(EXCLUDED.supplier_name, processed_rows.supplier_name),
			product_name = COALESCE(EXCLUDED.product_name, processed_rows.product_name),
			vessel_name = COALESCE(EXCLUDED.vessel_name, processed_rows.vessel_name),
			record = EXCLUDED.record,
			updated_at = EXCLUDED.updated_at
		RETURNING id, import_id, import_row_id, contract_number, po_number, sto_number,
			supplier_name, product_name, vessel_name, record, created_at, updated_at,
			(xmax = 0) AS inserted
	`

	var result struct {
		models.ProcessedRow
		Inserted bool `db:"inserted"`
	}
	err := tx.GetContext(ctx, &result, query,
		uuid.New().String(), importID, importRowID,
		contractNumber, poNumber, stoNumber,
		record.Contract.SupplierName, record.Contract.ProductName, record.Vessel.VesselName,
		database.JSONB[models.ImportRecord]{Data: *record}, now,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"import_id":       importID,
			"contract_number": contractNumber,
			"po_number":       poNumber,
			"sto_number":      stoNumber,
		}).Error("Failed to upsert processed row")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert processed row")
	}

	return &UpsertResult{Row: &result.ProcessedRow, IsNew: result.Inserted}, nil
}

func (r *Repository) insertKeyless(ctx context.Context, tx database.Tx, importID, importRowID string, record *models.ImportRecord, now time.Time) (*UpsertResult, error) {
	query := `
		INSERT INTO processed_rows (
			id, import_id, import_row_id,
			contract_number, po_number, sto_number,
			supplier_name, product_name, vessel_name,
			record, created_at, updated_at
		) VALUES ($1, $2, $3, NULL, NULL, NULL, $4, $5, $6, $7, $8, $8)
		RETURNING id, import_id, import_row_id, contract_number, po_number, sto_number,
			supplier_name, product_name, vessel_name, record, created_at, updated_at
	`

	var row models.ProcessedRow
	err := tx.GetContext(ctx, &row, query,
		uuid.New().String(), importID, importRowID,
		record.Contract.SupplierName, record.Contract.ProductName, record.Vessel.VesselName,
		database.JSONB[models.ImportRecord]{Data: *record}, now,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"import_id":     importID,
			"import_row_id": importRowID,
		}).Error("Failed to insert keyless processed row")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to insert processed row")
	}

	return &UpsertResult{Row: &row, IsNew: true}, nil
}

// FindContractBySTO returns the contract number of the most recently
// processed row whose STO number matches and whose contract number is known.
// Runs through the caller's transaction so rows processed earlier in the same
// import are visible.
func (r *Repository) FindContractBySTO(ctx context.Context, tx database.Tx, stoNumber string) (*string, error) {
	ctx, span := tracing.StartSpan(ctx, "processedrow.Repository.FindContractBySTO")
	defer span.End()

	query := `
		SELECT contract_number
		FROM processed_rows
		WHERE sto_number = $1
		  AND contract_number IS NOT NULL
		ORDER BY created_at DESC
		LIMIT 1
	`
	var contractNumber string
	if err := tx.GetContext(ctx, &contractNumber, query, stoNumber); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil // no linkage known; row proceeds headless
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"sto_number": stoNumber}).Error("Failed to search processed rows by STO")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search processed rows")
	}
	return &contractNumber, nil
}

// Get retrieves a processed row by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.ProcessedRow, error) {
	ctx, span := tracing.StartSpan(ctx, "processedrow.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("processed_rows")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var row models.ProcessedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "processed row %s not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"processed_row_id": id}).Error("Failed to get processed row")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get processed row")
	}
	return &row, nil
}

// ListByImport retrieves every processed row attributed to an import
func (r *Repository) ListByImport(ctx context.Context, importID string) ([]models.ProcessedRow, error) {
	ctx, span := tracing.StartSpan(ctx, "processedrow.Repository.ListByImport")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("processed_rows")
	sb.Where(sb.Equal("import_id", importID))
	sb.OrderBy("created_at ASC")

	query, args := sb.Build()
	var rows []models.ProcessedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": importID}).Error("Failed to list processed rows")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list processed rows")
	}
	return rows, nil
}

// ListCursor marks the last row of the previous page. Paging compares the
// (created_at, id) pair so rows sharing a timestamp are never skipped across
// a page boundary.
type ListCursor struct {
	CreatedAt time.Time
	ID        string
}

// ListAll pages through every processed row, oldest first. The reprocess path
// walks this to replay distribution against historical data.
func (r *Repository) ListAll(ctx context.Context, after *ListCursor, limit int) ([]models.ProcessedRow, error) {
	ctx, span := tracing.StartSpan(ctx, "processedrow.Repository.ListAll")
	defer span.End()

	if limit < 1 || limit > 1000 {
		limit = 200
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("processed_rows")
	if after != nil {
		sb.Where(fmt.Sprintf("(created_at, id) > (%s, %s)", sb.Var(after.CreatedAt), sb.Var(after.ID)))
	}
	sb.OrderBy("created_at ASC", "id ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	var rows []models.ProcessedRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to page processed rows")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to page processed rows")
	}
	return rows, nil
}
