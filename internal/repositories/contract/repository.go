package contract

import (
	"context"
	"net/http"
	"strings"
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
	"id", "contract_number", "po_number", "contract_date",
	"supplier_name", "product_name", "product_grade",
	"quantity_ordered", "unit_price", "contract_value", "currency",
	"delivery_terms", "destination", "sea_land", "payment_terms",
	"status", "created_at", "updated_at",
}

// Repository handles contract persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new contract repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or merges a contract addressed by contract number or PO
// number (either one identifies it; both are unique). The merge is null-safe:
// only present incoming values replace stored ones, absent values never erase
// data. contract_value is recomputed whenever both operands resolve after the
// merge. Status is forced to ACTIVE on both paths; a differing source status
// is reported back through StatusOverridden instead of being applied.
func (r *Repository) Upsert(ctx context.Context, tx database.Tx, fields models.ContractFields) (*models.UpsertContractResult, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.Upsert")
	defer span.End()

	contractNumber := trimmed(fields.ContractNumber)
	poNumber := trimmed(fields.PONumber)
	if contractNumber == nil && poNumber == nil {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "contract requires a contract number or po number")
	}

	statusOverridden := fields.Status != nil &&
		!strings.EqualFold(strings.TrimSpace(*fields.Status), models.ContractStatusActive)

	existing, err := r.findByEitherKey(ctx, tx, contractNumber, poNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing == nil {
		contract, err := r.insert(ctx, tx, contractNumber, poNumber, fields, now)
		if err != nil {
			return nil, err
		}
		r.logger.WithContext(ctx).WithFields(map[string]any{"contract_id": contract.ID, "contract_number": contractNumber}).Info("Created contract")
		return &models.UpsertContractResult{Contract: *contract, IsNew: true, StatusOverridden: statusOverridden}, nil
	}

	contract, err := r.merge(ctx, tx, existing.ID, contractNumber, poNumber, fields, now)
	if err != nil {
		return nil, err
	}
	return &models.UpsertContractResult{Contract: *contract, IsNew: false, StatusOverridden: statusOverridden}, nil
}

// findByEitherKey locks the matching contract row for the rest of the
// transaction so concurrent imports merging the same contract serialize.
func (r *Repository) findByEitherKey(ctx context.Context, tx database.Tx, contractNumber, poNumber *string) (*models.Contract, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.findByEitherKey")
	defer span.End()

	query := `
		SELECT ` + strings.Join(columns, ", ") + `
		FROM contracts
		WHERE (contract_number = $1 AND $1 IS NOT NULL)
		   OR (po_number = $2 AND $2 IS NOT NULL)
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE
	`
	var contract models.Contract
	if err := tx.GetContext(ctx, &contract, query, contractNumber, poNumber); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": contractNumber, "po_number": poNumber}).Error("Failed to find contract by key")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to find contract")
	}
	return &contract, nil
}

func (r *Repository) insert(ctx context.Context, tx database.Tx, contractNumber, poNumber *string, fields models.ContractFields, now time.Time) (*models.Contract, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.insert")
	defer span.End()

	query := `
		INSERT INTO contracts (
			id, contract_number, po_number, contract_date,
			supplier_name, product_name, product_grade,
			quantity_ordered, unit_price,
			contract_value,
			currency, delivery_terms, destination, sea_land, payment_terms,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			CASE WHEN $8::double precision IS NOT NULL AND $9::double precision IS NOT NULL THEN $8::double precision * $9::double precision END,
			$10, $11, $12, $13, $14, $15, $16, $16
		)
		RETURNING ` + strings.Join(columns, ", ")

	var contract models.Contract
	err := tx.GetContext(ctx, &contract, query,
		uuid.New().String(), contractNumber, poNumber, fields.ContractDate,
		fields.SupplierName, fields.ProductName, fields.ProductGrade,
		fields.QuantityOrdered, fields.UnitPrice,
		fields.Currency, fields.DeliveryTerms, fields.Destination, fields.SeaLand, fields.PaymentTerms,
		models.ContractStatusActive, now,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": contractNumber, "po_number": poNumber}).Error("Failed to insert contract")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to insert contract")
	}
	return &contract, nil
}

// merge applies the null-safe update path: COALESCE(incoming, existing) for
// every column, recomputing contract_value from the merged operands.
func (r *Repository) merge(ctx context.Context, tx database.Tx, id string, contractNumber, poNumber *string, fields models.ContractFields, now time.Time) (*models.Contract, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.merge")
	defer span.End()

	query := `
		UPDATE contracts SET
			contract_number = COALESCE($2, contract_number),
			po_number = COALESCE($3, po_number),
			contract_date = COALESCE($4, contract_date),
			supplier_name = COALESCE($5, supplier_name),
			product_name = COALESCE($6, product_name),
			product_grade = COALESCE($7, product_grade),
			quantity_ordered = COALESCE($8, quantity_ordered),
			unit_price = COALESCE($9, unit_price),
			contract_value = CASE
				WHEN COALESCE($8, quantity_ordered) IS NOT NULL AND COALESCE($9, unit_price) IS NOT NULL
				THEN COALESCE($8, quantity_ordered) * COALESCE($9, unit_price)
				ELSE contract_value
			END,
			currency = COALESCE($10, currency),
			delivery_terms = COALESCE($11, delivery_terms),
			destination = COALESCE($12, destination),
			sea_land = COALESCE($13, sea_land),
			payment_terms = COALESCE($14, payment_terms),
			status = $15,
			updated_at = $16
		WHERE id = $1
		RETURNING ` + strings.Join(columns, ", ")

	var contract models.Contract
	err := tx.GetContext(ctx, &contract, query,
		id, contractNumber, poNumber, fields.ContractDate,
		fields.SupplierName, fields.ProductName, fields.ProductGrade,
		fields.QuantityOrdered, fields.UnitPrice,
		fields.Currency, fields.DeliveryTerms, fields.Destination, fields.SeaLand, fields.PaymentTerms,
		models.ContractStatusActive, now,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_id": id}).Error("Failed to merge contract")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to merge contract")
	}
	return &contract, nil
}

// GetByNumber retrieves a contract by contract number or PO number
func (r *Repository) GetByNumber(ctx context.Context, number string) (*models.Contract, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.GetByNumber")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("contracts")
	sb.Where(sb.Or(sb.Equal("contract_number", number), sb.Equal("po_number", number)))
	sb.Limit(1)

	query, args := sb.Build()
	var contract models.Contract
	if err := r.db.GetContext(ctx, &contract, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "contract %s not found", number)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"number": number}).Error("Failed to get contract by number")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get contract")
	}
	return &contract, nil
}

// Get retrieves a contract by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Contract, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("contracts")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var contract models.Contract
	if err := r.db.GetContext(ctx, &contract, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "contract %s not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_id": id}).Error("Failed to get contract")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get contract")
	}
	return &contract, nil
}

// List retrieves contracts with optional supplier filtering and pagination
func (r *Repository) List(ctx context.Context, supplierName *string, page, pageSize int) (*models.ContractListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "contract.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("contracts")
	if supplierName != nil {
		countSb.Where(countSb.Equal("supplier_name", *supplierName))
	}

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count contracts")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count contracts")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("contracts")
	if supplierName != nil {
		sb.Where(sb.Equal("supplier_name", *supplierName))
	}
	sb.OrderBy("created_at DESC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var items []models.Contract
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"page": page, "page_size": pageSize}).Error("Failed to list contracts")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list contracts")
	}

	return &models.ContractListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
