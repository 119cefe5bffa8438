package trucking

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
	"id", "contract_id", "contract_number", "po_number", "operation_id", "leg",
	"trucking_company", "vehicle_number", "loading_location", "discharge_location",
	"quantity_sent", "quantity_delivered", "departure_date", "arrival_date",
	"created_at", "updated_at",
}

// Repository handles trucking operation persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new trucking repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or merges a trucking operation keyed by operation_id. An
// operation without an explicit id gets a generated one, which makes it
// insert-only: re-imports of id-less legs merge through the record layer, not
// here.
func (r *Repository) Upsert(ctx context.Context, tx database.Tx, op models.TruckingOperation) (*models.TruckingOperation, error) {
	ctx, span := tracing.StartSpan(ctx, "trucking.Repository.Upsert")
	defer span.End()

	if op.OperationID == nil || strings.TrimSpace(*op.OperationID) == "" {
		generated := "TRK-" + uuid.New().String()
		op.OperationID = &generated
	}

	mergeCols := []string{
		"contract_id", "contract_number", "po_number",
		"trucking_company", "vehicle_number", "loading_location", "discharge_location",
		"quantity_sent", "quantity_delivered", "departure_date", "arrival_date",
	}

	query := `
		INSERT INTO trucking_operations (
			id, contract_id, contract_number, po_number, operation_id, leg,
			trucking_company, vehicle_number, loading_location, discharge_location,
			quantity_sent, quantity_delivered, departure_date, arrival_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (operation_id) DO UPDATE SET
			` + strings.Join(database.MergeSet("trucking_operations", mergeCols...), ",\n\t\t\t") + `,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(columns, ", ")

	var stored models.TruckingOperation
	err := tx.GetContext(ctx, &stored, query,
		uuid.New().String(), op.ContractID, op.ContractNumber, op.PONumber, op.OperationID, op.Leg,
		op.TruckingCompany, op.VehicleNumber, op.LoadingLocation, op.DischargeLocation,
		op.QuantitySent, op.QuantityDelivered, op.DepartureDate, op.ArrivalDate,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"operation_id": op.OperationID, "contract_number": op.ContractNumber}).Error("Failed to upsert trucking operation")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert trucking operation")
	}
	return &stored, nil
}

// Get retrieves a trucking operation by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.TruckingOperation, error) {
	ctx, span := tracing.StartSpan(ctx, "trucking.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("trucking_operations")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var op models.TruckingOperation
	if err := r.db.GetContext(ctx, &op, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "trucking operation %s not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"trucking_id": id}).Error("Failed to get trucking operation")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get trucking operation")
	}
	return &op, nil
}

// ListByContractNumber retrieves a contract's trucking operations in leg order
func (r *Repository) ListByContractNumber(ctx context.Context, contractNumber string) ([]models.TruckingOperation, error) {
	ctx, span := tracing.StartSpan(ctx, "trucking.Repository.ListByContractNumber")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("trucking_operations")
	sb.Where(sb.Equal("contract_number", contractNumber))
	sb.OrderBy("leg ASC", "created_at ASC")

	query, args := sb.Build()
	var ops []models.TruckingOperation
	if err := r.db.SelectContext(ctx, &ops, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": contractNumber}).Error("Failed to list trucking operations")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list trucking operations")
	}
	return ops, nil
}
