package payment

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
	"id", "contract_id", "contract_number", "po_number",
	"amount", "currency", "due_date", "dp_date", "payoff_date", "deviation",
	"status", "created_at", "updated_at",
}

// Repository handles payment persistence. Imports only touch schedule dates
// and deviation; amount and reconciliation status belong to the manual
// payment workflow.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new payment repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// MergeRequest carries the import-sourced payment fields for one contract
type MergeRequest struct {
	ContractID     *string
	ContractNumber *string
	PONumber       *string
	Currency       *string
	Fields         models.PaymentFields
}

// MergeLatest merges the schedule fields into the contract's most recently
// created payment, or inserts a PENDING zero-amount placeholder when the
// contract has none yet. At most one active payment lifecycle per contract is
// assumed; multi-invoice contracts are not modeled.
func (r *Repository) MergeLatest(ctx context.Context, tx database.Tx, req MergeRequest) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "payment.Repository.MergeLatest")
	defer span.End()

	existing, err := r.latestForContract(ctx, tx, req.ContractNumber, req.PONumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	f := req.Fields

	if existing == nil {
		query := `
			INSERT INTO payments (
				id, contract_id, contract_number, po_number,
				amount, currency, due_date, dp_date, payoff_date, deviation,
				status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, 0, $5, $6, $7, $8, $9, $10, $11, $11)
			RETURNING ` + strings.Join(columns, ", ")

		var payment models.Payment
		err := tx.GetContext(ctx, &payment, query,
			uuid.New().String(), req.ContractID, req.ContractNumber, req.PONumber,
			req.Currency, f.DueDate, f.DPDate, f.PayoffDate, f.Deviation,
			models.PaymentStatusPending, now,
		)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": req.ContractNumber}).Error("Failed to insert payment")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to insert payment")
		}
		r.logger.WithContext(ctx).WithFields(map[string]any{"payment_id": payment.ID, "contract_number": req.ContractNumber}).Info("Created pending payment")
		return &payment, nil
	}

	query := `
		UPDATE payments SET
			contract_id = COALESCE($2, contract_id),
			currency = COALESCE($3, currency),
			due_date = COALESCE($4, due_date),
			dp_date = COALESCE($5, dp_date),
			payoff_date = COALESCE($6, payoff_date),
			deviation = COALESCE($7, deviation),
			updated_at = $8
		WHERE id = $1
		RETURNING ` + strings.Join(columns, ", ")

	var payment models.Payment
	err = tx.GetContext(ctx, &payment, query,
		existing.ID, req.ContractID, req.Currency,
		f.DueDate, f.DPDate, f.PayoffDate, f.Deviation, now,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"payment_id": existing.ID}).Error("Failed to merge payment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to merge payment")
	}
	return &payment, nil
}

// latestForContract returns the contract's most recently created payment
func (r *Repository) latestForContract(ctx context.Context, tx database.Tx, contractNumber, poNumber *string) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "payment.Repository.latestForContract")
	defer span.End()

	query := `
		SELECT ` + strings.Join(columns, ", ") + `
		FROM payments
		WHERE (contract_number = $1 AND $1 IS NOT NULL)
		   OR (po_number = $2 AND $2 IS NOT NULL)
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`
	var payment models.Payment
	if err := tx.GetContext(ctx, &payment, query, contractNumber, poNumber); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": contractNumber, "po_number": poNumber}).Error("Failed to find latest payment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to find payment")
	}
	return &payment, nil
}

// ListByContractNumber retrieves a contract's payments, newest first
func (r *Repository) ListByContractNumber(ctx context.Context, contractNumber string) ([]models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "payment.Repository.ListByContractNumber")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("payments")
	sb.Where(sb.Equal("contract_number", contractNumber))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_number": contractNumber}).Error("Failed to list payments")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list payments")
	}
	return payments, nil
}
