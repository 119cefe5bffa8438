// Package distribution fans one structured import record out across the
// contract, shipment, port leg, quality, trucking, and payment tables. Every
// write runs inside the caller's transaction (and savepoint); every step
// no-ops when the record lacks the identifying fields that step needs.
package distribution

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/internal/repositories/contract"
	"github.com/Ramsey-B/fern/internal/repositories/payment"
	"github.com/Ramsey-B/fern/internal/repositories/shipment"
	"github.com/Ramsey-B/fern/internal/repositories/trucking"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Engine distributes structured records across the business tables
type Engine struct {
	contracts *contract.Repository
	shipments *shipment.Repository
	trucking  *trucking.Repository
	payments  *payment.Repository
	logger    ectologger.Logger
}

// NewEngine creates a distribution engine over the business repositories
func NewEngine(
	contracts *contract.Repository,
	shipments *shipment.Repository,
	truckingRepo *trucking.Repository,
	payments *payment.Repository,
	logger ectologger.Logger,
) *Engine {
	return &Engine{
		contracts: contracts,
		shipments: shipments,
		trucking:  truckingRepo,
		payments:  payments,
		logger:    logger,
	}
}

// Options adjusts distribution for one record
type Options struct {
	// ContractResolvedFromSTO marks the contract number as recovered through
	// STO search rather than carried by the row. Resolved rows only touch the
	// contract when they contribute at least one descriptive attribute.
	ContractResolvedFromSTO bool
}

// Distribute runs the full fan-out for one record inside the caller's
// transaction. The returned summary reports which entities were touched.
func (e *Engine) Distribute(ctx context.Context, tx database.Tx, record *models.ImportRecord, opts Options) (*models.ImportSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.Distribute")
	defer span.End()

	summary := &models.ImportSummary{}

	contractResult, err := e.distributeContract(ctx, tx, record, opts, summary)
	if err != nil {
		return nil, err
	}

	var contractID *string
	if contractResult != nil {
		contractID = &contractResult.Contract.ID
	}

	switch record.Route() {
	case models.RouteSea:
		if err := e.distributeShipment(ctx, tx, record, contractID, summary); err != nil {
			return nil, err
		}
	case models.RouteLand:
		if len(record.Trucking) == 0 {
			if err := e.distributeSynthesizedTrucking(ctx, tx, record, contractID, summary); err != nil {
				return nil, err
			}
		}
	}

	// Explicit trucking legs persist regardless of route; the LAND synthesis
	// above only runs when the record carries none, so a row never
	// double-creates operations.
	if len(record.Trucking) > 0 {
		if err := e.distributeExplicitTrucking(ctx, tx, record, contractID, summary); err != nil {
			return nil, err
		}
	}

	if err := e.distributePayment(ctx, tx, record, contractID, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// distributeContract runs the contract step. STO-resolved records without a
// single descriptive attribute skip the contract entirely; they have nothing
// to contribute.
func (e *Engine) distributeContract(ctx context.Context, tx database.Tx, record *models.ImportRecord, opts Options, summary *models.ImportSummary) (*models.UpsertContractResult, error) {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.distributeContract")
	defer span.End()

	if !record.HasContractIdentity() {
		return nil, nil
	}
	if opts.ContractResolvedFromSTO && !record.HasContractAttributes() {
		return nil, nil
	}

	result, err := e.contracts.Upsert(ctx, tx, record.Contract)
	if err != nil {
		return nil, err
	}

	if result.IsNew {
		summary.ContractsCreated++
	} else {
		summary.ContractsUpdated++
	}
	if result.StatusOverridden {
		summary.StatusesForcedActive++
		e.logger.WithContext(ctx).WithFields(map[string]any{
			"contract_id":   result.Contract.ID,
			"source_status": record.Contract.Status,
		}).Warn("Discarded source contract status, forced ACTIVE")
	}

	// Shipments imported before the contract was known link up here.
	if result.Contract.ContractNumber != nil {
		if _, err := e.shipments.BackfillContract(ctx, tx, result.Contract.ID, *result.Contract.ContractNumber); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// distributeShipment runs the shipment step. A record with no shipment
// identity and no shipment fact no-ops: upserting would mint a placeholder
// under a synthesized key that no later row can ever match.
func (e *Engine) distributeShipment(ctx context.Context, tx database.Tx, record *models.ImportRecord, contractID *string, summary *models.ImportSummary) error {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.distributeShipment")
	defer span.End()

	if !record.HasShipmentIdentity() && !record.HasShipmentData() {
		return nil
	}

	contractNumber, poNumber, _ := record.TriKey()

	req := shipment.UpsertShipmentRequest{
		ShipmentID: DeriveShipmentID(record),
		ContractID: contractID,
		VesselName: record.Vessel.VesselName,
		Fields:     record.Shipment,
	}
	if contractNumber != "" {
		req.ContractNumber = &contractNumber
	}
	if poNumber != "" {
		req.PONumber = &poNumber
	}

	result, err := e.shipments.Upsert(ctx, tx, req)
	if err != nil {
		return err
	}
	if result.IsNew {
		summary.ShipmentsCreated++
	} else {
		summary.ShipmentsUpdated++
	}

	for _, leg := range DerivePortLegs(record) {
		leg.ShipmentID = result.Shipment.ID
		if _, err := e.shipments.UpsertPortLeg(ctx, tx, leg); err != nil {
			return err
		}
		summary.PortLegsUpserted++
	}

	for _, survey := range record.Quality {
		if !survey.HasMeasurement() {
			continue
		}
		stored := models.QualitySurvey{
			ShipmentID: result.Shipment.ID,
			Location:   survey.Location,
			FFA:        survey.FFA,
			Moisture:   survey.Moisture,
			DOBI:       survey.DOBI,
			Color:      survey.Color,
			DirtSand:   survey.DirtSand,
			Stone:      survey.Stone,
		}
		if _, err := e.shipments.UpsertQualitySurvey(ctx, tx, stored); err != nil {
			return err
		}
		summary.QualitySurveys++
	}

	return nil
}

func (e *Engine) distributeSynthesizedTrucking(ctx context.Context, tx database.Tx, record *models.ImportRecord, contractID *string, summary *models.ImportSummary) error {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.distributeSynthesizedTrucking")
	defer span.End()

	op := SynthesizeTrucking(record)
	if op == nil {
		return nil
	}

	e.applyContractLinkage(op, record, contractID)
	if _, err := e.trucking.Upsert(ctx, tx, *op); err != nil {
		return err
	}
	summary.TruckingOperations++
	return nil
}

func (e *Engine) distributeExplicitTrucking(ctx context.Context, tx database.Tx, record *models.ImportRecord, contractID *string, summary *models.ImportSummary) error {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.distributeExplicitTrucking")
	defer span.End()

	for _, op := range explicitTruckingOps(record) {
		e.applyContractLinkage(&op, record, contractID)
		if _, err := e.trucking.Upsert(ctx, tx, op); err != nil {
			return err
		}
		summary.TruckingOperations++
	}
	return nil
}

func (e *Engine) applyContractLinkage(op *models.TruckingOperation, record *models.ImportRecord, contractID *string) {
	contractNumber, poNumber, _ := record.TriKey()
	op.ContractID = contractID
	if contractNumber != "" {
		op.ContractNumber = &contractNumber
	}
	if poNumber != "" {
		op.PONumber = &poNumber
	}
}

// distributePayment merges schedule dates into the contract's latest payment.
// Rows without payment data or without a contract identity skip the step.
func (e *Engine) distributePayment(ctx context.Context, tx database.Tx, record *models.ImportRecord, contractID *string, summary *models.ImportSummary) error {
	ctx, span := tracing.StartSpan(ctx, "distribution.Engine.distributePayment")
	defer span.End()

	if record.Payment.IsEmpty() || !record.HasContractIdentity() {
		return nil
	}

	contractNumber, poNumber, _ := record.TriKey()
	req := payment.MergeRequest{
		ContractID: contractID,
		Currency:   record.Contract.Currency,
		Fields:     record.Payment,
	}
	if contractNumber != "" {
		req.ContractNumber = &contractNumber
	}
	if poNumber != "" {
		req.PONumber = &poNumber
	}

	if _, err := e.payments.MergeLatest(ctx, tx, req); err != nil {
		return err
	}
	summary.PaymentsTouched++
	return nil
}
