package shipment

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

var shipmentColumns = []string{
	"id", "contract_id", "shipment_id", "sto_number", "contract_number", "po_number",
	"vessel_name", "shipping_line", "sto_quantity",
	"quantity_loaded", "quantity_discharged",
	"readiness_date", "sail_date", "bl_number", "bl_date",
	"created_at", "updated_at",
}

var portColumns = []string{
	"id", "shipment_id", "sequence", "port_name", "quantity", "loading_rate",
	"eta_arrival", "ata_arrival", "eta_berthing", "ata_berthing",
	"eta_commenced", "ata_commenced", "eta_completed", "ata_completed",
	"ffa", "moisture", "dobi", "color", "dirt_sand", "stone",
	"created_at", "updated_at",
}

var surveyColumns = []string{
	"id", "shipment_id", "location",
	"ffa", "moisture", "dobi", "color", "dirt_sand", "stone",
	"created_at", "updated_at",
}

// Repository handles shipment, port leg, and quality survey persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new shipment repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// UpsertShipmentRequest carries one shipment's merge payload
type UpsertShipmentRequest struct {
	ShipmentID     string
	ContractID     *string
	ContractNumber *string
	PONumber       *string
	VesselName     *string
	Fields         models.ShipmentFields
}

// Upsert creates or merges a shipment keyed by shipment_id with the same
// null-safe discipline as contracts. contract_id backfills later when a
// headless shipment's contract becomes known.
func (r *Repository) Upsert(ctx context.Context, tx database.Tx, req UpsertShipmentRequest) (*models.UpsertShipmentResult, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.Upsert")
	defer span.End()

	mergeCols := []string{
		"contract_id", "sto_number", "contract_number", "po_number",
		"vessel_name", "shipping_line", "sto_quantity",
		"quantity_loaded", "quantity_discharged",
		"readiness_date", "sail_date", "bl_number", "bl_date",
	}

	query := `
		INSERT INTO shipments (
			id, contract_id, shipment_id, sto_number, contract_number, po_number,
			vessel_name, shipping_line, sto_quantity,
			quantity_loaded, quantity_discharged,
			readiness_date, sail_date, bl_number, bl_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT (shipment_id) DO UPDATE SET
			` + strings.Join(database.MergeSet("shipments", mergeCols...), ",\n\t\t\t") + `,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(shipmentColumns, ", ") + `, (xmax = 0) AS inserted
	`

	f := req.Fields
	var result struct {
		models.Shipment
		Inserted bool `db:"inserted"`
	}
	err := tx.GetContext(ctx, &result, query,
		uuid.New().String(), req.ContractID, req.ShipmentID, f.STONumber, req.ContractNumber, req.PONumber,
		req.VesselName, f.ShippingLine, f.STOQuantity,
		f.QuantityLoaded, f.QuantityDischarged,
		f.ReadinessDate, f.SailDate, f.BLNumber, f.BLDate,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": req.ShipmentID}).Error("Failed to upsert shipment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert shipment")
	}

	if result.Inserted {
		r.logger.WithContext(ctx).WithFields(map[string]any{"shipment_id": req.ShipmentID}).Info("Created shipment")
	}
	return &models.UpsertShipmentResult{Shipment: result.Shipment, IsNew: result.Inserted}, nil
}

// UpsertPortLeg creates or merges one port leg keyed by
// (shipment_id, sequence). The discharge leg uses the sentinel sequence.
func (r *Repository) UpsertPortLeg(ctx context.Context, tx database.Tx, leg models.VesselLoadingPort) (*models.VesselLoadingPort, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.UpsertPortLeg")
	defer span.End()

	mergeCols := []string{
		"port_name", "quantity", "loading_rate",
		"eta_arrival", "ata_arrival", "eta_berthing", "ata_berthing",
		"eta_commenced", "ata_commenced", "eta_completed", "ata_completed",
		"ffa", "moisture", "dobi", "color", "dirt_sand", "stone",
	}

	query := `
		INSERT INTO vessel_loading_ports (
			id, shipment_id, sequence, port_name, quantity, loading_rate,
			eta_arrival, ata_arrival, eta_berthing, ata_berthing,
			eta_commenced, ata_commenced, eta_completed, ata_completed,
			ffa, moisture, dobi, color, dirt_sand, stone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $21)
		ON CONFLICT (shipment_id, sequence) DO UPDATE SET
			` + strings.Join(database.MergeSet("vessel_loading_ports", mergeCols...), ",\n\t\t\t") + `,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(portColumns, ", ")

	var stored models.VesselLoadingPort
	err := tx.GetContext(ctx, &stored, query,
		uuid.New().String(), leg.ShipmentID, leg.Sequence, leg.PortName, leg.Quantity, leg.LoadingRate,
		leg.ETAArrival, leg.ATAArrival, leg.ETABerthing, leg.ATABerthing,
		leg.ETACommenced, leg.ATACommenced, leg.ETACompleted, leg.ATACompleted,
		leg.FFA, leg.Moisture, leg.DOBI, leg.Color, leg.DirtSand, leg.Stone,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": leg.ShipmentID, "sequence": leg.Sequence}).Error("Failed to upsert port leg")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert port leg")
	}
	return &stored, nil
}

// UpsertQualitySurvey creates or merges one survey keyed by
// (shipment_id, location).
func (r *Repository) UpsertQualitySurvey(ctx context.Context, tx database.Tx, survey models.QualitySurvey) (*models.QualitySurvey, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.UpsertQualitySurvey")
	defer span.End()

	mergeCols := []string{"ffa", "moisture", "dobi", "color", "dirt_sand", "stone"}

	query := `
		INSERT INTO quality_surveys (
			id, shipment_id, location, ffa, moisture, dobi, color, dirt_sand, stone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (shipment_id, location) DO UPDATE SET
			` + strings.Join(database.MergeSet("quality_surveys", mergeCols...), ",\n\t\t\t") + `,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + strings.Join(surveyColumns, ", ")

	var stored models.QualitySurvey
	err := tx.GetContext(ctx, &stored, query,
		uuid.New().String(), survey.ShipmentID, survey.Location,
		survey.FFA, survey.Moisture, survey.DOBI, survey.Color, survey.DirtSand, survey.Stone,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": survey.ShipmentID, "location": survey.Location}).Error("Failed to upsert quality survey")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to upsert quality survey")
	}
	return &stored, nil
}

// BackfillContract links headless shipments of a contract number to the
// contract row once it exists.
func (r *Repository) BackfillContract(ctx context.Context, tx database.Tx, contractID, contractNumber string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.BackfillContract")
	defer span.End()

	query := `
		UPDATE shipments
		SET contract_id = $1, updated_at = $3
		WHERE contract_number = $2 AND contract_id IS NULL
	`
	result, err := tx.ExecContext(ctx, query, contractID, contractNumber, time.Now().UTC())
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_id": contractID, "contract_number": contractNumber}).Error("Failed to backfill shipment contract links")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to backfill shipments")
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// GetByShipmentID retrieves a shipment by its business key
func (r *Repository) GetByShipmentID(ctx context.Context, shipmentID string) (*models.Shipment, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.GetByShipmentID")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(shipmentColumns...)
	sb.From("shipments")
	sb.Where(sb.Equal("shipment_id", shipmentID))

	query, args := sb.Build()
	var shipment models.Shipment
	if err := r.db.GetContext(ctx, &shipment, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "shipment %s not found", shipmentID)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": shipmentID}).Error("Failed to get shipment")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get shipment")
	}
	return &shipment, nil
}

// ListByContract retrieves shipments under a contract, newest first
func (r *Repository) ListByContract(ctx context.Context, contractID string) ([]models.Shipment, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.ListByContract")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(shipmentColumns...)
	sb.From("shipments")
	sb.Where(sb.Equal("contract_id", contractID))
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	var shipments []models.Shipment
	if err := r.db.SelectContext(ctx, &shipments, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"contract_id": contractID}).Error("Failed to list shipments by contract")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list shipments")
	}
	return shipments, nil
}

// ListPortLegs retrieves a shipment's port legs in sequence order, loading
// legs first and the discharge sentinel last.
func (r *Repository) ListPortLegs(ctx context.Context, shipmentID string) ([]models.VesselLoadingPort, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.ListPortLegs")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(portColumns...)
	sb.From("vessel_loading_ports")
	sb.Where(sb.Equal("shipment_id", shipmentID))
	sb.OrderBy("sequence ASC")

	query, args := sb.Build()
	var legs []models.VesselLoadingPort
	if err := r.db.SelectContext(ctx, &legs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": shipmentID}).Error("Failed to list port legs")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list port legs")
	}
	return legs, nil
}

// ListQualitySurveys retrieves a shipment's quality surveys by location
func (r *Repository) ListQualitySurveys(ctx context.Context, shipmentID string) ([]models.QualitySurvey, error) {
	ctx, span := tracing.StartSpan(ctx, "shipment.Repository.ListQualitySurveys")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(surveyColumns...)
	sb.From("quality_surveys")
	sb.Where(sb.Equal("shipment_id", shipmentID))
	sb.OrderBy("location ASC")

	query, args := sb.Build()
	var surveys []models.QualitySurvey
	if err := r.db.SelectContext(ctx, &surveys, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"shipment_id": shipmentID}).Error("Failed to list quality surveys")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list quality surveys")
	}
	return surveys, nil
}
