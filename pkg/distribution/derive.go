package distribution

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ramsey-B/fern/pkg/models"
)

// DeriveShipmentID produces the shipment's business key: the explicit value
// when the row carries one, otherwise STO-contractNumber, otherwise the bare
// STO, otherwise a key synthesized from the contract identity. The key must
// be the same on every run for the same row or re-imports can never land on
// the row they created; a random id is the last resort for records with no
// identifying number at all.
func DeriveShipmentID(record *models.ImportRecord) string {
	if record.Shipment.ShipmentID != nil {
		if id := strings.TrimSpace(*record.Shipment.ShipmentID); id != "" {
			return id
		}
	}

	contractNumber, poNumber, stoNumber := record.TriKey()
	if stoNumber != "" {
		if contractNumber != "" {
			return fmt.Sprintf("%s-%s", stoNumber, contractNumber)
		}
		return stoNumber
	}
	if contractNumber != "" {
		return "SHP-" + contractNumber
	}
	if poNumber != "" {
		return "SHP-" + poNumber
	}
	return "SHP-" + uuid.New().String()
}

// DerivePortLegs builds the persistable port legs of a record: up to three
// loading legs plus the discharge leg, each carrying matched quality values
// and a computed loading rate. Legs with no concrete fact are dropped, never
// written as placeholders.
func DerivePortLegs(record *models.ImportRecord) []models.VesselLoadingPort {
	legs := make([]models.VesselLoadingPort, 0, 4)

	for i := range record.Shipment.LoadingPorts {
		sequence := i + 1
		leg := buildPortLeg(&record.Shipment.LoadingPorts[i], sequence)
		attachQuality(&leg, record.Quality, fmt.Sprintf("Loading Port %d", sequence))
		if leg.HasFact() {
			legs = append(legs, leg)
		}
	}

	discharge := buildPortLeg(&record.Shipment.DischargePort, models.DischargePortSequence)
	attachQuality(&discharge, record.Quality, "Discharge Port")
	if discharge.HasFact() {
		legs = append(legs, discharge)
	}

	return legs
}

func buildPortLeg(fields *models.PortLegFields, sequence int) models.VesselLoadingPort {
	leg := models.VesselLoadingPort{
		Sequence:     sequence,
		PortName:     fields.PortName,
		Quantity:     fields.Quantity,
		LoadingRate:  fields.LoadingRate,
		ETAArrival:   fields.ETAArrival,
		ATAArrival:   fields.ATAArrival,
		ETABerthing:  fields.ETABerthing,
		ATABerthing:  fields.ATABerthing,
		ETACommenced: fields.ETACommenced,
		ATACommenced: fields.ATACommenced,
		ETACompleted: fields.ETACompleted,
		ATACompleted: fields.ATACompleted,
	}
	if leg.LoadingRate == nil {
		leg.LoadingRate = computeLoadingRate(fields)
	}
	return leg
}

// computeLoadingRate derives quantity per hour from the commenced/completed
// milestones when the source didn't supply a rate
func computeLoadingRate(fields *models.PortLegFields) *float64 {
	if fields.Quantity == nil || fields.ATACommenced == nil || fields.ATACompleted == nil {
		return nil
	}
	hours := fields.ATACompleted.Sub(*fields.ATACommenced).Hours()
	if hours <= 0 {
		return nil
	}
	rate := *fields.Quantity / hours
	return &rate
}

func attachQuality(leg *models.VesselLoadingPort, surveys []models.QualityFields, location string) {
	for i := range surveys {
		if surveys[i].Location != location {
			continue
		}
		leg.FFA = surveys[i].FFA
		leg.Moisture = surveys[i].Moisture
		leg.DOBI = surveys[i].DOBI
		leg.Color = surveys[i].Color
		leg.DirtSand = surveys[i].DirtSand
		leg.Stone = surveys[i].Stone
		return
	}
}

// SynthesizeTrucking maps a LAND-routed record's shipment-shaped fields onto
// a single trucking operation: port names become locations, loaded and
// discharged quantities become sent and delivered, and the sail date (or
// readiness date) becomes the departure. Returns nil when no field carries a
// value; nothing is written for an empty synthesis.
func SynthesizeTrucking(record *models.ImportRecord) *models.TruckingOperation {
	s := record.Shipment

	op := models.TruckingOperation{
		Leg:               1,
		LoadingLocation:   s.LoadingPorts[0].PortName,
		DischargeLocation: s.DischargePort.PortName,
		QuantitySent:      s.QuantityLoaded,
		QuantityDelivered: s.QuantityDischarged,
		DepartureDate:     s.SailDate,
	}
	if op.QuantitySent == nil {
		op.QuantitySent = s.STOQuantity
	}
	if op.DepartureDate == nil {
		op.DepartureDate = s.ReadinessDate
	}
	if record.Contract.Destination != nil && op.DischargeLocation == nil {
		op.DischargeLocation = record.Contract.Destination
	}
	if s.STONumber != nil {
		operationID := "TRK-" + strings.TrimSpace(*s.STONumber)
		op.OperationID = &operationID
	}

	if op.LoadingLocation == nil && op.DischargeLocation == nil &&
		op.QuantitySent == nil && op.QuantityDelivered == nil && op.DepartureDate == nil {
		return nil
	}
	return &op
}

// explicitTruckingOps converts the record's trucking sub-objects into
// persistable operations, dropping legs with no data.
func explicitTruckingOps(record *models.ImportRecord) []models.TruckingOperation {
	ops := make([]models.TruckingOperation, 0, len(record.Trucking))
	for _, leg := range record.Trucking {
		if leg.OperationID == nil && leg.TruckingCompany == nil && leg.VehicleNumber == nil &&
			leg.LoadingLocation == nil && leg.DischargeLocation == nil &&
			leg.QuantitySent == nil && leg.QuantityDelivered == nil &&
			leg.DepartureDate == nil && leg.ArrivalDate == nil {
			continue
		}
		ops = append(ops, models.TruckingOperation{
			OperationID:       leg.OperationID,
			Leg:               leg.Leg,
			TruckingCompany:   leg.TruckingCompany,
			VehicleNumber:     leg.VehicleNumber,
			LoadingLocation:   leg.LoadingLocation,
			DischargeLocation: leg.DischargeLocation,
			QuantitySent:      leg.QuantitySent,
			QuantityDelivered: leg.QuantityDelivered,
			DepartureDate:     leg.DepartureDate,
			ArrivalDate:       leg.ArrivalDate,
		})
	}
	return ops
}
