// Package rowparser turns one raw tabular row plus the resolved column map
// into a structured import record. Quality and trucking cells fan out into
// per-location sub-objects keyed by the location label parsed from the
// header text itself.
package rowparser

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/coercion"
	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Parse builds the structured record for one data row. Returns ok=false when
// the row has no non-empty mapped cell; such rows are skipped, not failed.
// Calculated columns are ignored since their values are recomputed at
// distribution time.
func Parse(rowIndex int, cells []string, columns []fieldmap.ColumnMapping) (*models.ImportRecord, bool) {
	record := &models.ImportRecord{RowIndex: rowIndex}
	hasValue := false

	for _, column := range columns {
		if column.Calculated || column.Index >= len(cells) {
			continue
		}
		raw := strings.TrimSpace(cells[column.Index])
		if raw == "" {
			continue
		}
		hasValue = true

		switch column.Category {
		case fieldmap.CategoryContract:
			assignContract(&record.Contract, column.Key, raw)
		case fieldmap.CategoryShipment:
			assignShipment(&record.Shipment, column, raw)
		case fieldmap.CategoryQuality:
			assignQuality(record, column, raw)
		case fieldmap.CategoryTrucking:
			assignTrucking(record, column, raw)
		case fieldmap.CategoryPayment:
			assignPayment(&record.Payment, column.Key, raw)
		case fieldmap.CategoryVessel:
			assignVessel(&record.Vessel, column.Key, raw)
		}
	}

	if !hasValue {
		return nil, false
	}
	return record, true
}

func assignContract(contract *models.ContractFields, key, raw string) {
	switch key {
	case fieldmap.KeyContractNumber:
		contract.ContractNumber = coercion.ParseString(raw)
	case fieldmap.KeyPONumber:
		contract.PONumber = coercion.ParseString(raw)
	case fieldmap.KeyContractDate:
		contract.ContractDate = coercion.ParseDate(raw)
	case fieldmap.KeySupplierName:
		contract.SupplierName = coercion.ParseString(raw)
	case fieldmap.KeyProductName:
		contract.ProductName = coercion.ParseString(raw)
	case fieldmap.KeyProductGrade:
		contract.ProductGrade = coercion.ParseString(raw)
	case fieldmap.KeyQuantityOrdered:
		contract.QuantityOrdered = coercion.ParseNumber(raw)
	case fieldmap.KeyUnitPrice:
		contract.UnitPrice = coercion.ParseNumber(raw)
	case fieldmap.KeyCurrency:
		contract.Currency = coercion.ParseString(raw)
	case fieldmap.KeyDeliveryTerms:
		contract.DeliveryTerms = coercion.ParseString(raw)
	case fieldmap.KeyDestination:
		contract.Destination = coercion.ParseString(raw)
	case fieldmap.KeySeaLand:
		contract.SeaLand = coercion.ParseString(raw)
	case fieldmap.KeyContractStatus:
		contract.Status = coercion.ParseString(raw)
	case fieldmap.KeyPaymentTerms:
		contract.PaymentTerms = coercion.ParseString(raw)
	}
}

func assignShipment(shipment *models.ShipmentFields, column fieldmap.ColumnMapping, raw string) {
	switch column.Key {
	case fieldmap.KeyShipmentID:
		shipment.ShipmentID = coercion.ParseString(raw)
	case fieldmap.KeySTONumber:
		shipment.STONumber = coercion.ParseString(raw)
	case fieldmap.KeySTOQuantity:
		shipment.STOQuantity = coercion.ParseNumber(raw)
	case fieldmap.KeyShippingLine:
		shipment.ShippingLine = coercion.ParseString(raw)
	case fieldmap.KeyReadinessDate:
		shipment.ReadinessDate = coercion.ParseDate(raw)
	case fieldmap.KeySailDate:
		shipment.SailDate = coercion.ParseDate(raw)
	case fieldmap.KeyBLNumber:
		shipment.BLNumber = coercion.ParseString(raw)
	case fieldmap.KeyBLDate:
		shipment.BLDate = coercion.ParseDate(raw)
	case fieldmap.KeyQuantityLoaded:
		shipment.QuantityLoaded = coercion.ParseNumber(raw)
	case fieldmap.KeyQuantityDischarged:
		shipment.QuantityDischarged = coercion.ParseNumber(raw)
	default:
		assignPortLeg(shipment, column, raw)
	}
}

// placeholderPorts are values exporters emit for "no port here"; they are
// treated as absent, never stored as literal port names.
var placeholderPorts = map[string]bool{
	"0":    true,
	"0.0":  true,
	"0.00": true,
	"-":    true,
	"n/a":  true,
	"na":   true,
	"nil":  true,
	"none": true,
}

func assignPortLeg(shipment *models.ShipmentFields, column fieldmap.ColumnMapping, raw string) {
	sequence, isDischarge := portLeg(column.Header)
	var leg *models.PortLegFields
	if isDischarge {
		leg = &shipment.DischargePort
	} else {
		leg = &shipment.LoadingPorts[sequence-1]
	}

	switch column.Key {
	case fieldmap.KeyPortName:
		if !placeholderPorts[strings.ToLower(strings.TrimSpace(raw))] {
			leg.PortName = coercion.ParseString(raw)
		}
	case fieldmap.KeyPortQuantity:
		leg.Quantity = coercion.ParseNumber(raw)
	case fieldmap.KeyLoadingRate:
		leg.LoadingRate = coercion.ParseNumber(raw)
	case fieldmap.KeyETAArrival:
		leg.ETAArrival = coercion.ParseDate(raw)
	case fieldmap.KeyATAArrival:
		leg.ATAArrival = coercion.ParseDate(raw)
	case fieldmap.KeyETABerthing:
		leg.ETABerthing = coercion.ParseDate(raw)
	case fieldmap.KeyATABerthing:
		leg.ATABerthing = coercion.ParseDate(raw)
	case fieldmap.KeyETACommenced:
		leg.ETACommenced = coercion.ParseDate(raw)
	case fieldmap.KeyATACommenced:
		leg.ATACommenced = coercion.ParseDate(raw)
	case fieldmap.KeyETACompleted:
		leg.ETACompleted = coercion.ParseDate(raw)
	case fieldmap.KeyATACompleted:
		leg.ATACompleted = coercion.ParseDate(raw)
	}
}

func assignQuality(record *models.ImportRecord, column fieldmap.ColumnMapping, raw string) {
	value := coercion.ParseNumber(raw)
	if value == nil {
		return
	}

	sequence, isDischarge := portLeg(column.Header)
	survey := qualityAt(record, locationLabel(sequence, isDischarge))

	switch column.Key {
	case fieldmap.KeyFFA:
		survey.FFA = value
	case fieldmap.KeyMoisture:
		survey.Moisture = value
	case fieldmap.KeyDOBI:
		survey.DOBI = value
	case fieldmap.KeyColor:
		survey.Color = value
	case fieldmap.KeyDirtSand:
		survey.DirtSand = value
	case fieldmap.KeyStone:
		survey.Stone = value
	}
}

// qualityAt finds or creates the quality sub-object for a location label
func qualityAt(record *models.ImportRecord, location string) *models.QualityFields {
	for i := range record.Quality {
		if record.Quality[i].Location == location {
			return &record.Quality[i]
		}
	}
	record.Quality = append(record.Quality, models.QualityFields{Location: location})
	return &record.Quality[len(record.Quality)-1]
}

func assignTrucking(record *models.ImportRecord, column fieldmap.ColumnMapping, raw string) {
	leg := truckingAt(record, truckingLeg(column.Header))

	switch column.Key {
	case fieldmap.KeyTruckingOperationID:
		leg.OperationID = coercion.ParseString(raw)
	case fieldmap.KeyTruckingCompany:
		leg.TruckingCompany = coercion.ParseString(raw)
	case fieldmap.KeyVehicleNumber:
		leg.VehicleNumber = coercion.ParseString(raw)
	case fieldmap.KeyLoadingLocation:
		leg.LoadingLocation = coercion.ParseString(raw)
	case fieldmap.KeyDischargeLocation:
		leg.DischargeLocation = coercion.ParseString(raw)
	case fieldmap.KeyQuantitySent:
		leg.QuantitySent = coercion.ParseNumber(raw)
	case fieldmap.KeyQuantityDelivered:
		leg.QuantityDelivered = coercion.ParseNumber(raw)
	case fieldmap.KeyDepartureDate:
		leg.DepartureDate = coercion.ParseDate(raw)
	case fieldmap.KeyArrivalDate:
		leg.ArrivalDate = coercion.ParseDate(raw)
	}
}

// truckingAt finds or creates the trucking sub-object for a leg number
func truckingAt(record *models.ImportRecord, leg int) *models.TruckingFields {
	for i := range record.Trucking {
		if record.Trucking[i].Leg == leg {
			return &record.Trucking[i]
		}
	}
	record.Trucking = append(record.Trucking, models.TruckingFields{Leg: leg})
	return &record.Trucking[len(record.Trucking)-1]
}

func assignPayment(payment *models.PaymentFields, key, raw string) {
	switch key {
	case fieldmap.KeyPaymentDueDate:
		payment.DueDate = coercion.ParseDate(raw)
	case fieldmap.KeyDPDate:
		payment.DPDate = coercion.ParseDate(raw)
	case fieldmap.KeyPayoffDate:
		payment.PayoffDate = coercion.ParseDate(raw)
	case fieldmap.KeyPaymentDeviation:
		payment.Deviation = coercion.ParseNumber(raw)
	}
}

func assignVessel(vessel *models.VesselFields, key, raw string) {
	switch key {
	case fieldmap.KeyVesselName:
		vessel.VesselName = coercion.ParseString(raw)
	case fieldmap.KeyIMONumber:
		vessel.IMONumber = coercion.ParseString(raw)
	case fieldmap.KeyVesselFlag:
		vessel.Flag = coercion.ParseString(raw)
	case fieldmap.KeyVesselCapacity:
		vessel.Capacity = coercion.ParseNumber(raw)
	}
}
