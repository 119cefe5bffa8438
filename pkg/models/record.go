package models

import (
	"strings"
	"time"
)

// ImportRecord is the structured intermediate form of one source row after
// parsing. Each sub-object holds only the fields the row actually carried;
// absent cells stay nil so the distribution engine's merge semantics can tell
// "not provided" apart from "provided as zero".
type ImportRecord struct {
	RowIndex int              `json:"row_index"`
	Contract ContractFields   `json:"contract"`
	Shipment ShipmentFields   `json:"shipment"`
	Quality  []QualityFields  `json:"quality,omitempty"`
	Trucking []TruckingFields `json:"trucking,omitempty"`
	Payment  PaymentFields    `json:"payment"`
	Vessel   VesselFields     `json:"vessel"`
}

// ContractFields holds the contract-categorized cells of a row
type ContractFields struct {
	ContractNumber  *string    `json:"contract_number,omitempty"`
	PONumber        *string    `json:"po_number,omitempty"`
	ContractDate    *time.Time `json:"contract_date,omitempty"`
	SupplierName    *string    `json:"supplier_name,omitempty"`
	ProductName     *string    `json:"product_name,omitempty"`
	ProductGrade    *string    `json:"product_grade,omitempty"`
	QuantityOrdered *float64   `json:"quantity_ordered,omitempty"`
	UnitPrice       *float64   `json:"unit_price,omitempty"`
	Currency        *string    `json:"currency,omitempty"`
	DeliveryTerms   *string    `json:"delivery_terms,omitempty"`
	Destination     *string    `json:"destination,omitempty"`
	SeaLand         *string    `json:"sea_land,omitempty"`
	Status          *string    `json:"status,omitempty"`
	PaymentTerms    *string    `json:"payment_terms,omitempty"`
}

// ShipmentFields holds the shipment-categorized cells of a row, including the
// per-leg port fields the distribution engine fans out into vessel loading
// port records.
type ShipmentFields struct {
	ShipmentID         *string    `json:"shipment_id,omitempty"`
	STONumber          *string    `json:"sto_number,omitempty"`
	STOQuantity        *float64   `json:"sto_quantity,omitempty"`
	ShippingLine       *string    `json:"shipping_line,omitempty"`
	ReadinessDate      *time.Time `json:"readiness_date,omitempty"`
	SailDate           *time.Time `json:"sail_date,omitempty"`
	BLNumber           *string    `json:"bl_number,omitempty"`
	BLDate             *time.Time `json:"bl_date,omitempty"`
	QuantityLoaded     *float64   `json:"quantity_loaded,omitempty"`
	QuantityDischarged *float64   `json:"quantity_discharged,omitempty"`

	// Index 0-2 are loading legs 1-3; the discharge leg is separate.
	LoadingPorts  [3]PortLegFields `json:"loading_ports"`
	DischargePort PortLegFields    `json:"discharge_port"`
}

// PortLegFields holds one port leg's cells. ETA/ATA pairs cover the four
// tracked milestones: arrival, berthing, loading commenced, loading completed.
type PortLegFields struct {
	PortName     *string    `json:"port_name,omitempty"`
	Quantity     *float64   `json:"quantity,omitempty"`
	LoadingRate  *float64   `json:"loading_rate,omitempty"`
	ETAArrival   *time.Time `json:"eta_arrival,omitempty"`
	ATAArrival   *time.Time `json:"ata_arrival,omitempty"`
	ETABerthing  *time.Time `json:"eta_berthing,omitempty"`
	ATABerthing  *time.Time `json:"ata_berthing,omitempty"`
	ETACommenced *time.Time `json:"eta_commenced,omitempty"`
	ATACommenced *time.Time `json:"ata_commenced,omitempty"`
	ETACompleted *time.Time `json:"eta_completed,omitempty"`
	ATACompleted *time.Time `json:"ata_completed,omitempty"`
}

// IsEmpty reports whether the leg carries no concrete fact. Empty legs are
// never persisted as placeholder rows.
func (p *PortLegFields) IsEmpty() bool {
	return p.PortName == nil && p.Quantity == nil && p.LoadingRate == nil &&
		p.ETAArrival == nil && p.ATAArrival == nil &&
		p.ETABerthing == nil && p.ATABerthing == nil &&
		p.ETACommenced == nil && p.ATACommenced == nil &&
		p.ETACompleted == nil && p.ATACompleted == nil
}

// QualityFields holds one location's quality survey measurements
type QualityFields struct {
	Location string   `json:"location"`
	FFA      *float64 `json:"ffa,omitempty"`
	Moisture *float64 `json:"moisture,omitempty"`
	DOBI     *float64 `json:"dobi,omitempty"`
	Color    *float64 `json:"color,omitempty"`
	DirtSand *float64 `json:"dirt_sand,omitempty"`
	Stone    *float64 `json:"stone,omitempty"`
}

// HasMeasurement reports whether at least one measurement is present
func (q *QualityFields) HasMeasurement() bool {
	return q.FFA != nil || q.Moisture != nil || q.DOBI != nil ||
		q.Color != nil || q.DirtSand != nil || q.Stone != nil
}

// TruckingFields holds one trucking leg's cells
type TruckingFields struct {
	Leg               int        `json:"leg"`
	OperationID       *string    `json:"operation_id,omitempty"`
	TruckingCompany   *string    `json:"trucking_company,omitempty"`
	VehicleNumber     *string    `json:"vehicle_number,omitempty"`
	LoadingLocation   *string    `json:"loading_location,omitempty"`
	DischargeLocation *string    `json:"discharge_location,omitempty"`
	QuantitySent      *float64   `json:"quantity_sent,omitempty"`
	QuantityDelivered *float64   `json:"quantity_delivered,omitempty"`
	DepartureDate     *time.Time `json:"departure_date,omitempty"`
	ArrivalDate       *time.Time `json:"arrival_date,omitempty"`
}

// PaymentFields holds the payment-categorized cells of a row. Monetary amount
// and reconciliation status are owned by the manual payment workflow and never
// come from imports.
type PaymentFields struct {
	DueDate    *time.Time `json:"due_date,omitempty"`
	DPDate     *time.Time `json:"dp_date,omitempty"`
	PayoffDate *time.Time `json:"payoff_date,omitempty"`
	Deviation  *float64   `json:"deviation,omitempty"`
}

// IsEmpty reports whether no payment field is present
func (p *PaymentFields) IsEmpty() bool {
	return p.DueDate == nil && p.DPDate == nil && p.PayoffDate == nil && p.Deviation == nil
}

// VesselFields holds the vessel-categorized cells of a row
type VesselFields struct {
	VesselName *string  `json:"vessel_name,omitempty"`
	IMONumber  *string  `json:"imo_number,omitempty"`
	Flag       *string  `json:"flag,omitempty"`
	Capacity   *float64 `json:"capacity,omitempty"`
}

// SEA/LAND routing values after normalization
const (
	RouteSea  = "SEA"
	RouteLand = "LAND"
)

// Route returns the normalized sea/land routing decision for the record.
// Unrecognized or absent values return "" and neither path runs.
func (r *ImportRecord) Route() string {
	if r.Contract.SeaLand == nil {
		return ""
	}
	switch strings.ToUpper(strings.TrimSpace(*r.Contract.SeaLand)) {
	case "SEA", "S", "VESSEL", "LAUT":
		return RouteSea
	case "LAND", "L", "TRUCK", "TRUCKING", "DARAT":
		return RouteLand
	}
	return ""
}

// HasContractIdentity reports whether the record can address a contract row:
// an explicit contract or PO number, or an STO-resolved contract number.
func (r *ImportRecord) HasContractIdentity() bool {
	return notBlank(r.Contract.ContractNumber) || notBlank(r.Contract.PONumber)
}

// HasContractAttributes reports whether the record carries at least one
// descriptive contract attribute beyond its identifiers. STO-resolved rows
// only touch the contract when they have something to contribute.
func (r *ImportRecord) HasContractAttributes() bool {
	c := r.Contract
	return c.SupplierName != nil || c.ProductName != nil || c.ProductGrade != nil ||
		c.QuantityOrdered != nil || c.UnitPrice != nil || c.Currency != nil ||
		c.ContractDate != nil || c.DeliveryTerms != nil || c.Destination != nil ||
		c.SeaLand != nil || c.PaymentTerms != nil
}

// HasShipmentIdentity reports whether the record can address a shipment row:
// an explicit shipment id or an STO number to derive one from.
func (r *ImportRecord) HasShipmentIdentity() bool {
	return notBlank(r.Shipment.ShipmentID) || notBlank(r.Shipment.STONumber)
}

// HasShipmentData reports whether the record carries at least one shipment
// fact worth persisting: a shipment-level field, a non-empty port leg, or a
// quality measurement. Vessel identifiers alone don't count; a row naming
// only the vessel has nothing to hang a shipment on.
func (r *ImportRecord) HasShipmentData() bool {
	s := &r.Shipment
	if s.STOQuantity != nil || s.ShippingLine != nil || s.ReadinessDate != nil ||
		s.SailDate != nil || s.BLNumber != nil || s.BLDate != nil ||
		s.QuantityLoaded != nil || s.QuantityDischarged != nil {
		return true
	}
	for i := range s.LoadingPorts {
		if !s.LoadingPorts[i].IsEmpty() {
			return true
		}
	}
	if !s.DischargePort.IsEmpty() {
		return true
	}
	for i := range r.Quality {
		if r.Quality[i].HasMeasurement() {
			return true
		}
	}
	return false
}

// TriKey returns the (contract, po, sto) identity triple used for processed
// row deduplication across imports.
func (r *ImportRecord) TriKey() (contractNumber, poNumber, stoNumber string) {
	if r.Contract.ContractNumber != nil {
		contractNumber = strings.TrimSpace(*r.Contract.ContractNumber)
	}
	if r.Contract.PONumber != nil {
		poNumber = strings.TrimSpace(*r.Contract.PONumber)
	}
	if r.Shipment.STONumber != nil {
		stoNumber = strings.TrimSpace(*r.Shipment.STONumber)
	}
	return contractNumber, poNumber, stoNumber
}

func notBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
