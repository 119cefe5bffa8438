package models

import "time"

// DischargePortSequence is the sentinel sequence number that marks the
// discharge leg of a shipment. Loading legs use sequence 1-3.
const DischargePortSequence = 999

// Shipment is one sea movement under a contract
type Shipment struct {
	ID                 string     `json:"id" db:"id"`
	ContractID         *string    `json:"contract_id,omitempty" db:"contract_id"`
	ShipmentID         *string    `json:"shipment_id,omitempty" db:"shipment_id"`
	STONumber          *string    `json:"sto_number,omitempty" db:"sto_number"`
	ContractNumber     *string    `json:"contract_number,omitempty" db:"contract_number"`
	PONumber           *string    `json:"po_number,omitempty" db:"po_number"`
	VesselName         *string    `json:"vessel_name,omitempty" db:"vessel_name"`
	ShippingLine       *string    `json:"shipping_line,omitempty" db:"shipping_line"`
	STOQuantity        *float64   `json:"sto_quantity,omitempty" db:"sto_quantity"`
	QuantityLoaded     *float64   `json:"quantity_loaded,omitempty" db:"quantity_loaded"`
	QuantityDischarged *float64   `json:"quantity_discharged,omitempty" db:"quantity_discharged"`
	ReadinessDate      *time.Time `json:"readiness_date,omitempty" db:"readiness_date"`
	SailDate           *time.Time `json:"sail_date,omitempty" db:"sail_date"`
	BLNumber           *string    `json:"bl_number,omitempty" db:"bl_number"`
	BLDate             *time.Time `json:"bl_date,omitempty" db:"bl_date"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// UpsertShipmentResult reports the shipment row an upsert landed on and
// whether the statement inserted rather than merged.
type UpsertShipmentResult struct {
	Shipment Shipment `json:"shipment"`
	IsNew    bool     `json:"is_new"`
}

// VesselLoadingPort is one port leg of a shipment: up to three loading legs
// plus a discharge leg flagged by DischargePortSequence.
type VesselLoadingPort struct {
	ID           string     `json:"id" db:"id"`
	ShipmentID   string     `json:"shipment_id" db:"shipment_id"`
	Sequence     int        `json:"sequence" db:"sequence"`
	PortName     *string    `json:"port_name,omitempty" db:"port_name"`
	Quantity     *float64   `json:"quantity,omitempty" db:"quantity"`
	LoadingRate  *float64   `json:"loading_rate,omitempty" db:"loading_rate"`
	ETAArrival   *time.Time `json:"eta_arrival,omitempty" db:"eta_arrival"`
	ATAArrival   *time.Time `json:"ata_arrival,omitempty" db:"ata_arrival"`
	ETABerthing  *time.Time `json:"eta_berthing,omitempty" db:"eta_berthing"`
	ATABerthing  *time.Time `json:"ata_berthing,omitempty" db:"ata_berthing"`
	ETACommenced *time.Time `json:"eta_commenced,omitempty" db:"eta_commenced"`
	ATACommenced *time.Time `json:"ata_commenced,omitempty" db:"ata_commenced"`
	ETACompleted *time.Time `json:"eta_completed,omitempty" db:"eta_completed"`
	ATACompleted *time.Time `json:"ata_completed,omitempty" db:"ata_completed"`

	// Quality values matched from the row's surveys by location label
	FFA      *float64 `json:"ffa,omitempty" db:"ffa"`
	Moisture *float64 `json:"moisture,omitempty" db:"moisture"`
	DOBI     *float64 `json:"dobi,omitempty" db:"dobi"`
	Color    *float64 `json:"color,omitempty" db:"color"`
	DirtSand *float64 `json:"dirt_sand,omitempty" db:"dirt_sand"`
	Stone    *float64 `json:"stone,omitempty" db:"stone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasFact reports whether the leg carries at least one concrete fact worth
// persisting. Empty placeholder legs are never written.
func (v *VesselLoadingPort) HasFact() bool {
	return v.PortName != nil || v.Quantity != nil ||
		v.FFA != nil || v.Moisture != nil || v.DOBI != nil ||
		v.Color != nil || v.DirtSand != nil || v.Stone != nil ||
		v.ETAArrival != nil || v.ATAArrival != nil ||
		v.ETABerthing != nil || v.ATABerthing != nil ||
		v.ETACommenced != nil || v.ATACommenced != nil ||
		v.ETACompleted != nil || v.ATACompleted != nil
}

// IsDischarge reports whether the leg is the discharge leg
func (v *VesselLoadingPort) IsDischarge() bool {
	return v.Sequence == DischargePortSequence
}

// QualitySurvey is one location's set of quality measurements for a shipment
type QualitySurvey struct {
	ID         string    `json:"id" db:"id"`
	ShipmentID string    `json:"shipment_id" db:"shipment_id"`
	Location   string    `json:"location" db:"location"`
	FFA        *float64  `json:"ffa,omitempty" db:"ffa"`
	Moisture   *float64  `json:"moisture,omitempty" db:"moisture"`
	DOBI       *float64  `json:"dobi,omitempty" db:"dobi"`
	Color      *float64  `json:"color,omitempty" db:"color"`
	DirtSand   *float64  `json:"dirt_sand,omitempty" db:"dirt_sand"`
	Stone      *float64  `json:"stone,omitempty" db:"stone"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
