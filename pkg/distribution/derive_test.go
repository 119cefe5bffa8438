package distribution

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestDeriveShipmentID(t *testing.T) {
	explicit := "SHIP-7"
	record := &models.ImportRecord{}
	record.Shipment.ShipmentID = &explicit
	assert.Equal(t, "SHIP-7", DeriveShipmentID(record))

	sto := "S1"
	contractNumber := "C100"
	record = &models.ImportRecord{}
	record.Shipment.STONumber = &sto
	record.Contract.ContractNumber = &contractNumber
	assert.Equal(t, "S1-C100", DeriveShipmentID(record))

	record = &models.ImportRecord{}
	record.Shipment.STONumber = &sto
	assert.Equal(t, "S1", DeriveShipmentID(record))

	record = &models.ImportRecord{}
	id := DeriveShipmentID(record)
	assert.True(t, strings.HasPrefix(id, "SHP-"), "synthesized id %q", id)

	// blank explicit value falls through to derivation
	blank := "   "
	record = &models.ImportRecord{}
	record.Shipment.ShipmentID = &blank
	record.Shipment.STONumber = &sto
	assert.Equal(t, "S1", DeriveShipmentID(record))
}

func TestDeriveShipmentIDStableWithoutSTO(t *testing.T) {
	contractNumber := "C100"
	poNumber := "P1"
	vessel := "MV Alpha"
	qty := 1000.0

	record := &models.ImportRecord{}
	record.Contract.ContractNumber = &contractNumber
	record.Contract.PONumber = &poNumber
	record.Contract.QuantityOrdered = &qty
	record.Vessel.VesselName = &vessel

	// the key must not change between runs or re-imports of the same file
	// insert a fresh shipment on every pass
	assert.Equal(t, "SHP-C100", DeriveShipmentID(record))
	assert.Equal(t, DeriveShipmentID(record), DeriveShipmentID(record))

	record = &models.ImportRecord{}
	record.Contract.PONumber = &poNumber
	assert.Equal(t, "SHP-P1", DeriveShipmentID(record))
}

func TestHasShipmentDataIgnoresVesselAndContract(t *testing.T) {
	contractNumber := "C100"
	vessel := "MV Alpha"
	qty := 1000.0

	record := &models.ImportRecord{}
	record.Contract.ContractNumber = &contractNumber
	record.Contract.QuantityOrdered = &qty
	record.Vessel.VesselName = &vessel
	assert.False(t, record.HasShipmentIdentity())
	assert.False(t, record.HasShipmentData())

	record.Shipment.LoadingPorts[0].Quantity = &qty
	assert.True(t, record.HasShipmentData())

	record = &models.ImportRecord{}
	record.Quality = []models.QualityFields{{Location: "Loading Port 1", FFA: floatPtr(3.1)}}
	assert.True(t, record.HasShipmentData())

	sto := "S1"
	record = &models.ImportRecord{}
	record.Shipment.STONumber = &sto
	assert.True(t, record.HasShipmentIdentity())
}

func TestDerivePortLegsDropsEmptyLegs(t *testing.T) {
	port := "Dumai"
	qty := 400.0
	record := &models.ImportRecord{}
	record.Shipment.LoadingPorts[0].PortName = &port
	record.Shipment.LoadingPorts[0].Quantity = &qty

	legs := DerivePortLegs(record)
	require.Len(t, legs, 1)
	assert.Equal(t, 1, legs[0].Sequence)
	assert.False(t, legs[0].IsDischarge())
	require.NotNil(t, legs[0].PortName)
	assert.Equal(t, "Dumai", *legs[0].PortName)
}

func TestDerivePortLegsDischargeSentinel(t *testing.T) {
	discharge := "Rotterdam"
	record := &models.ImportRecord{}
	record.Shipment.DischargePort.PortName = &discharge

	legs := DerivePortLegs(record)
	require.Len(t, legs, 1)
	assert.Equal(t, models.DischargePortSequence, legs[0].Sequence)
	assert.True(t, legs[0].IsDischarge())
}

func TestDerivePortLegsAttachesQualityByLocation(t *testing.T) {
	port2 := "Belawan"
	ffa := 3.4
	record := &models.ImportRecord{}
	record.Shipment.LoadingPorts[1].PortName = &port2
	record.Quality = []models.QualityFields{
		{Location: "Loading Port 1", FFA: floatPtr(9.9)},
		{Location: "Loading Port 2", FFA: &ffa},
	}

	legs := DerivePortLegs(record)
	// leg 1 has no port data of its own, but its quality value is a concrete
	// fact, so both legs persist
	require.Len(t, legs, 2)
	assert.Equal(t, 1, legs[0].Sequence)
	require.NotNil(t, legs[0].FFA)
	assert.Equal(t, 9.9, *legs[0].FFA)
	assert.Equal(t, 2, legs[1].Sequence)
	require.NotNil(t, legs[1].FFA)
	assert.Equal(t, 3.4, *legs[1].FFA)
}

func TestDerivePortLegsComputesLoadingRate(t *testing.T) {
	qty := 480.0
	commenced := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	completed := time.Date(2024, 7, 2, 8, 0, 0, 0, time.UTC)

	record := &models.ImportRecord{}
	record.Shipment.LoadingPorts[0].Quantity = &qty
	record.Shipment.LoadingPorts[0].ATACommenced = &commenced
	record.Shipment.LoadingPorts[0].ATACompleted = &completed

	legs := DerivePortLegs(record)
	require.Len(t, legs, 1)
	require.NotNil(t, legs[0].LoadingRate)
	assert.InDelta(t, 20.0, *legs[0].LoadingRate, 0.0001) // 480 MT over 24h

	// a supplied rate is never recomputed
	supplied := 55.0
	record.Shipment.LoadingPorts[0].LoadingRate = &supplied
	legs = DerivePortLegs(record)
	require.NotNil(t, legs[0].LoadingRate)
	assert.Equal(t, 55.0, *legs[0].LoadingRate)
}

func TestComputeLoadingRateGuards(t *testing.T) {
	qty := 100.0
	at := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

	assert.Nil(t, computeLoadingRate(&models.PortLegFields{Quantity: &qty}))
	assert.Nil(t, computeLoadingRate(&models.PortLegFields{
		Quantity: &qty, ATACommenced: &at, ATACompleted: &at, // zero duration
	}))
	before := at.Add(-time.Hour)
	assert.Nil(t, computeLoadingRate(&models.PortLegFields{
		Quantity: &qty, ATACommenced: &at, ATACompleted: &before, // negative
	}))
}

func TestSynthesizeTrucking(t *testing.T) {
	loading := "Plant X"
	sent := 50.0
	delivered := 48.0
	sail := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	sto := "S9"

	record := &models.ImportRecord{}
	record.Shipment.LoadingPorts[0].PortName = &loading
	record.Shipment.QuantityLoaded = &sent
	record.Shipment.QuantityDischarged = &delivered
	record.Shipment.SailDate = &sail
	record.Shipment.STONumber = &sto

	op := SynthesizeTrucking(record)
	require.NotNil(t, op)
	require.NotNil(t, op.LoadingLocation)
	assert.Equal(t, "Plant X", *op.LoadingLocation)
	require.NotNil(t, op.QuantitySent)
	assert.Equal(t, 50.0, *op.QuantitySent)
	require.NotNil(t, op.QuantityDelivered)
	assert.Equal(t, 48.0, *op.QuantityDelivered)
	require.NotNil(t, op.DepartureDate)
	assert.Equal(t, sail, *op.DepartureDate)
	require.NotNil(t, op.OperationID)
	assert.Equal(t, "TRK-S9", *op.OperationID)
}

func TestSynthesizeTruckingFallbacks(t *testing.T) {
	stoQty := 75.0
	readiness := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	destination := "Refinery B"

	record := &models.ImportRecord{}
	record.Shipment.STOQuantity = &stoQty
	record.Shipment.ReadinessDate = &readiness
	record.Contract.Destination = &destination

	op := SynthesizeTrucking(record)
	require.NotNil(t, op)
	require.NotNil(t, op.QuantitySent)
	assert.Equal(t, 75.0, *op.QuantitySent)
	require.NotNil(t, op.DepartureDate)
	assert.Equal(t, readiness, *op.DepartureDate)
	require.NotNil(t, op.DischargeLocation)
	assert.Equal(t, "Refinery B", *op.DischargeLocation)
}

func TestSynthesizeTruckingEmptyReturnsNil(t *testing.T) {
	record := &models.ImportRecord{}
	assert.Nil(t, SynthesizeTrucking(record))

	// identifiers alone don't justify an operation
	name := "MV Alpha"
	record.Vessel.VesselName = &name
	assert.Nil(t, SynthesizeTrucking(record))
}

func TestExplicitTruckingOpsDropEmptyLegs(t *testing.T) {
	company := "PT Angkut"
	record := &models.ImportRecord{
		Trucking: []models.TruckingFields{
			{Leg: 1, TruckingCompany: &company},
			{Leg: 2}, // parsed location slot with no data
		},
	}

	ops := explicitTruckingOps(record)
	require.Len(t, ops, 1)
	assert.Equal(t, 1, ops[0].Leg)
	require.NotNil(t, ops[0].TruckingCompany)
	assert.Equal(t, "PT Angkut", *ops[0].TruckingCompany)
}

func floatPtr(f float64) *float64 { return &f }
