package rowparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/fieldmap"
)

func TestParseBuildsStructuredRecord(t *testing.T) {
	headers := []string{
		"Contract No.", "PO No.", "Supplier Name", "Contract Quantity (MT)",
		"Unit Price", "Sea/Land", "STO No.", "Vessel Name",
		"Loading Port 1", "Qty Loading Port 1", "FFA Loading Port 1",
		"Discharge Port", "Payment Due Date",
	}
	cells := []string{
		"C100", "P1", "PT Sawit Makmur", "1,000",
		"812.50", "SEA", "S1", "MV Alpha",
		"Dumai", "400", "3.2",
		"Rotterdam", "7/15/24",
	}

	columns := fieldmap.MapHeaders(headers)
	record, ok := Parse(2, cells, columns)

	require.True(t, ok)
	require.NotNil(t, record)
	assert.Equal(t, 2, record.RowIndex)

	require.NotNil(t, record.Contract.ContractNumber)
	assert.Equal(t, "C100", *record.Contract.ContractNumber)
	require.NotNil(t, record.Contract.PONumber)
	assert.Equal(t, "P1", *record.Contract.PONumber)
	require.NotNil(t, record.Contract.QuantityOrdered)
	assert.Equal(t, 1000.0, *record.Contract.QuantityOrdered)
	require.NotNil(t, record.Contract.UnitPrice)
	assert.Equal(t, 812.50, *record.Contract.UnitPrice)

	require.NotNil(t, record.Shipment.STONumber)
	assert.Equal(t, "S1", *record.Shipment.STONumber)
	require.NotNil(t, record.Vessel.VesselName)
	assert.Equal(t, "MV Alpha", *record.Vessel.VesselName)

	leg := record.Shipment.LoadingPorts[0]
	require.NotNil(t, leg.PortName)
	assert.Equal(t, "Dumai", *leg.PortName)
	require.NotNil(t, leg.Quantity)
	assert.Equal(t, 400.0, *leg.Quantity)

	require.NotNil(t, record.Shipment.DischargePort.PortName)
	assert.Equal(t, "Rotterdam", *record.Shipment.DischargePort.PortName)

	require.Len(t, record.Quality, 1)
	assert.Equal(t, "Loading Port 1", record.Quality[0].Location)
	require.NotNil(t, record.Quality[0].FFA)
	assert.Equal(t, 3.2, *record.Quality[0].FFA)

	require.NotNil(t, record.Payment.DueDate)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), *record.Payment.DueDate)
}

func TestParseFansOutQualityByLocation(t *testing.T) {
	headers := []string{"FFA Loading Port 1", "FFA Loading Port 2", "Moisture Loading Port 2", "DOBI Discharge Port"}
	cells := []string{"3.1", "3.4", "0.18", "2.6"}

	record, ok := Parse(0, cells, fieldmap.MapHeaders(headers))
	require.True(t, ok)

	require.Len(t, record.Quality, 3)
	assert.Equal(t, "Loading Port 1", record.Quality[0].Location)
	assert.Equal(t, "Loading Port 2", record.Quality[1].Location)
	assert.Equal(t, "Discharge Port", record.Quality[2].Location)

	require.NotNil(t, record.Quality[1].FFA)
	assert.Equal(t, 3.4, *record.Quality[1].FFA)
	require.NotNil(t, record.Quality[1].Moisture)
	assert.Equal(t, 0.18, *record.Quality[1].Moisture)
	require.NotNil(t, record.Quality[2].DOBI)
	assert.Equal(t, 2.6, *record.Quality[2].DOBI)
}

func TestParseFansOutTruckingByLeg(t *testing.T) {
	headers := []string{"Trucking 1 Vehicle No", "Trucking 1 Qty Sent", "Trucking 2 Vehicle No", "Trucking 2 Qty Sent"}
	cells := []string{"B 9001 XY", "25", "B 9002 XY", "30"}

	record, ok := Parse(0, cells, fieldmap.MapHeaders(headers))
	require.True(t, ok)

	require.Len(t, record.Trucking, 2)
	assert.Equal(t, 1, record.Trucking[0].Leg)
	assert.Equal(t, 2, record.Trucking[1].Leg)
	require.NotNil(t, record.Trucking[0].VehicleNumber)
	assert.Equal(t, "B 9001 XY", *record.Trucking[0].VehicleNumber)
	require.NotNil(t, record.Trucking[1].QuantitySent)
	assert.Equal(t, 30.0, *record.Trucking[1].QuantitySent)
}

func TestParseSkipsEmptyRow(t *testing.T) {
	headers := []string{"Contract No.", "Supplier Name"}
	columns := fieldmap.MapHeaders(headers)

	record, ok := Parse(5, []string{"", "   "}, columns)
	assert.False(t, ok)
	assert.Nil(t, record)

	record, ok = Parse(5, nil, columns)
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestParseTreatsPlaceholderPortsAsAbsent(t *testing.T) {
	headers := []string{"Contract No.", "Loading Port 2", "Discharge Port"}
	cells := []string{"C100", "0.00", "-"}

	record, ok := Parse(0, cells, fieldmap.MapHeaders(headers))
	require.True(t, ok)

	assert.Nil(t, record.Shipment.LoadingPorts[1].PortName)
	assert.Nil(t, record.Shipment.DischargePort.PortName)
}

func TestParseIgnoresCalculatedColumns(t *testing.T) {
	rows := [][]string{
		{"SAP", "Calc"},
		{"Contract No.", "Contract Quantity (MT)"},
	}
	columns := fieldmap.MapFixedLayout(rows, 1)

	record, ok := Parse(0, []string{"C100", "999"}, columns)
	require.True(t, ok)
	require.NotNil(t, record.Contract.ContractNumber)
	assert.Nil(t, record.Contract.QuantityOrdered)
}

func TestParseCoercesUnparseableToNil(t *testing.T) {
	headers := []string{"Contract No.", "Contract Quantity (MT)", "BL Date"}
	cells := []string{"C100", "TBD", "awaiting"}

	record, ok := Parse(0, cells, fieldmap.MapHeaders(headers))
	require.True(t, ok)
	assert.Nil(t, record.Contract.QuantityOrdered)
	assert.Nil(t, record.Shipment.BLDate)
}

func TestPortLeg(t *testing.T) {
	tests := []struct {
		header    string
		sequence  int
		discharge bool
	}{
		{"loading port 1", 1, false},
		{"qty loading port 2", 2, false},
		{"port of loading 3", 3, false},
		{"1st loading port", 1, false},
		{"discharge port", 0, true},
		{"eta arrival discharge port", 0, true},
		{"pelabuhan bongkar", 0, true},
		{"loading port", 1, false}, // no marker defaults to leg 1
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			sequence, discharge := portLeg(tt.header)
			assert.Equal(t, tt.discharge, discharge)
			if !tt.discharge {
				assert.Equal(t, tt.sequence, sequence)
			}
		})
	}
}

func TestRecordRouting(t *testing.T) {
	headers := []string{"Contract No.", "Sea/Land"}

	record, ok := Parse(0, []string{"C1", "Sea"}, fieldmap.MapHeaders(headers))
	require.True(t, ok)
	assert.Equal(t, "SEA", record.Route())

	record, ok = Parse(0, []string{"C1", "darat"}, fieldmap.MapHeaders(headers))
	require.True(t, ok)
	assert.Equal(t, "LAND", record.Route())

	record, ok = Parse(0, []string{"C1", "courier"}, fieldmap.MapHeaders(headers))
	require.True(t, ok)
	assert.Equal(t, "", record.Route())
}
