package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioHeaders = []any{
	"Contract No", "PO No", "Sea / Land", "Vessel Name",
	"Contract Quantity (MT)", "STO No", "Qty at Loading Port 1",
}

func TestImportThreeRowFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	contractNo := uniqueKey("C")
	poNo := uniqueKey("P")
	stoNo := uniqueKey("S")

	data := buildWorkbook(t, scenarioHeaders, [][]any{
		{contractNo, poNo, "SEA", "MV Alpha", 1000, "", ""},
		{contractNo, "", "SEA", "", "", stoNo, 400},
		// a stray note under a headerless column: no mapped cell carries a
		// value, so the row is skipped, not failed
		{"", "", "", "", "", "", "", "tbd"},
	})

	result, err := p.service.Run(ctx, "three-rows.xlsx", data, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 2, result.ProcessedRecords)
	assert.Equal(t, 0, result.FailedRecords)
	assert.Equal(t, 1, result.SkippedRecords)

	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM contracts WHERE contract_number = $1", contractNo))
	var quantity float64
	require.NoError(t, p.db.GetContext(ctx, &quantity,
		"SELECT quantity_ordered FROM contracts WHERE contract_number = $1", contractNo))
	assert.Equal(t, 1000.0, quantity)

	// row 1 has no shipment identity and no shipment fact, so only row 2's
	// STO-derived shipment exists
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM shipments WHERE contract_number = $1", contractNo))
	shipmentKey := stoNo + "-" + contractNo
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM shipments WHERE shipment_id = $1 AND contract_id IS NOT NULL", shipmentKey))

	var legQuantity float64
	require.NoError(t, p.db.GetContext(ctx, &legQuantity, `
		SELECT vlp.quantity
		FROM vessel_loading_ports vlp
		JOIN shipments s ON s.id::text = vlp.shipment_id
		WHERE s.shipment_id = $1 AND vlp.sequence = 1`, shipmentKey))
	assert.Equal(t, 400.0, legQuantity)
}

func TestReimportUnchangedFileIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	contractNo := uniqueKey("C")
	poNo := uniqueKey("P")
	stoNo := uniqueKey("S")

	data := buildWorkbook(t, scenarioHeaders, [][]any{
		{contractNo, poNo, "SEA", "MV Alpha", 1000, "", ""},
		{contractNo, "", "SEA", "", "", stoNo, 400},
	})

	first, err := p.service.Run(ctx, "idempotent.xlsx", data, nil)
	require.NoError(t, err)
	require.Equal(t, 2, first.ProcessedRecords)

	second, err := p.service.Run(ctx, "idempotent.xlsx", data, nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.ProcessedRecords)

	// the second pass lands on the same rows: no duplicate contract, no
	// duplicate shipment, and each identity triple keeps a single archive
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM contracts WHERE contract_number = $1", contractNo))
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM shipments WHERE contract_number = $1", contractNo))
	assert.Equal(t, 2, countRows(t, p.db, "SELECT COUNT(*) FROM processed_rows WHERE contract_number = $1", contractNo))
}

func TestLandRowSynthesizesTruckingWithoutShipment(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	contractNo := uniqueKey("C")
	headers := []any{"Contract No", "Sea / Land", "Loading Port 1", "Qty Loaded (MT)", "Qty Discharged (MT)"}
	data := buildWorkbook(t, headers, [][]any{
		{contractNo, "LAND", "Plant X", 50, 48},
	})

	result, err := p.service.Run(ctx, "land-row.xlsx", data, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.ProcessedRecords)

	ops, err := p.trucking.ListByContractNumber(ctx, contractNo)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.NotNil(t, ops[0].LoadingLocation)
	assert.Equal(t, "Plant X", *ops[0].LoadingLocation)
	require.NotNil(t, ops[0].QuantitySent)
	assert.Equal(t, 50.0, *ops[0].QuantitySent)
	require.NotNil(t, ops[0].QuantityDelivered)
	assert.Equal(t, 48.0, *ops[0].QuantityDelivered)

	assert.Equal(t, 0, countRows(t, p.db, "SELECT COUNT(*) FROM shipments WHERE contract_number = $1", contractNo))
}
