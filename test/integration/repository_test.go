package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/internal/repositories/processedrow"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
)

func TestContractUpsertMergePreservesExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	txCtx, tx, err := database.GetTx(ctx, p.logger, p.db, nil)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	contractNo := uniqueKey("C")
	supplier := "PT Sawit Makmur"
	quantity := 500.0

	first, err := p.contracts.Upsert(txCtx, tx, models.ContractFields{
		ContractNumber:  &contractNo,
		SupplierName:    &supplier,
		QuantityOrdered: &quantity,
	})
	require.NoError(t, err)
	assert.True(t, first.IsNew)

	// a sparse later row sets its own fields and erases nothing
	price := 812.5
	second, err := p.contracts.Upsert(txCtx, tx, models.ContractFields{
		ContractNumber: &contractNo,
		UnitPrice:      &price,
	})
	require.NoError(t, err)
	assert.False(t, second.IsNew)
	require.NotNil(t, second.Contract.SupplierName)
	assert.Equal(t, supplier, *second.Contract.SupplierName)
	require.NotNil(t, second.Contract.QuantityOrdered)
	assert.Equal(t, quantity, *second.Contract.QuantityOrdered)
	require.NotNil(t, second.Contract.UnitPrice)
	assert.Equal(t, price, *second.Contract.UnitPrice)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM contracts WHERE contract_number = $1", contractNo))
}

func TestSavepointRollbackKeepsEarlierRows(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	txCtx, tx, err := database.GetTx(ctx, p.logger, p.db, nil)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	contractNo := uniqueKey("C")
	_, err = p.contracts.Upsert(txCtx, tx, models.ContractFields{ContractNumber: &contractNo})
	require.NoError(t, err)

	// a failing statement inside the savepoint must not take the earlier
	// row down with it
	require.NoError(t, tx.Savepoint(txCtx, "row_2"))
	_, err = tx.ExecContext(txCtx, "INSERT INTO imports (id) VALUES ($1)", "not-a-uuid")
	require.Error(t, err)
	require.NoError(t, tx.RollbackToSavepoint(txCtx, "row_2"))
	require.NoError(t, tx.ReleaseSavepoint(txCtx, "row_2"))

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, countRows(t, p.db, "SELECT COUNT(*) FROM contracts WHERE contract_number = $1", contractNo))
}

func TestKeylessProcessedRowsArchiveSeparately(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	txCtx, tx, err := database.GetTx(ctx, p.logger, p.db, nil)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	imp, err := p.imports.Create(txCtx, tx, models.CreateImportRequest{
		FileName:     "keyless.xlsx",
		SheetName:    "SAP Export",
		TotalRecords: 2,
	})
	require.NoError(t, err)

	rowA, err := p.imports.ArchiveRow(txCtx, tx, imp.ID, 1, []string{"PT Angkut"})
	require.NoError(t, err)
	rowB, err := p.imports.ArchiveRow(txCtx, tx, imp.ID, 2, []string{"PT Lintas"})
	require.NoError(t, err)

	recordA := &models.ImportRecord{Trucking: []models.TruckingFields{{Leg: 1, TruckingCompany: strPtr("PT Angkut")}}}
	recordB := &models.ImportRecord{Trucking: []models.TruckingFields{{Leg: 1, TruckingCompany: strPtr("PT Lintas")}}}

	// neither row carries a contract, PO, or STO number; both must archive,
	// not collapse onto a shared blank identity
	resultA, err := p.processedRows.Upsert(txCtx, tx, imp.ID, rowA.ID, recordA)
	require.NoError(t, err)
	assert.True(t, resultA.IsNew)
	resultB, err := p.processedRows.Upsert(txCtx, tx, imp.ID, rowB.ID, recordB)
	require.NoError(t, err)
	assert.True(t, resultB.IsNew)
	assert.NotEqual(t, resultA.Row.ID, resultB.Row.ID)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 2, countRows(t, p.db, "SELECT COUNT(*) FROM processed_rows WHERE import_id = $1", imp.ID))
}

func TestListAllPagesAcrossTimestampTies(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	p := newPipeline(t)
	ctx := context.Background()

	txCtx, tx, err := database.GetTx(ctx, p.logger, p.db, nil)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	imp, err := p.imports.Create(txCtx, tx, models.CreateImportRequest{
		FileName:     "ties.xlsx",
		SheetName:    "SAP Export",
		TotalRecords: 3,
	})
	require.NoError(t, err)

	// three rows sharing one creation instant, timestamped past everything
	// else in the table so the page walk below is deterministic
	createdAt := time.Now().UTC().Add(100 * 365 * 24 * time.Hour).Truncate(time.Second)
	ids := make([]string, 3)
	for i := range ids {
		row, err := p.imports.ArchiveRow(txCtx, tx, imp.ID, i+1, []string{"tie"})
		require.NoError(t, err)
		ids[i] = uuid.New().String()
		_, err = tx.ExecContext(txCtx, `
			INSERT INTO processed_rows (id, import_id, import_row_id, record, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)`,
			ids[i], imp.ID, row.ID, `{}`, createdAt)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit(ctx))

	// paging by (created_at, id) must not skip the tied rows at the page
	// boundary
	after := &processedrow.ListCursor{CreatedAt: createdAt.Add(-time.Second), ID: uuid.Nil.String()}
	seen := map[string]bool{}
	for {
		page, err := p.processedRows.ListAll(ctx, after, 2)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for i := range page {
			seen[page[i].ID] = true
		}
		last := page[len(page)-1]
		after = &processedrow.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	for _, id := range ids {
		assert.True(t, seen[id], "row %s skipped across a page boundary", id)
	}
}
