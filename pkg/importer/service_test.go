package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestAppendRowErrorCapsEntries(t *testing.T) {
	result := &models.ImportResult{Errors: []models.RowError{}}

	for i := 0; i < 5; i++ {
		appendRowError(result, i, fmt.Sprintf("bad row %d", i), 3)
	}

	assert.Len(t, result.Errors, 3)
	assert.True(t, result.ErrorsTruncated)
	assert.Equal(t, 0, result.Errors[0].RowIndex)
	assert.Equal(t, "bad row 2", result.Errors[2].Message)
}

func TestAppendRowErrorUnderCap(t *testing.T) {
	result := &models.ImportResult{Errors: []models.RowError{}}

	appendRowError(result, 7, "bad cell", 100)

	assert.Len(t, result.Errors, 1)
	assert.False(t, result.ErrorsTruncated)
}

func TestNewServiceDefaultsErrorCap(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, nil, Config{})
	assert.Equal(t, 100, svc.cfg.MaxErrorEntries)

	svc = NewService(nil, nil, nil, nil, nil, nil, Config{MaxErrorEntries: 10})
	assert.Equal(t, 10, svc.cfg.MaxErrorEntries)
}

func TestImportSummaryAdd(t *testing.T) {
	total := models.ImportSummary{}
	total.Add(models.ImportSummary{ContractsCreated: 1, PortLegsUpserted: 4})
	total.Add(models.ImportSummary{ContractsUpdated: 2, StatusesForcedActive: 1, PortLegsUpserted: 1})

	assert.Equal(t, 1, total.ContractsCreated)
	assert.Equal(t, 2, total.ContractsUpdated)
	assert.Equal(t, 5, total.PortLegsUpserted)
	assert.Equal(t, 1, total.StatusesForcedActive)
}
