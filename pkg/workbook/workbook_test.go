package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestOpenBytesRejectsGarbage(t *testing.T) {
	_, err := OpenBytes([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestRowsRoundTrip(t *testing.T) {
	data := buildWorkbook(t, "SAP Export", [][]any{
		{"Contract No", "Supplier", "Quantity"},
		{"KTR-001", "PT Sawit", 1200.5},
	})

	reader, err := OpenBytes(data)
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.Rows("SAP Export")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Contract No", rows[0][0])
	assert.Equal(t, "KTR-001", rows[1][0])
}

func TestRowsUnknownSheet(t *testing.T) {
	data := buildWorkbook(t, "Data", [][]any{{"a"}})

	reader, err := OpenBytes(data)
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Rows("Missing")
	assert.Error(t, err)
}

func TestPickSheetPrefersConfiguredName(t *testing.T) {
	data := buildWorkbook(t, "Data", [][]any{{"a"}})

	reader, err := OpenBytes(data)
	require.NoError(t, err)
	defer reader.Close()

	sheet, err := PickSheet(reader, "Data")
	require.NoError(t, err)
	assert.Equal(t, "Data", sheet)

	// Unknown preference falls back to the first sheet
	sheet, err = PickSheet(reader, "Other")
	require.NoError(t, err)
	assert.Equal(t, "Data", sheet)

	// No preference takes the first sheet
	sheet, err = PickSheet(reader, "")
	require.NoError(t, err)
	assert.Equal(t, "Data", sheet)
}
