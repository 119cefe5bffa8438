// Package workbook reads uploaded spreadsheet files into row-major cell
// grids. The whole sheet is materialized up front; imports are batch-sized,
// not streaming.
package workbook

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/xuri/excelize/v2"
)

// Reader extracts raw rows from an uploaded workbook
type Reader interface {
	// SheetNames lists the sheets in workbook order
	SheetNames() []string
	// Rows returns every row of the named sheet as raw cell strings.
	// Trailing empty cells are not padded; callers index defensively.
	Rows(sheet string) ([][]string, error)
	// Close releases the underlying file resources
	Close() error
}

type excelReader struct {
	file *excelize.File
}

// Open parses a workbook from an uploaded stream. File-level failures
// (corrupt or truncated files) surface here, before any row is touched.
func Open(r io.Reader) (Reader, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "unreadable workbook: %v", err)
	}
	return &excelReader{file: file}, nil
}

// OpenBytes parses a workbook already held in memory
func OpenBytes(data []byte) (Reader, error) {
	return Open(bytes.NewReader(data))
}

func (r *excelReader) SheetNames() []string {
	return r.file.GetSheetList()
}

func (r *excelReader) Rows(sheet string) ([][]string, error) {
	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "sheet %q not found in workbook", sheet)
	}
	return rows, nil
}

func (r *excelReader) Close() error {
	return r.file.Close()
}

// PickSheet returns the sheet to import: the preferred name when present,
// otherwise the first sheet. Returns an error for workbooks with no sheets.
func PickSheet(reader Reader, preferred string) (string, error) {
	names := reader.SheetNames()
	if len(names) == 0 {
		return "", httperror.NewHTTPError(http.StatusBadRequest, "workbook has no sheets")
	}
	for _, name := range names {
		if name == preferred {
			return name, nil
		}
	}
	return names[0], nil
}
