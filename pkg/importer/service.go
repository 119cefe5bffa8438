// Package importer orchestrates a spreadsheet import end to end: workbook
// decode, header mapping, per-row parsing, identity resolution, and
// distribution into the operational tables. One import runs in one database
// transaction; each row is wrapped in a savepoint so a bad row is contained
// without losing the rest of the batch.
package importer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/fern/internal/repositories/imports"
	"github.com/Ramsey-B/fern/internal/repositories/processedrow"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/distribution"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/rowparser"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/workbook"
)

var validate = validator.New()

// Config controls how the pipeline reads the workbook and reports errors
type Config struct {
	// SheetName is the preferred sheet. Empty means first sheet.
	SheetName string
	// HeaderRowIndex is the zero-based row holding column headers. Rows
	// above it may carry the source legend, rows below it are data.
	HeaderRowIndex int
	// MaxErrorEntries caps the per-row errors returned to the client
	MaxErrorEntries int
}

// Service is the import pipeline orchestrator
type Service struct {
	db            database.DB
	imports       *imports.Repository
	processedRows *processedrow.Repository
	engine        *distribution.Engine
	emitter       *events.Emitter
	logger        ectologger.Logger
	cfg           Config
}

func NewService(
	db database.DB,
	importsRepo *imports.Repository,
	processedRows *processedrow.Repository,
	engine *distribution.Engine,
	emitter *events.Emitter,
	logger ectologger.Logger,
	cfg Config,
) *Service {
	if cfg.MaxErrorEntries <= 0 {
		cfg.MaxErrorEntries = 100
	}
	return &Service{
		db:            db,
		imports:       importsRepo,
		processedRows: processedRows,
		engine:        engine,
		emitter:       emitter,
		logger:        logger,
		cfg:           cfg,
	}
}

// Run ingests one uploaded workbook. Row-level failures are recorded and
// skipped past; the batch transaction only fails as a whole when the
// transaction itself breaks, in which case nothing is persisted.
func (s *Service) Run(ctx context.Context, fileName string, data []byte, uploadedBy *string) (*models.ImportResult, error) {
	ctx, span := tracing.StartSpan(ctx, "importer.Service.Run")
	defer span.End()

	reader, err := workbook.OpenBytes(data)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	sheet, err := workbook.PickSheet(reader, s.cfg.SheetName)
	if err != nil {
		return nil, err
	}

	rows, err := reader.Rows(sheet)
	if err != nil {
		return nil, err
	}
	if s.cfg.HeaderRowIndex >= len(rows) {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "sheet %q has no header row at index %d", sheet, s.cfg.HeaderRowIndex)
	}

	columns := fieldmap.MapFixedLayout(rows, s.cfg.HeaderRowIndex)
	dataRows := rows[s.cfg.HeaderRowIndex+1:]

	// The import record and all row outcomes live inside the same
	// transaction as the distributed entities. Rollback with the original
	// ctx is a no-op after a successful commit.
	txCtx, tx, err := database.GetTx(ctx, s.logger, s.db, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req := models.CreateImportRequest{
		FileName:     fileName,
		SheetName:    sheet,
		UploadedBy:   uploadedBy,
		TotalRecords: len(dataRows),
	}
	if err := validate.Struct(req); err != nil {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid import request: %v", err)
	}

	imp, err := s.imports.Create(txCtx, tx, req)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		ImportID:     imp.ID,
		TotalRecords: len(dataRows),
		Errors:       []models.RowError{},
	}

	for i, cells := range dataRows {
		rowIndex := s.cfg.HeaderRowIndex + 1 + i
		if err := s.processRow(txCtx, tx, imp, rowIndex, cells, columns, result); err != nil {
			// A broken transaction (failed savepoint protocol, aborted
			// connection) cannot be recovered row by row.
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"import_id": imp.ID,
				"row_index": rowIndex,
			}).Error("Import aborted, rolling back the batch")
			s.emitFailed(ctx, imp, err.Error())
			return nil, err
		}
	}

	result.Status = models.ImportStatusCompleted
	if result.FailedRecords > 0 {
		result.Status = models.ImportStatusCompletedWithErrors
	}

	if err := s.imports.Complete(txCtx, tx, imp.ID, result.Status, result.ProcessedRecords, result.FailedRecords, result.SkippedRecords); err != nil {
		s.emitFailed(ctx, imp, err.Error())
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.emitFailed(ctx, imp, err.Error())
		return nil, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"import_id": imp.ID,
		"status":    result.Status,
		"processed": result.ProcessedRecords,
		"failed":    result.FailedRecords,
		"skipped":   result.SkippedRecords,
	}).Info("Import finished")

	if err := s.emitter.EmitImportCompleted(ctx, imp, result); err != nil {
		// The import is already durable; a broker outage should not fail it
		s.logger.WithContext(ctx).WithError(err).Warn("Import committed but event emission failed")
	}

	return result, nil
}

// processRow handles one data row. A returned error means the batch
// transaction is no longer usable; row-level failures are absorbed into the
// result instead.
func (s *Service) processRow(
	txCtx context.Context,
	tx database.Tx,
	imp *models.Import,
	rowIndex int,
	cells []string,
	columns []fieldmap.ColumnMapping,
	result *models.ImportResult,
) error {
	// Archive before the savepoint so the raw row survives a row rollback
	row, err := s.imports.ArchiveRow(txCtx, tx, imp.ID, rowIndex, cells)
	if err != nil {
		return err
	}

	record, ok := rowparser.Parse(rowIndex, cells, columns)
	if !ok {
		if err := s.imports.MarkRow(txCtx, tx, row.ID, models.ImportRowStatusSkipped, nil); err != nil {
			return err
		}
		result.SkippedRecords++
		return nil
	}

	savepoint := fmt.Sprintf("row_%d", rowIndex)
	if err := tx.Savepoint(txCtx, savepoint); err != nil {
		return err
	}

	summary, rowErr := s.distributeRow(txCtx, tx, imp, row, record)
	if rowErr != nil {
		if err := tx.RollbackToSavepoint(txCtx, savepoint); err != nil {
			return err
		}
		if err := tx.ReleaseSavepoint(txCtx, savepoint); err != nil {
			return err
		}
		msg := rowErr.Error()
		if err := s.imports.MarkRow(txCtx, tx, row.ID, models.ImportRowStatusFailed, &msg); err != nil {
			return err
		}
		result.FailedRecords++
		appendRowError(result, rowIndex, msg, s.cfg.MaxErrorEntries)
		s.logger.WithContext(txCtx).WithError(rowErr).WithFields(map[string]any{
			"import_id": imp.ID,
			"row_index": rowIndex,
		}).Warn("Row failed, continuing with the rest of the batch")
		return nil
	}

	if err := tx.ReleaseSavepoint(txCtx, savepoint); err != nil {
		return err
	}
	if err := s.imports.MarkRow(txCtx, tx, row.ID, models.ImportRowStatusProcessed, nil); err != nil {
		return err
	}
	result.ProcessedRecords++
	if summary != nil {
		result.Summary.Add(*summary)
	}
	return nil
}

// distributeRow resolves the record's identity, stores the processed row,
// and fans it out into the operational tables
func (s *Service) distributeRow(
	txCtx context.Context,
	tx database.Tx,
	imp *models.Import,
	row *models.ImportRow,
	record *models.ImportRecord,
) (*models.ImportSummary, error) {
	opts := distribution.Options{}

	// Rows carrying only an STO number try to recover their contract from
	// earlier rows that carried both
	contractNumber, poNumber, stoNumber := record.TriKey()
	if contractNumber == "" && poNumber == "" && stoNumber != "" {
		resolved, err := s.processedRows.FindContractBySTO(txCtx, tx, stoNumber)
		if err != nil {
			return nil, err
		}
		if resolved != nil {
			record.Contract.ContractNumber = resolved
			opts.ContractResolvedFromSTO = true
		}
	}

	if _, err := s.processedRows.Upsert(txCtx, tx, imp.ID, row.ID, record); err != nil {
		return nil, err
	}

	return s.engine.Distribute(txCtx, tx, record, opts)
}

// appendRowError records a row failure, capping the returned error list.
// FailedRecords stays authoritative when the cap is hit.
func appendRowError(result *models.ImportResult, rowIndex int, msg string, max int) {
	if len(result.Errors) < max {
		result.Errors = append(result.Errors, models.RowError{RowIndex: rowIndex, Message: msg})
		return
	}
	result.ErrorsTruncated = true
}

func (s *Service) emitFailed(ctx context.Context, imp *models.Import, reason string) {
	if err := s.emitter.EmitImportFailed(ctx, imp, reason); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Failed to emit import.failed event")
	}
}
