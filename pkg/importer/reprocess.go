package importer

import (
	"context"

	"github.com/Ramsey-B/fern/internal/repositories/processedrow"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/distribution"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// reprocessPageSize bounds how many processed rows are loaded per batch
const reprocessPageSize = 200

// ReprocessResult reports the outcome of replaying stored rows
type ReprocessResult struct {
	RowsReplayed int                  `json:"rows_replayed"`
	RowsFailed   int                  `json:"rows_failed"`
	Summary      models.ImportSummary `json:"summary"`
}

// Reprocess replays distribution for every stored processed row. It exists
// for schema evolution: after the distribution rules change, the operational
// tables can be rebuilt from the structured records without re-uploading the
// source workbooks. Each row commits independently so a failure only loses
// that row's replay.
func (s *Service) Reprocess(ctx context.Context) (*ReprocessResult, error) {
	ctx, span := tracing.StartSpan(ctx, "importer.Service.Reprocess")
	defer span.End()

	result := &ReprocessResult{}
	var after *processedrow.ListCursor

	for {
		rows, err := s.processedRows.ListAll(ctx, after, reprocessPageSize)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}

		for i := range rows {
			summary, err := s.replayRow(ctx, &rows[i])
			if err != nil {
				result.RowsFailed++
				s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
					"processed_row_id": rows[i].ID,
				}).Warn("Replay failed for processed row")
				continue
			}
			result.RowsReplayed++
			if summary != nil {
				result.Summary.Add(*summary)
			}
		}

		last := rows[len(rows)-1]
		after = &processedrow.ListCursor{CreatedAt: last.CreatedAt, ID: last.ID}
		if len(rows) < reprocessPageSize {
			break
		}
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"rows_replayed": result.RowsReplayed,
		"rows_failed":   result.RowsFailed,
	}).Info("Reprocess finished")

	return result, nil
}

func (s *Service) replayRow(ctx context.Context, row *models.ProcessedRow) (*models.ImportSummary, error) {
	txCtx, tx, err := database.GetTx(ctx, s.logger, s.db, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Stored records already carry any STO-resolved contract number, so the
	// replay distributes them as plain rows
	record := row.Record.Data
	summary, err := s.engine.Distribute(txCtx, tx, &record, distribution.Options{})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
