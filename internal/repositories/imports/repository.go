package imports

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var importColumns = []string{
	"id", "file_name", "sheet_name", "status",
	"total_records", "processed_records", "failed_records", "skipped_records",
	"uploaded_by", "started_at", "completed_at", "created_at", "updated_at",
}

var importRowColumns = []string{
	"id", "import_id", "row_index", "status", "error_message", "raw_cells",
	"created_at", "updated_at",
}

// Repository handles import batch and raw-row persistence
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new import repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new import in processing state inside the caller's
// transaction. The final commit is the durability point for the whole run.
func (r *Repository) Create(ctx context.Context, tx database.Tx, req models.CreateImportRequest) (*models.Import, error) {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.Create")
	defer span.End()

	now := time.Now().UTC()
	imp := models.Import{
		ID:           uuid.New().String(),
		FileName:     req.FileName,
		SheetName:    req.SheetName,
		Status:       models.ImportStatusProcessing,
		TotalRecords: req.TotalRecords,
		UploadedBy:   req.UploadedBy,
		StartedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO imports (
			id, file_name, sheet_name, status, total_records,
			processed_records, failed_records, skipped_records,
			uploaded_by, started_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, 0, 0, 0, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, query,
		imp.ID, imp.FileName, imp.SheetName, imp.Status, imp.TotalRecords,
		imp.UploadedBy, imp.StartedAt, imp.CreatedAt, imp.UpdatedAt,
	); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"file_name": req.FileName}).Error("Failed to create import")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create import")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"import_id": imp.ID, "file_name": imp.FileName}).Info("Created import")
	return &imp, nil
}

// Complete finalizes an import's status and counters
func (r *Repository) Complete(ctx context.Context, tx database.Tx, importID, status string, processed, failed, skipped int) error {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.Complete")
	defer span.End()

	now := time.Now().UTC()
	query := `
		UPDATE imports
		SET status = $2, processed_records = $3, failed_records = $4,
		    skipped_records = $5, completed_at = $6, updated_at = $6
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, importID, status, processed, failed, skipped, now); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": importID}).Error("Failed to complete import")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to complete import")
	}
	return nil
}

// ArchiveRow snapshots one raw source row in pending state
func (r *Repository) ArchiveRow(ctx context.Context, tx database.Tx, importID string, rowIndex int, cells []string) (*models.ImportRow, error) {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.ArchiveRow")
	defer span.End()

	now := time.Now().UTC()
	row := models.ImportRow{
		ID:        uuid.New().String(),
		ImportID:  importID,
		RowIndex:  rowIndex,
		Status:    models.ImportRowStatusPending,
		RawCells:  database.JSONB[[]string]{Data: cells},
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO import_rows (id, import_id, row_index, status, raw_cells, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, query,
		row.ID, row.ImportID, row.RowIndex, row.Status, row.RawCells, row.CreatedAt, row.UpdatedAt,
	); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": importID, "row_index": rowIndex}).Error("Failed to archive import row")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to archive import row")
	}
	return &row, nil
}

// MarkRow records a row's terminal status; errorMessage is only stored for
// failed rows.
func (r *Repository) MarkRow(ctx context.Context, tx database.Tx, rowID, status string, errorMessage *string) error {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.MarkRow")
	defer span.End()

	query := `
		UPDATE import_rows
		SET status = $2, error_message = $3, updated_at = $4
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, rowID, status, errorMessage, time.Now().UTC()); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_row_id": rowID, "status": status}).Error("Failed to mark import row")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to mark import row")
	}
	return nil
}

// Get retrieves an import by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.Import, error) {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(importColumns...)
	sb.From("imports")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var imp models.Import
	if err := r.db.GetContext(ctx, &imp, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPErrorf(http.StatusNotFound, "import %s not found", id)
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": id}).Error("Failed to get import")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get import")
	}
	return &imp, nil
}

// List retrieves imports newest first with pagination
func (r *Repository) List(ctx context.Context, page, pageSize int) (*models.ImportListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("imports")

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count imports")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count imports")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(importColumns...)
	sb.From("imports")
	sb.OrderBy("created_at DESC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var items []models.Import
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"page": page, "page_size": pageSize}).Error("Failed to list imports")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list imports")
	}

	return &models.ImportListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// ListRows retrieves the archived rows of an import, optionally filtered by
// status, in source order.
func (r *Repository) ListRows(ctx context.Context, importID string, status *string, page, pageSize int) (*models.ImportRowListResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "imports.Repository.ListRows")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	countSb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countSb.Select("COUNT(*)")
	countSb.From("import_rows")
	countWhere := []string{countSb.Equal("import_id", importID)}
	if status != nil {
		countWhere = append(countWhere, countSb.Equal("status", *status))
	}
	countSb.Where(countWhere...)

	countQuery, countArgs := countSb.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": importID}).Error("Failed to count import rows")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to count import rows")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(importRowColumns...)
	sb.From("import_rows")
	where := []string{sb.Equal("import_id", importID)}
	if status != nil {
		where = append(where, sb.Equal("status", *status))
	}
	sb.Where(where...)
	sb.OrderBy("row_index ASC")
	sb.Limit(pageSize).Offset(offset)

	query, args := sb.Build()
	var items []models.ImportRow
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"import_id": importID, "status": status}).Error("Failed to list import rows")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list import rows")
	}

	return &models.ImportRowListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
