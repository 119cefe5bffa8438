// Package events handles event emission for import lifecycle changes
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Emitter handles event emission for Fern
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter. A nil producer disables emission,
// which lets the import pipeline run without a broker.
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitImportCompleted emits an import.completed event with row counts and
// the distribution summary
func (e *Emitter) EmitImportCompleted(ctx context.Context, imp *models.Import, result *models.ImportResult) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitImportCompleted")
	defer span.End()

	if e.producer == nil {
		return nil
	}

	payload := map[string]any{
		"schema_version": SchemaVersion,
		"total_records":  result.TotalRecords,
		"processed":      result.ProcessedRecords,
		"failed":         result.FailedRecords,
		"skipped":        result.SkippedRecords,
		"summary":        result.Summary,
	}
	if len(result.Errors) > 0 {
		payload["errors"] = result.Errors
		payload["errors_truncated"] = result.ErrorsTruncated
	}

	dataJSON, _ := json.Marshal(payload)

	event := &kafka.ImportEvent{
		EventType:  "import.completed",
		ImportID:   imp.ID,
		FileName:   imp.FileName,
		Status:     result.Status,
		UploadedBy: uploadedBy(imp),
		Data:       dataJSON,
	}

	if err := e.producer.PublishImportEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit import.completed event")
		return err
	}

	return nil
}

// EmitImportFailed emits an import.failed event for an import whose batch
// transaction did not commit
func (e *Emitter) EmitImportFailed(ctx context.Context, imp *models.Import, reason string) error {
	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitImportFailed")
	defer span.End()

	if e.producer == nil {
		return nil
	}

	dataJSON, _ := json.Marshal(map[string]any{
		"schema_version": SchemaVersion,
		"reason":         reason,
	})

	event := &kafka.ImportEvent{
		EventType:  "import.failed",
		ImportID:   imp.ID,
		FileName:   imp.FileName,
		Status:     models.ImportStatusFailed,
		UploadedBy: uploadedBy(imp),
		Data:       dataJSON,
	}

	if err := e.producer.PublishImportEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Error("Failed to emit import.failed event")
		return err
	}

	return nil
}

func uploadedBy(imp *models.Import) string {
	if imp.UploadedBy == nil {
		return ""
	}
	return *imp.UploadedBy
}
