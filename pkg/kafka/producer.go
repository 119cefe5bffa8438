// Package kafka publishes import lifecycle events.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Producer handles Kafka event emission
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	requiredAcks := kafka.RequiredAcks(cfg.RequiredAcks)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           requiredAcks,
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// ImportEvent represents a lifecycle event for a spreadsheet import
type ImportEvent struct {
	EventType  string          `json:"event_type"` // import.completed, import.failed
	ImportID   string          `json:"import_id"`
	FileName   string          `json:"file_name"`
	Status     string          `json:"status"`
	UploadedBy string          `json:"uploaded_by,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// PublishImportEvent publishes an import lifecycle event to Kafka
func (p *Producer) PublishImportEvent(ctx context.Context, event *ImportEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishImportEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.ImportID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "status", Value: []byte(event.Status)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish import event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type": event.EventType,
		"import_id":  event.ImportID,
		"status":     event.Status,
	}).Debug("Published import event")

	return nil
}
