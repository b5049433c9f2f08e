// Package kafka publishes aggregated nutrient-load rows to the sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fjordlab/vannrapport/internal/config"
	"github.com/fjordlab/vannrapport/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces aggregated report rows to a Kafka topic.
// It implements pipeline.RowPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishRows serializes and publishes every row of an aggregated table in a
// single WriteMessages call.
func (w *Writer) PublishRows(ctx context.Context, table domain.AggregatedTable) error {
	if len(table.Rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(table.Rows))
	for i, row := range table.Rows {
		msg, err := serializeToMessage(table, row)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one aggregated row into a Kafka message. The
// key is "<regine>|<year>" so rows for the same catchment and year land on
// the same partition and compact cleanly.
func serializeToMessage(table domain.AggregatedTable, row domain.AggregatedRow) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize aggregated row: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%s|%d", row.Regine, row.Year)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "pollutant", Value: []byte(table.Pollutant)},
			{Key: "model_version", Value: []byte(table.Version)},
			{Key: "exported_at", Value: []byte(domain.Now().Format(time.RFC3339))},
		},
	}, nil
}
