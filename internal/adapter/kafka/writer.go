package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/config"
	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces forecast hours to a Kafka topic.
// It implements simulation.ForecastLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured forecast topic.
// Messages are keyed by region id so each region's hours stay ordered within
// one partition.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaForecastTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes forecast hours in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, hours []domain.PublishedHour) error {
	if len(hours) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(hours))
	for i := range hours {
		msg, err := serializeToMessage(hours[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write forecast hours: %w", err)
	}
	w.logger.Debug("forecast hours published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PublishedHour into a Kafka message.
func serializeToMessage(hour domain.PublishedHour) (kafkago.Message, error) {
	data, err := json.Marshal(hour)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forecast hour: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(hour.RegionID),
		Value: data,
		Time:  hour.PublishedAt,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(hour.Kind)},
			{Key: "condition", Value: []byte(hour.Condition)},
			{Key: "forecast_hour", Value: []byte(hour.Date.Format(time.RFC3339))},
		},
	}, nil
}
