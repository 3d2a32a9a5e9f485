// Package kafka exports saved pressure readings to a Kafka topic for
// downstream consumers (dashboards, archival). The CSV register stays the
// system of record; this adapter is feature-flagged and best-effort.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/jacket-load-service/internal/config"
	"github.com/couchcryptid/jacket-load-service/internal/domain"
)

// Publisher produces reading messages to the configured readings topic.
// It implements register.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured readings topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.ReadingsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one reading and writes it to the readings topic.
func (p *Publisher) Publish(ctx context.Context, reading domain.Reading) error {
	msg, err := serializeToMessage(reading)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Reading into a Kafka message keyed by jacket
// ID, so all readings for one jacket land on the same partition in order.
func serializeToMessage(reading domain.Reading) (kafkago.Message, error) {
	data, err := json.Marshal(reading)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(reading.JacketID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "case", Value: []byte(reading.Case)},
			{Key: "recorded_at", Value: []byte(reading.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
