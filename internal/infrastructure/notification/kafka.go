package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prexcol/backend/internal/domain/shared"
	"github.com/prexcol/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaEventPublisher publishes domain events to a Kafka topic. Publishing is
// best-effort: failures are logged and never propagate into the workflow that
// produced the event.
type KafkaEventPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaEventPublisher creates a publisher writing to the configured topic
func NewKafkaEventPublisher(cfg config.NotifierConfig, logger *zap.Logger) *KafkaEventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
	return &KafkaEventPublisher{
		writer: writer,
		logger: logger.Named("notifier"),
	}
}

// envelope is the wire format for published events
type envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       any       `json:"payload"`
}

// Publish writes the events to the topic, keyed by aggregate ID so events of
// one aggregate stay ordered within a partition.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		body, err := json.Marshal(envelope{
			EventID:       event.EventID().String(),
			EventType:     event.EventType(),
			AggregateID:   event.AggregateID().String(),
			AggregateType: event.AggregateType(),
			OccurredAt:    event.OccurredAt(),
			Payload:       event,
		})
		if err != nil {
			p.logger.Error("Failed to encode event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.AggregateID().String()),
			Value: body,
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		p.logger.Error("Failed to publish events",
			zap.Int("count", len(messages)),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Published events", zap.Int("count", len(messages)))
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

var _ shared.EventPublisher = (*KafkaEventPublisher)(nil)
