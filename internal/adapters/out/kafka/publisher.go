// Package kafka publishes committed domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/kernel"
)

const eventNameHeader = "event-name"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// envelope is the wire format of a published event.
type envelope struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Payload     any       `json:"payload"`
}

type EventPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewWriter builds the writer used by EventPublisher. Messages of one
// aggregate share a key and therefore a partition.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewEventPublisher(writer messageWriter, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{
		writer: writer,
		logger: logger.With(zap.String("component", "kafka_publisher")),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(ctx, event)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}
	p.logger.Debug("events published", zap.Int("count", len(messages)))
	return nil
}

func toMessage(ctx context.Context, event kernel.DomainEvent) (kafka.Message, error) {
	value, err := json.Marshal(envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     event,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	carrier := headerCarrier{{Key: eventNameHeader, Value: []byte(event.EventName())}}
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	return kafka.Message{
		Key:     []byte(event.AggregateID().String()),
		Value:   value,
		Headers: carrier,
		Time:    event.OccurredAt(),
	}, nil
}

// headerCarrier lets the otel propagator write trace context into message headers.
type headerCarrier []kafka.Header

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

func (c *headerCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c))
	for _, h := range *c {
		keys = append(keys, h.Key)
	}
	return keys
}
