package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event to a single topic. The message
// key is the aggregate id, so all events of one order or task land on the same
// partition in commit order.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, logger)
}

func NewKafkaPublisherWithWriter(writer messageWriter, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{writer: writer, logger: logger.With("component", "kafka_publisher")}
}

// Publish writes the events in one batch. Events that cannot be encoded are
// skipped and reported in the returned error.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	var encodeErrs error
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		body, err := marshal(e)
		if err != nil {
			encodeErrs = errors.Join(encodeErrs, err)
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.AggregateID().String()),
			Value: body,
			Time:  e.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(e.Name())},
				{Key: "content_type", Value: []byte(contentType)},
			},
		})
	}

	if len(msgs) > 0 {
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return errors.Join(encodeErrs, err)
		}
		p.logger.DebugContext(ctx, "events written", "count", len(msgs))
	}

	return encodeErrs
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
