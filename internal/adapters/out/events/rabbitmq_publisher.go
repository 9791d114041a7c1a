package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQPublisher sends persistent messages to a topic exchange with the
// event type as routing key, so consumers bind to patterns like "order.*".
type RabbitMQPublisher struct {
	channel  amqpChannel
	exchange string
	logger   *slog.Logger
	closers  []func() error
}

// DialRabbitMQ connects, opens a channel and declares a durable topic exchange.
func DialRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := NewRabbitMQPublisher(ch, exchange, logger)
	p.closers = []func() error{ch.Close, conn.Close}
	return p, nil
}

func NewRabbitMQPublisher(channel amqpChannel, exchange string, logger *slog.Logger) *RabbitMQPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RabbitMQPublisher{
		channel:  channel,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher", "exchange", exchange),
	}
}

// Publish sends every event; a failed event does not stop the rest.
func (p *RabbitMQPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var publishErrs error
	for _, e := range events {
		body, err := marshal(e)
		if err != nil {
			publishErrs = errors.Join(publishErrs, err)
			continue
		}

		err = p.channel.PublishWithContext(ctx, p.exchange, e.Name(), false, false, amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  contentType,
			MessageId:    e.ID().String(),
			Timestamp:    e.OccurredAt().UTC(),
			Type:         e.Name(),
			Headers: amqp.Table{
				"aggregate_id": e.AggregateID().String(),
			},
			Body: body,
		})
		if err != nil {
			publishErrs = errors.Join(publishErrs, fmt.Errorf("publish %s: %w", e.Name(), err))
		}
	}
	return publishErrs
}

func (p *RabbitMQPublisher) Close() error {
	var err error
	for _, c := range p.closers {
		err = errors.Join(err, c())
	}
	return err
}
