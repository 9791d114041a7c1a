package events

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
)

// LogPublisher writes every event as one structured log record. It is the
// default sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		env := NewEnvelope(e)
		p.logger.InfoContext(ctx, "domain event",
			"event_id", env.EventID,
			"event_type", env.EventType,
			"aggregate_id", env.AggregateID,
			"occurred_at", env.OccurredAt,
			"attributes", env.Attributes,
		)
	}
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
