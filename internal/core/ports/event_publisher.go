package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to the downstream sink. Delivery is fire
// and forget from the core's point of view: a failed publish is never allowed to
// undo a committed state change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
