// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, the event sink and the product
// catalog.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, timestamps and picked quantities of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its lines, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction ends.
	// Every command that changes an order's status loads it this way first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByStatus returns orders in status, oldest first.
	GetAllByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
