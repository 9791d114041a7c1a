package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
)

// PickingTaskRepository defines the persistence contract for picking tasks.
type PickingTaskRepository interface {
	Add(ctx context.Context, aggregate *picking.Task) error
	Update(ctx context.Context, aggregate *picking.Task) error

	// Get returns the task with its items, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*picking.Task, error)

	// GetForUpdate is Get with the task row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*picking.Task, error)

	// GetActiveByOrderID returns the Created or InProgress task of an order.
	// At most one exists; an ObjectNotFoundError is returned when there is none.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*picking.Task, error)

	// GetActiveByOrderIDForUpdate is GetActiveByOrderID with the task row locked.
	GetActiveByOrderIDForUpdate(ctx context.Context, orderID kernel.UUID) (*picking.Task, error)

	// GetAllByOrderID returns every task ever created for an order, oldest first.
	GetAllByOrderID(ctx context.Context, orderID kernel.UUID) ([]*picking.Task, error)
}
