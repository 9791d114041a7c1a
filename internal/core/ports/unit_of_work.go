package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one use case. Domain events of the
// aggregates written through its repositories are published only after Commit
// succeeds.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice keeps the first transaction.
	Begin(ctx context.Context) error

	// Commit commits the transaction and dispatches tracked domain events.
	Commit(ctx context.Context) error

	// Rollback discards the transaction and every tracked event.
	// It returns an error when no transaction is active.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PickingTaskRepository() PickingTaskRepository
	StorageUnitRepository() StorageUnitRepository
}
