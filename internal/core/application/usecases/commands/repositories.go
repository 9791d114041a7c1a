// Package commands contains the use cases that modify fulfillment state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, apply domain operations, persist, and commit last.
// A deferred Rollback discards everything on any earlier return.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	// TxManager handles the transaction life cycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PickingTaskRepoFactory interface {
		PickingTaskRepository() ports.PickingTaskRepository
	}

	StorageUnitRepoFactory interface {
		StorageUnitRepository() ports.StorageUnitRepository
	}

	// OrderUoW is used by commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PickingUoW is used by picker-side commands that only touch a picking task.
	PickingUoW interface {
		TxManager
		PickingTaskRepoFactory
	}

	PickingUoWFactory interface {
		Create() PickingUoW
	}

	// InventoryUoW is used by onboarding and restock commands.
	InventoryUoW interface {
		TxManager
		StorageUnitRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// UoW spans orders, picking tasks and the ledger. The fulfillment coordinator
	// use cases run in one of these so order, task and every touched storage unit
	// commit or roll back together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orders := uow.OrderRepository()
	//   units := uow.StorageUnitRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PickingTaskRepoFactory
		StorageUnitRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
