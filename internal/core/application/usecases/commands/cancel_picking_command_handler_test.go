package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelPickingCommandHandler_Handle(t *testing.T) {
	handler := func(store *memoryStore) commands.CancelPickingCommandHandler {
		return commands.NewCancelPickingCommandHandler(memoryUoWFactory{store}, clk)
	}

	t.Run("should cancel order and task and release reservations", func(t *testing.T) {
		store := newMemoryStore(t)
		p, q := product(t, "P"), product(t, "Q")
		o := receivedOrder(t, map[kernel.Product]int{p: 2, q: 4})
		pUnit := storageUnit(t, p, "A", 5, 1)
		qUnit := storageUnit(t, q, "B", 4, 0)
		task := startedPicking(t, store, o, pUnit, qUnit)
		require.Equal(t, 3, store.unit(pUnit.ID()).Reserved())
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "customer request")
		require.NoError(t, err)

		err = handler(store).Handle(t.Context(), cmd)

		require.NoError(t, err)
		stored := store.order(o.ID())
		assert.Equal(t, order.Cancelled, stored.Status())
		assert.Equal(t, "customer request", stored.CancellationReason())
		assert.Equal(t, picking.Cancelled, store.tasks[task.ID()].Status())
		assert.Equal(t, 1, store.unit(pUnit.ID()).Reserved())
		assert.Equal(t, 0, store.unit(qUnit.ID()).Reserved())
		assert.Equal(t, 5, store.unit(pUnit.ID()).Quantity())
		assert.Contains(t, store.eventNames(), order.EventCancelled)
		assert.Contains(t, store.eventNames(), picking.EventCancelled)

		cancelled := store.tasks[task.ID()]
		assert.ErrorIs(t, cancelled.Start(kernel.NewUUID(), fixedNow), errs.ErrInvalidTransition)
		assert.ErrorIs(t, cancelled.Complete(fixedNow), errs.ErrInvalidTransition)
		assert.ErrorIs(t, cancelled.Cancel(fixedNow), errs.ErrInvalidTransition)
		assert.Empty(t, cancelled.OutstandingReservations())
	})

	t.Run("should lock order then task then units in id order", func(t *testing.T) {
		store := newMemoryStore(t)
		p, q := product(t, "P"), product(t, "Q")
		o := receivedOrder(t, map[kernel.Product]int{p: 1, q: 1})
		pUnit := storageUnit(t, p, "A", 1, 0)
		qUnit := storageUnit(t, q, "B", 1, 0)
		task := startedPicking(t, store, o, pUnit, qUnit)
		store.locks = nil
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "customer request")
		require.NoError(t, err)

		require.NoError(t, handler(store).Handle(t.Context(), cmd))

		assert.Equal(t, expectedLocks(o.ID(), task.ID(), pUnit.ID(), qUnit.ID()), store.locks)
	})

	t.Run("should reject a second cancel", func(t *testing.T) {
		store := newMemoryStore(t)
		p := product(t, "P")
		o := receivedOrder(t, map[kernel.Product]int{p: 2})
		unit := storageUnit(t, p, "A", 5, 0)
		startedPicking(t, store, o, unit)
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "customer request")
		require.NoError(t, err)
		require.NoError(t, handler(store).Handle(t.Context(), cmd))

		err = handler(store).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, 0, store.unit(unit.ID()).Reserved())
	})

	t.Run("should cancel a received order without a task", func(t *testing.T) {
		store := newMemoryStore(t)
		o := receivedOrder(t, map[kernel.Product]int{product(t, "P"): 1})
		store.seedOrder(o)
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "duplicate")
		require.NoError(t, err)

		require.NoError(t, handler(store).Handle(t.Context(), cmd))

		assert.Equal(t, order.Cancelled, store.order(o.ID()).Status())
	})

	t.Run("should keep reservations when the order write fails", func(t *testing.T) {
		store := newMemoryStore(t)
		p := product(t, "P")
		o := receivedOrder(t, map[kernel.Product]int{p: 2})
		unit := storageUnit(t, p, "A", 5, 0)
		task := startedPicking(t, store, o, unit)
		store.failOn = "OrderRepository.Update"
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "customer request")
		require.NoError(t, err)

		err = handler(store).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errInjected)
		assert.Equal(t, 2, store.unit(unit.ID()).Reserved())
		assert.Equal(t, picking.InProgress, store.tasks[task.ID()].Status())
		assert.Equal(t, order.Picking, store.order(o.ID()).Status())
	})

	t.Run("should reject cancelling a picked order", func(t *testing.T) {
		store := newMemoryStore(t)
		p := product(t, "P")
		o := receivedOrder(t, map[kernel.Product]int{p: 1})
		startedPicking(t, store, o, storageUnit(t, p, "A", 1, 0))
		complete, err := commands.NewCompletePickingCommand(o.ID(), map[kernel.UUID]int{p.ID(): 1})
		require.NoError(t, err)
		require.NoError(t, commands.NewCompletePickingCommandHandler(memoryUoWFactory{store}, clk).
			Handle(t.Context(), complete))
		cmd, err := commands.NewCancelPickingCommand(o.ID(), "too late")
		require.NoError(t, err)

		err = handler(store).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Picked, store.order(o.ID()).Status())
	})
}

func TestNewCancelPickingCommand(t *testing.T) {
	_, err := commands.NewCancelPickingCommand(kernel.NewUUID(), "   ")

	assert.ErrorIs(t, err, commands.ErrReasonIsRequired)
}
