package commands

import (
	"context"
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// CompletePickingCommandHandler closes picking for an order in one transaction.
//
// The reported quantities are spread over the task items in planning order,
// the order records them, and each item's planned quantity is picked from the
// ledger. Picking converts the reservation made when picking started; it never
// reserves again. A ledger mismatch aborts the whole call with InsufficientStock.
//
// The order row is locked first, then the task, then the storage units in id order.
type CompletePickingCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCompletePickingCommandHandler(uowFactory UoWFactory, clk clock.Clock) CompletePickingCommandHandler {
	return CompletePickingCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h CompletePickingCommandHandler) Handle(ctx context.Context, cmd CompletePickingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	taskRepo := uow.PickingTaskRepository()
	unitRepo := uow.StorageUnitRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !o.Status().CanTransitionTo(order.Picked) {
		return errs.NewInvalidTransitionError("order", o.Status(), order.Picked)
	}

	task, err := taskRepo.GetActiveByOrderIDForUpdate(ctx, o.ID())
	if err != nil {
		return err
	}

	picked := cmd.PickedQuantities()
	if err = distributePicked(task, picked); err != nil {
		return err
	}

	now := h.clock.Now()
	if err = o.CompletePicking(picked, now); err != nil {
		return err
	}

	items := task.Items()
	unitIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		unitIDs = append(unitIDs, item.StorageUnitID())
	}

	units, err := lockUnits(ctx, unitRepo, unitIDs)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err = units[item.StorageUnitID()].Pick(item.QuantityRequired()); err != nil {
			return err
		}
		if err = unitRepo.Pick(ctx, item.StorageUnitID(), item.QuantityRequired()); err != nil {
			return err
		}
	}

	if err = task.Complete(now); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// distributePicked records picked quantities item by item; surplus beyond the
// items' requirements is ignored.
func distributePicked(task *picking.Task, picked map[kernel.UUID]int) error {
	remaining := maps.Clone(picked)

	for _, item := range task.Items() {
		productID := item.Product().ID()
		qty := min(remaining[productID], item.QuantityRequired())
		if err := task.UpdateItemPickedStatus(item.StorageUnitID(), qty); err != nil {
			return err
		}
		remaining[productID] -= qty
	}

	return nil
}
