package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// CancelPickingCommandHandler cancels an order. When the order has an active
// picking task, every reservation the task holds is released and the task is
// cancelled in the same transaction, so no reservation outlives the task.
//
// Rows are locked order first, then task, then storage units in id order,
// matching StartPicking and CompletePicking.
type CancelPickingCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCancelPickingCommandHandler(uowFactory UoWFactory, clk clock.Clock) CancelPickingCommandHandler {
	return CancelPickingCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h CancelPickingCommandHandler) Handle(ctx context.Context, cmd CancelPickingCommand) error {
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

	if !o.Status().CanTransitionTo(order.Cancelled) {
		return errs.NewInvalidTransitionError("order", o.Status(), order.Cancelled)
	}

	now := h.clock.Now()

	task, err := taskRepo.GetActiveByOrderIDForUpdate(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		task = nil
	case err != nil:
		return err
	}

	if task != nil {
		reservations := task.OutstandingReservations()
		unitIDs := make([]kernel.UUID, 0, len(reservations))
		for _, r := range reservations {
			unitIDs = append(unitIDs, r.StorageUnitID)
		}

		units, lockErr := lockUnits(ctx, unitRepo, unitIDs)
		if lockErr != nil {
			return lockErr
		}

		for _, r := range reservations {
			if err = units[r.StorageUnitID].ReleaseReservation(r.Quantity); err != nil {
				return err
			}
			if err = unitRepo.ReleaseReservation(ctx, r.StorageUnitID, r.Quantity); err != nil {
				return err
			}
		}

		if err = task.Cancel(now); err != nil {
			return err
		}
		if err = taskRepo.Update(ctx, task); err != nil {
			return err
		}
	}

	if err = o.Cancel(cmd.Reason(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
