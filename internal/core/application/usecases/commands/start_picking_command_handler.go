package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// StartPickingCommandHandler plans and reserves stock for an order and creates
// its picking task in one transaction.
//
// Flow:
//   - the order row is locked; it must be Received and have no active picking task
//   - candidate storage units are locked for the rest of the transaction
//   - the allocation planner builds the plan from that locked snapshot
//   - every allocation is reserved with a conditional ledger write
//   - task and order are persisted and the transaction commits
//
// Any failure leaves no reservation, task or status change behind. A concurrent
// order that took the same stock first surfaces as InsufficientStock; the
// handler never retries. A concurrent command on the same order waits for the
// order lock and then sees the committed state.
type StartPickingCommandHandler struct {
	uowFactory UoWFactory
	planner    services.AllocationPlanner
	clock      clock.Clock
}

func NewStartPickingCommandHandler(
	uowFactory UoWFactory,
	planner services.AllocationPlanner,
	clk clock.Clock,
) StartPickingCommandHandler {
	return StartPickingCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		clock:      clk,
	}
}

// Handle returns the created picking task.
func (h StartPickingCommandHandler) Handle(ctx context.Context, cmd StartPickingCommand) (*picking.Task, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	taskRepo := uow.PickingTaskRepository()
	unitRepo := uow.StorageUnitRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !o.Status().CanTransitionTo(order.Picking) {
		return nil, errs.NewInvalidTransitionError("order", o.Status(), order.Picking)
	}

	if err = ensureNoActiveTask(ctx, taskRepo, o.ID()); err != nil {
		return nil, err
	}

	units, err := unitRepo.GetAvailableForUpdate(ctx, productIDs(o))
	if err != nil {
		return nil, err
	}

	plan, err := h.planner.Plan(o, units, cmd.Zone())
	if err != nil {
		return nil, err
	}

	items, err := reserve(ctx, unitRepo, units, plan)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	task, err := picking.NewTask(kernel.NewUUID(), o.ID(), cmd.Zone(), items, now)
	if err != nil {
		return nil, err
	}

	if pickerID := cmd.PickerID(); pickerID != nil {
		if err = task.Start(*pickerID, now); err != nil {
			return nil, err
		}
	}

	if err = o.StartPicking(now); err != nil {
		return nil, err
	}

	if err = taskRepo.Add(ctx, task); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return task, nil
}

func ensureNoActiveTask(ctx context.Context, repo ports.PickingTaskRepository, orderID kernel.UUID) error {
	active, err := repo.GetActiveByOrderID(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: order %s already has active picking task %s",
		errs.ErrInvalidTransition, orderID, active.ID())
}

func productIDs(o *order.Order) []kernel.UUID {
	lines := o.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.Product().ID())
	}
	return ids
}

// reserve applies the plan to the ledger: the domain check runs on the locked
// snapshot and the conditional write re-checks it against the stored row.
func reserve(
	ctx context.Context,
	unitRepo ports.StorageUnitRepository,
	units []*inventory.StorageUnit,
	plan []services.Allocation,
) ([]picking.Item, error) {
	byID := make(map[kernel.UUID]*inventory.StorageUnit, len(units))
	for _, u := range units {
		byID[u.ID()] = u
	}

	items := make([]picking.Item, 0, len(plan))
	for _, a := range plan {
		unit, ok := byID[a.StorageUnitID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("storage unit", a.StorageUnitID)
		}
		if err := unit.Reserve(a.Quantity); err != nil {
			return nil, err
		}
		if err := unitRepo.Reserve(ctx, a.StorageUnitID, a.Quantity); err != nil {
			return nil, err
		}

		item, err := a.Item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
