package commands

import (
	"context"

	"fulfillment/internal/pkg/clock"
)

// RestockStorageUnitCommandHandler locks a unit, adds stock and stamps the
// restock time. Existing reservations and planned picks are unaffected.
type RestockStorageUnitCommandHandler struct {
	uowFactory InventoryUoWFactory
	clock      clock.Clock
}

func NewRestockStorageUnitCommandHandler(uowFactory InventoryUoWFactory, clk clock.Clock) RestockStorageUnitCommandHandler {
	return RestockStorageUnitCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h RestockStorageUnitCommandHandler) Handle(ctx context.Context, cmd RestockStorageUnitCommand) error {
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

	unitRepo := uow.StorageUnitRepository()

	unit, err := unitRepo.GetForUpdate(ctx, cmd.UnitID())
	if err != nil {
		return err
	}

	if err = unit.Restock(cmd.Quantity(), h.clock.Now()); err != nil {
		return err
	}

	if err = unitRepo.Update(ctx, unit); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
