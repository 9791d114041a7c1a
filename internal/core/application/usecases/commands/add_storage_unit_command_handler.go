package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// AddStorageUnitCommandHandler copies the product snapshot from the catalog and
// persists a new storage unit.
type AddStorageUnitCommandHandler struct {
	uowFactory InventoryUoWFactory
	catalog    ports.ProductCatalog
	clock      clock.Clock
}

func NewAddStorageUnitCommandHandler(
	uowFactory InventoryUoWFactory,
	catalog ports.ProductCatalog,
	clk clock.Clock,
) AddStorageUnitCommandHandler {
	return AddStorageUnitCommandHandler{uowFactory: uowFactory, catalog: catalog, clock: clk}
}

func (h AddStorageUnitCommandHandler) Handle(ctx context.Context, cmd AddStorageUnitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry, err := h.catalog.GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	unit, err := inventory.NewStorageUnit(
		cmd.UnitID(), entry.Product, cmd.LocationCode(), cmd.Zone(), cmd.Quantity(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StorageUnitRepository().Add(ctx, unit); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
