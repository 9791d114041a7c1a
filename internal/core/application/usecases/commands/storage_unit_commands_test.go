package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStorageUnitCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := newMemoryStore(t)
	p := product(t, "P")
	catalog := new(MockProductCatalog)
	catalog.On("GetProduct", ctx, p.ID()).Return(ports.CatalogEntry{Product: p, UnitPrice: 100}, nil)
	handler := commands.NewAddStorageUnitCommandHandler(memoryInventoryUoWFactory{store}, catalog, clk)
	unitID := kernel.NewUUID()
	cmd, err := commands.NewAddStorageUnitCommand(unitID, p.ID(), " A-01 ", "A", 12)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	unit := store.unit(unitID)
	assert.Equal(t, "A-01", unit.LocationCode())
	assert.Equal(t, 12, unit.Available())
	assert.Equal(t, "Product P", unit.Product().Name())
	assert.Equal(t, fixedNow, unit.LastRestockedAt())

	duplicate, err := commands.NewAddStorageUnitCommand(kernel.NewUUID(), p.ID(), "A-01", "A", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, handler.Handle(ctx, duplicate), errs.ErrValueIsInvalid)
}

func TestNewAddStorageUnitCommand(t *testing.T) {
	_, err := commands.NewAddStorageUnitCommand(kernel.NewUUID(), kernel.NewUUID(), "", " ", -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestockStorageUnitCommandHandler_Handle(t *testing.T) {
	store := newMemoryStore(t)
	unit := storageUnit(t, product(t, "P"), "A", 2, 2)
	store.seedUnit(unit)
	later := fixedNow.Add(48 * time.Hour)
	handler := commands.NewRestockStorageUnitCommandHandler(memoryInventoryUoWFactory{store}, clock.NewFixed(later))
	cmd, err := commands.NewRestockStorageUnitCommand(unit.ID(), 8)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(t.Context(), cmd))

	stored := store.unit(unit.ID())
	assert.Equal(t, 10, stored.Quantity())
	assert.Equal(t, 2, stored.Reserved())
	assert.Equal(t, later, stored.LastRestockedAt())

	_, err = commands.NewRestockStorageUnitCommand(unit.ID(), 0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	missing, err := commands.NewRestockStorageUnitCommand(kernel.NewUUID(), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, handler.Handle(t.Context(), missing), errs.ErrObjectNotFound)
}
