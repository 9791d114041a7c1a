package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

func newProduct(t *testing.T, sku string) kernel.Product {
	t.Helper()
	p, err := kernel.NewProduct(kernel.NewUUID(), "Product "+sku, sku)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, quantities map[kernel.Product]int) *order.Order {
	t.Helper()
	var lines []order.OrderLine
	for p, qty := range quantities {
		l, err := order.NewOrderLine(p, qty, 100)
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), lines, now)
	require.NoError(t, err)
	return o
}

func newUnit(t *testing.T, p kernel.Product, location, zone string, quantity, reserved int) *inventory.StorageUnit {
	t.Helper()
	u, err := inventory.RestoreStorageUnit(kernel.NewUUID(), p, location, zone, quantity, reserved, now)
	require.NoError(t, err)
	return u
}

func TestAllocationPlanner_Plan(t *testing.T) {
	planner := services.NewAllocationPlanner()

	t.Run("single unit covers the line", func(t *testing.T) {
		p := newProduct(t, "P")
		unit := newUnit(t, p, "A", "Z1", 5, 0)
		o := newOrder(t, map[kernel.Product]int{p: 3})

		plan, err := planner.Plan(o, []*inventory.StorageUnit{unit}, "")

		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.True(t, unit.ID().IsEqual(plan[0].StorageUnitID))
		assert.Equal(t, 3, plan[0].Quantity)
		assert.Equal(t, "A", plan[0].LocationCode)
		assert.Equal(t, "P-A", plan[0].Barcode)
	})

	t.Run("largest bins are consumed first", func(t *testing.T) {
		p := newProduct(t, "P")
		small := newUnit(t, p, "S", "Z1", 3, 0)
		large := newUnit(t, p, "L", "Z1", 10, 2)
		medium := newUnit(t, p, "M", "Z1", 6, 0)
		o := newOrder(t, map[kernel.Product]int{p: 12})

		plan, err := planner.Plan(o, []*inventory.StorageUnit{small, large, medium}, "")

		require.NoError(t, err)
		require.Len(t, plan, 2)
		assert.Equal(t, "L", plan[0].LocationCode)
		assert.Equal(t, 8, plan[0].Quantity)
		assert.Equal(t, "M", plan[1].LocationCode)
		assert.Equal(t, 4, plan[1].Quantity)
	})

	t.Run("ties break by location code", func(t *testing.T) {
		p := newProduct(t, "P")
		b := newUnit(t, p, "B-02", "Z1", 4, 0)
		a := newUnit(t, p, "A-07", "Z1", 4, 0)
		o := newOrder(t, map[kernel.Product]int{p: 2})

		for range 5 {
			plan, err := planner.Plan(o, []*inventory.StorageUnit{b, a}, "")

			require.NoError(t, err)
			require.Len(t, plan, 1)
			assert.Equal(t, "A-07", plan[0].LocationCode)
		}
	})

	t.Run("units without available stock are skipped", func(t *testing.T) {
		p := newProduct(t, "P")
		full := newUnit(t, p, "A", "Z1", 5, 5)
		free := newUnit(t, p, "B", "Z1", 2, 0)
		o := newOrder(t, map[kernel.Product]int{p: 2})

		plan, err := planner.Plan(o, []*inventory.StorageUnit{full, free}, "")

		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.Equal(t, "B", plan[0].LocationCode)
	})

	t.Run("zone restricts candidates", func(t *testing.T) {
		p := newProduct(t, "P")
		other := newUnit(t, p, "A", "Z2", 10, 0)
		inZone := newUnit(t, p, "B", "Z1", 3, 0)
		o := newOrder(t, map[kernel.Product]int{p: 3})

		plan, err := planner.Plan(o, []*inventory.StorageUnit{other, inZone}, "Z1")

		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.True(t, inZone.ID().IsEqual(plan[0].StorageUnitID))

		_, err = planner.Plan(newOrder(t, map[kernel.Product]int{p: 4}), []*inventory.StorageUnit{other, inZone}, "Z1")
		assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	})

	t.Run("any unsatisfied line fails the whole plan", func(t *testing.T) {
		p, q := newProduct(t, "P"), newProduct(t, "Q")
		pUnit := newUnit(t, p, "A", "Z1", 10, 0)
		qUnit := newUnit(t, q, "B", "Z1", 4, 0)
		o := newOrder(t, map[kernel.Product]int{p: 1, q: 10})

		plan, err := planner.Plan(o, []*inventory.StorageUnit{pUnit, qUnit}, "")

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Nil(t, plan)
		var stockErr *errs.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, q.ID().String(), stockErr.ProductID)
		assert.Equal(t, 10, stockErr.Requested)
		assert.Equal(t, 4, stockErr.Available)
	})

	t.Run("planning never mutates the ledger", func(t *testing.T) {
		p := newProduct(t, "P")
		unit := newUnit(t, p, "A", "Z1", 5, 1)
		o := newOrder(t, map[kernel.Product]int{p: 4})

		_, err := planner.Plan(o, []*inventory.StorageUnit{unit}, "")

		require.NoError(t, err)
		assert.Equal(t, 5, unit.Quantity())
		assert.Equal(t, 1, unit.Reserved())
	})

	t.Run("allocation converts into a picking item", func(t *testing.T) {
		p := newProduct(t, "P")
		unit := newUnit(t, p, "A", "Z1", 5, 0)
		plan, err := planner.Plan(newOrder(t, map[kernel.Product]int{p: 2}), []*inventory.StorageUnit{unit}, "")
		require.NoError(t, err)

		item, err := plan[0].Item()

		require.NoError(t, err)
		assert.Equal(t, 2, item.QuantityRequired())
		assert.Equal(t, "P-A", item.Barcode())
		assert.False(t, item.IsPicked())
	})

	t.Run("rejects an order not built by its constructor", func(t *testing.T) {
		_, err := planner.Plan(&order.Order{}, nil, "")

		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
