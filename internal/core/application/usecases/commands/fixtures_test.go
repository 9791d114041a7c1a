package commands_test

import (
	"slices"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"

	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	clk      = clock.NewFixed(fixedNow)
)

func product(t *testing.T, sku string) kernel.Product {
	t.Helper()
	p, err := kernel.NewProduct(kernel.NewUUID(), "Product "+sku, sku)
	require.NoError(t, err)
	return p
}

func receivedOrder(t *testing.T, lines map[kernel.Product]int) *order.Order {
	t.Helper()
	var orderLines []order.OrderLine
	for p, qty := range lines {
		l, err := order.NewOrderLine(p, qty, 500)
		require.NoError(t, err)
		orderLines = append(orderLines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), orderLines, fixedNow)
	require.NoError(t, err)
	return o
}

func storageUnit(t *testing.T, p kernel.Product, location string, quantity, reserved int) *inventory.StorageUnit {
	t.Helper()
	u, err := inventory.RestoreStorageUnit(kernel.NewUUID(), p, location, "A", quantity, reserved, fixedNow)
	require.NoError(t, err)
	return u
}

func uuidPtr(id kernel.UUID) *kernel.UUID {
	return &id
}

// expectedLocks is the lock sequence of a coordinator command: the order row,
// then the task row, then every storage unit in ascending id order.
func expectedLocks(orderID, taskID kernel.UUID, unitIDs ...kernel.UUID) []string {
	sorted := slices.Clone(unitIDs)
	slices.SortFunc(sorted, kernel.UUID.Compare)
	locks := []string{"order:" + orderID.String(), "task:" + taskID.String()}
	for _, id := range sorted {
		locks = append(locks, "unit:"+id.String())
	}
	return locks
}
