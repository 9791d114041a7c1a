package postgres

import (
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pickingrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, index and check constraint the
// repositories rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{},
		&pickingrepo.PickingTaskDTO{}, &pickingrepo.PickingItemDTO{},
		&inventoryrepo.StorageUnitDTO{},
	)
}
