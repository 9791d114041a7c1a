// Package inventoryrepo persists the inventory ledger: one row per storage unit.
//
// The table enforces the ledger invariant 0 <= reserved <= quantity with a CHECK
// constraint, so no write path can leave a unit over-reserved even if a caller
// skips the domain checks.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const (
	reservedConstraint = "chk_storage_units_reserved"
	quantityConstraint = "chk_storage_units_quantity"
)

// StorageUnitDTO is the storage_units table.
type StorageUnitDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_storage_units_product_location,priority:1"`
	ProductName     string    `gorm:"type:varchar(255);not null"`
	SKU             string    `gorm:"column:sku;type:varchar(64);not null"`
	LocationCode    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_storage_units_product_location,priority:2"`
	Zone            string    `gorm:"type:varchar(64);not null;index"`
	Quantity        int       `gorm:"type:int;not null;check:chk_storage_units_quantity,quantity >= 0"`
	Reserved        int       `gorm:"type:int;not null;default:0;check:chk_storage_units_reserved,reserved >= 0 AND reserved <= quantity"`
	LastRestockedAt time.Time `gorm:"not null"`
}

func (StorageUnitDTO) TableName() string {
	return "storage_units"
}

func fromDomain(unit *inventory.StorageUnit) StorageUnitDTO {
	return StorageUnitDTO{
		ID:              unit.ID().Bytes(),
		ProductID:       unit.Product().ID().Bytes(),
		ProductName:     unit.Product().Name(),
		SKU:             unit.Product().SKU(),
		LocationCode:    unit.LocationCode(),
		Zone:            unit.Zone(),
		Quantity:        unit.Quantity(),
		Reserved:        unit.Reserved(),
		LastRestockedAt: unit.LastRestockedAt(),
	}
}

func toDomain(dto StorageUnitDTO) (*inventory.StorageUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	product, err := kernel.NewProduct(productID, dto.ProductName, dto.SKU)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreStorageUnit(
		id, product, dto.LocationCode, dto.Zone, dto.Quantity, dto.Reserved, dto.LastRestockedAt)
}
