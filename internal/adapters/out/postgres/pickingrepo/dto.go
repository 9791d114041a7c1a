// Package pickingrepo persists picking tasks with their items.
package pickingrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
)

// PickingTaskDTO is the picking_tasks table. The partial unique index keeps at
// most one Created or InProgress task per order.
type PickingTaskDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_picking_tasks_active_order,where:status < 3"`
	PickerID    *uuid.UUID        `gorm:"type:uuid;index"`
	Status      int               `gorm:"type:smallint;not null;index"`
	Zone        string            `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt   time.Time         `gorm:"not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	Items       []PickingItemDTO `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

func (PickingTaskDTO) TableName() string {
	return "picking_tasks"
}

// PickingItemDTO is one item of a task, keyed by the storage unit it draws from.
type PickingItemDTO struct {
	TaskID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StorageUnitID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position         int       `gorm:"type:int;not null"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName      string    `gorm:"type:varchar(255);not null"`
	SKU              string    `gorm:"column:sku;type:varchar(64);not null"`
	LocationCode     string    `gorm:"type:varchar(64);not null"`
	Barcode          string    `gorm:"type:varchar(160);not null"`
	QuantityRequired int       `gorm:"type:int;not null"`
	QuantityPicked   int       `gorm:"type:int;not null;default:0"`
}

func (PickingItemDTO) TableName() string {
	return "picking_items"
}

func fromDomain(task *picking.Task) PickingTaskDTO {
	taskID := task.ID().Bytes()
	timeline := task.Timeline()

	var pickerID *uuid.UUID
	if id := task.PickerID(); id != nil {
		raw := id.Bytes()
		pickerID = &raw
	}

	items := make([]PickingItemDTO, 0, len(task.Items()))
	for i, item := range task.Items() {
		items = append(items, PickingItemDTO{
			TaskID:           taskID,
			StorageUnitID:    item.StorageUnitID().Bytes(),
			Position:         i,
			ProductID:        item.Product().ID().Bytes(),
			ProductName:      item.Product().Name(),
			SKU:              item.Product().SKU(),
			LocationCode:     item.LocationCode(),
			Barcode:          item.Barcode(),
			QuantityRequired: item.QuantityRequired(),
			QuantityPicked:   item.QuantityPicked(),
		})
	}

	return PickingTaskDTO{
		ID:          taskID,
		OrderID:     task.OrderID().Bytes(),
		PickerID:    pickerID,
		Status:      int(task.Status()),
		Zone:        task.Zone(),
		CreatedAt:   timeline.CreatedAt,
		StartedAt:   timeline.StartedAt,
		CompletedAt: timeline.CompletedAt,
		CancelledAt: timeline.CancelledAt,
		Items:       items,
	}
}

func toDomain(dto PickingTaskDTO) (*picking.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var pickerID *kernel.UUID
	if dto.PickerID != nil {
		pID, pickerErr := kernel.UUIDFromBytes((*dto.PickerID)[:])
		if pickerErr != nil {
			return nil, pickerErr
		}
		pickerID = &pID
	}

	items := make([]picking.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	timeline := picking.Timeline{
		CreatedAt:   dto.CreatedAt,
		StartedAt:   dto.StartedAt,
		CompletedAt: dto.CompletedAt,
		CancelledAt: dto.CancelledAt,
	}

	return picking.RestoreTask(id, orderID, pickerID, picking.Status(dto.Status), dto.Zone, items, timeline)
}

func itemToDomain(dto PickingItemDTO) (picking.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return picking.Item{}, err
	}

	product, err := kernel.NewProduct(productID, dto.ProductName, dto.SKU)
	if err != nil {
		return picking.Item{}, err
	}

	unitID, err := kernel.UUIDFromBytes(dto.StorageUnitID[:])
	if err != nil {
		return picking.Item{}, err
	}

	return picking.RestoreItem(product, unitID, dto.LocationCode, dto.Barcode, dto.QuantityRequired, dto.QuantityPicked)
}
