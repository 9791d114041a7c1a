// Package orderrepo persists order aggregates with their lines.
// Product name, SKU and unit price are stored on each line as captured at
// order creation; the catalog is never consulted again.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders table. Lines are owned rows removed with the order.
type OrderDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status             int            `gorm:"type:smallint;not null;index"`
	CancellationReason string         `gorm:"type:text;not null;default:''"`
	CreatedAt          time.Time      `gorm:"not null;index"`
	PickingStartedAt   *time.Time
	PickingCompletedAt *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Lines              []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one line of an order; an order has at most one line per product.
type OrderLineDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"type:int;not null"`
	ProductName     string    `gorm:"type:varchar(255);not null"`
	SKU             string    `gorm:"column:sku;type:varchar(64);not null"`
	QuantityOrdered int       `gorm:"type:int;not null;check:chk_order_lines_ordered,quantity_ordered > 0"`
	QuantityPicked  int       `gorm:"type:int;not null;default:0"`
	UnitPrice       int64     `gorm:"type:bigint;not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	timeline := aggregate.Timeline()

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:         orderID,
			ProductID:       l.Product().ID().Bytes(),
			Position:        i,
			ProductName:     l.Product().Name(),
			SKU:             l.Product().SKU(),
			QuantityOrdered: l.QuantityOrdered(),
			QuantityPicked:  l.QuantityPicked(),
			UnitPrice:       int64(l.UnitPrice()),
		})
	}

	return OrderDTO{
		ID:                 orderID,
		CustomerID:         aggregate.CustomerID().Bytes(),
		Status:             int(aggregate.Status()),
		CancellationReason: aggregate.CancellationReason(),
		CreatedAt:          timeline.CreatedAt,
		PickingStartedAt:   timeline.PickingStartedAt,
		PickingCompletedAt: timeline.PickingCompletedAt,
		CompletedAt:        timeline.CompletedAt,
		CancelledAt:        timeline.CancelledAt,
		Lines:              lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.OrderLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	timeline := order.Timeline{
		CreatedAt:          dto.CreatedAt,
		PickingStartedAt:   dto.PickingStartedAt,
		PickingCompletedAt: dto.PickingCompletedAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
	}

	return order.RestoreOrder(id, customerID, order.Status(dto.Status), lines, timeline, dto.CancellationReason)
}

func lineToDomain(dto OrderLineDTO) (order.OrderLine, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.OrderLine{}, err
	}

	product, err := kernel.NewProduct(productID, dto.ProductName, dto.SKU)
	if err != nil {
		return order.OrderLine{}, err
	}

	return order.RestoreOrderLine(product, dto.QuantityOrdered, dto.QuantityPicked, kernel.Money(dto.UnitPrice))
}
