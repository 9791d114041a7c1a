package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
)

type NewOrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type NewOrder struct {
	CustomerID uuid.UUID      `json:"customer_id"`
	Lines      []NewOrderLine `json:"lines"`
}

type StartPicking struct {
	PickerID *uuid.UUID `json:"picker_id,omitempty"`
	Zone     string     `json:"zone"`
}

// CompletePicking carries the total picked quantity per product.
type CompletePicking struct {
	PickedQuantities map[string]int `json:"picked_quantities"`
}

type CancelPicking struct {
	Reason string `json:"reason"`
}

type ClaimPickingTask struct {
	PickerID uuid.UUID `json:"picker_id"`
}

type RecordItemPicked struct {
	Quantity int `json:"quantity"`
}

type NewStorageUnit struct {
	ProductID    uuid.UUID `json:"product_id"`
	LocationCode string    `json:"location_code"`
	Zone         string    `json:"zone"`
	Quantity     int       `json:"quantity"`
}

type Restock struct {
	Quantity int `json:"quantity"`
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type OrderLine struct {
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	SKU             string    `json:"sku"`
	QuantityOrdered int       `json:"quantity_ordered"`
	QuantityPicked  int       `json:"quantity_picked"`
	UnitPrice       int64     `json:"unit_price"`
	Total           int64     `json:"total"`
}

type Order struct {
	ID                 uuid.UUID   `json:"id"`
	CustomerID         uuid.UUID   `json:"customer_id"`
	Status             string      `json:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	PickingStartedAt   *time.Time  `json:"picking_started_at,omitempty"`
	PickingCompletedAt *time.Time  `json:"picking_completed_at,omitempty"`
	CompletedAt        *time.Time  `json:"completed_at,omitempty"`
	CancelledAt        *time.Time  `json:"cancelled_at,omitempty"`
	Lines              []OrderLine `json:"lines"`
	TotalQuantity      int         `json:"total_quantity"`
	TotalAmount        int64       `json:"total_amount"`
}

type OrderSummary struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	Status        string    `json:"status"`
	LineCount     int       `json:"line_count"`
	TotalQuantity int       `json:"total_quantity"`
	TotalAmount   int64     `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type PickingItem struct {
	StorageUnitID    uuid.UUID `json:"storage_unit_id"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	SKU              string    `json:"sku"`
	LocationCode     string    `json:"location_code"`
	Barcode          string    `json:"barcode"`
	QuantityRequired int       `json:"quantity_required"`
	QuantityPicked   int       `json:"quantity_picked"`
	Picked           bool      `json:"picked"`
}

type PickingTask struct {
	ID          uuid.UUID     `json:"id"`
	OrderID     uuid.UUID     `json:"order_id"`
	PickerID    *uuid.UUID    `json:"picker_id,omitempty"`
	Status      string        `json:"status"`
	Zone        string        `json:"zone"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
	Items       []PickingItem `json:"items"`
	Progress    int           `json:"progress"`
}

type LowStockUnit struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	SKU             string    `json:"sku"`
	LocationCode    string    `json:"location_code"`
	Zone            string    `json:"zone"`
	Quantity        int       `json:"quantity"`
	Reserved        int       `json:"reserved"`
	Available       int       `json:"available"`
	LastRestockedAt time.Time `json:"last_restocked_at"`
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := id.Bytes()
	return &v
}

func orderFromView(v queries.GetOrderQueryResponse) Order {
	lines := make([]OrderLine, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = OrderLine{
			ProductID:       l.ProductID.Bytes(),
			ProductName:     l.ProductName,
			SKU:             l.SKU,
			QuantityOrdered: l.QuantityOrdered,
			QuantityPicked:  l.QuantityPicked,
			UnitPrice:       int64(l.UnitPrice),
			Total:           int64(l.Total),
		}
	}

	return Order{
		ID:                 v.ID.Bytes(),
		CustomerID:         v.CustomerID.Bytes(),
		Status:             v.Status,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		PickingStartedAt:   v.PickingStartedAt,
		PickingCompletedAt: v.PickingCompletedAt,
		CompletedAt:        v.CompletedAt,
		CancelledAt:        v.CancelledAt,
		Lines:              lines,
		TotalQuantity:      v.TotalQuantity,
		TotalAmount:        int64(v.TotalAmount),
	}
}

func pickingTaskFromView(v queries.GetPickingTaskQueryResponse) PickingTask {
	items := make([]PickingItem, len(v.Items))
	for i, it := range v.Items {
		items[i] = PickingItem{
			StorageUnitID:    it.StorageUnitID.Bytes(),
			ProductID:        it.ProductID.Bytes(),
			ProductName:      it.ProductName,
			SKU:              it.SKU,
			LocationCode:     it.LocationCode,
			Barcode:          it.Barcode,
			QuantityRequired: it.QuantityRequired,
			QuantityPicked:   it.QuantityPicked,
			Picked:           it.Picked,
		}
	}

	return PickingTask{
		ID:          v.ID.Bytes(),
		OrderID:     v.OrderID.Bytes(),
		PickerID:    optionalID(v.PickerID),
		Status:      v.Status,
		Zone:        v.Zone,
		CreatedAt:   v.CreatedAt,
		StartedAt:   v.StartedAt,
		CompletedAt: v.CompletedAt,
		CancelledAt: v.CancelledAt,
		Items:       items,
		Progress:    v.Progress,
	}
}

// pickingTaskFromDomain renders the task returned by StartPicking.
func pickingTaskFromDomain(t *picking.Task) PickingTask {
	domainItems := t.Items()
	items := make([]PickingItem, len(domainItems))
	for i, it := range domainItems {
		items[i] = PickingItem{
			StorageUnitID:    it.StorageUnitID().Bytes(),
			ProductID:        it.Product().ID().Bytes(),
			ProductName:      it.Product().Name(),
			SKU:              it.Product().SKU(),
			LocationCode:     it.LocationCode(),
			Barcode:          it.Barcode(),
			QuantityRequired: it.QuantityRequired(),
			QuantityPicked:   it.QuantityPicked(),
			Picked:           it.IsPicked(),
		}
	}

	timeline := t.Timeline()
	return PickingTask{
		ID:          t.ID().Bytes(),
		OrderID:     t.OrderID().Bytes(),
		PickerID:    optionalID(t.PickerID()),
		Status:      t.Status().String(),
		Zone:        t.Zone(),
		CreatedAt:   timeline.CreatedAt,
		StartedAt:   timeline.StartedAt,
		CompletedAt: timeline.CompletedAt,
		CancelledAt: timeline.CancelledAt,
		Items:       items,
		Progress:    t.Progress(),
	}
}
