package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPickingTaskQueryIsNotConstructed = errors.New(
	"GetPickingTaskQuery must be created via NewGetPickingTaskQuery constructor",
)

// GetPickingTaskQuery retrieves a picking task with its items and progress.
type GetPickingTaskQuery struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPickingTaskQuery(taskID kernel.UUID) (GetPickingTaskQuery, error) {
	if err := taskID.Validate(); err != nil {
		return GetPickingTaskQuery{}, err
	}
	return GetPickingTaskQuery{taskID: taskID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPickingTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetPickingTaskQueryIsNotConstructed)
}

func (q GetPickingTaskQuery) TaskID() kernel.UUID {
	return q.taskID
}

// PickingItemView is one item of the pick list, in walk order.
type PickingItemView struct {
	StorageUnitID    kernel.UUID
	ProductID        kernel.UUID
	ProductName      string
	SKU              string
	LocationCode     string
	Barcode          string
	QuantityRequired int
	QuantityPicked   int
	Picked           bool
}

// GetPickingTaskQueryResponse is the task read model. Progress is the share of
// fully picked items, 0 to 100.
type GetPickingTaskQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	PickerID    *kernel.UUID
	Status      string
	Zone        string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	Items       []PickingItemView
	Progress    int
}
