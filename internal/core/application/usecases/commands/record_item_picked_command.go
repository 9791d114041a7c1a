package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordItemPickedCommandIsNotConstructed = errors.New(
	"RecordItemPickedCommand must be created via NewRecordItemPickedCommand constructor",
)

// RecordItemPickedCommand sets the picked quantity of one task item, identified
// by the storage unit it is sourced from.
type RecordItemPickedCommand struct {
	taskID        kernel.UUID
	storageUnitID kernel.UUID
	quantity      int

	guard guard.ConstructorGuard
}

func NewRecordItemPickedCommand(taskID, storageUnitID kernel.UUID, quantity int) (RecordItemPickedCommand, error) {
	var qtyErr error
	if quantity < 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}

	if err := errors.Join(taskID.Validate(), storageUnitID.Validate(), qtyErr); err != nil {
		return RecordItemPickedCommand{}, err
	}

	return RecordItemPickedCommand{
		taskID:        taskID,
		storageUnitID: storageUnitID,
		quantity:      quantity,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordItemPickedCommand) Validate() error {
	return c.guard.Validate(ErrRecordItemPickedCommandIsNotConstructed)
}

func (c RecordItemPickedCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c RecordItemPickedCommand) StorageUnitID() kernel.UUID {
	return c.storageUnitID
}

func (c RecordItemPickedCommand) Quantity() int {
	return c.quantity
}
