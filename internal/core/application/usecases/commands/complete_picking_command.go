package commands

import (
	"errors"
	"fmt"
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCompletePickingCommandIsNotConstructed = errors.New(
		"CompletePickingCommand must be created via NewCompletePickingCommand constructor",
	)
	ErrPickedQuantitiesAreRequired = errs.NewValueIsRequiredError("picked quantities")
)

// CompletePickingCommand reports the quantities physically picked for an order,
// keyed by product id.
type CompletePickingCommand struct {
	orderID          kernel.UUID
	pickedQuantities map[kernel.UUID]int

	guard guard.ConstructorGuard
}

func NewCompletePickingCommand(orderID kernel.UUID, pickedQuantities map[kernel.UUID]int) (CompletePickingCommand, error) {
	cmd := CompletePickingCommand{guard: guard.NewConstructorGuard()}

	var qtyErr error
	if len(pickedQuantities) == 0 {
		qtyErr = ErrPickedQuantitiesAreRequired
	}
	for productID, qty := range pickedQuantities {
		if qty < 0 {
			qtyErr = errors.Join(qtyErr, errs.NewValueIsInvalidErrorWithCause(
				"picked quantity", fmt.Errorf("product %s: %d is negative", productID, qty)))
		}
	}

	if err := errors.Join(orderID.Validate(), qtyErr); err != nil {
		return CompletePickingCommand{}, err
	}

	cmd.orderID = orderID
	cmd.pickedQuantities = maps.Clone(pickedQuantities)
	return cmd, nil
}

func (c CompletePickingCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickingCommandIsNotConstructed)
}

func (c CompletePickingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickedQuantities returns a copy of the reported quantities.
func (c CompletePickingCommand) PickedQuantities() map[kernel.UUID]int {
	return maps.Clone(c.pickedQuantities)
}
