package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRestockStorageUnitCommandIsNotConstructed = errors.New(
	"RestockStorageUnitCommand must be created via NewRestockStorageUnitCommand constructor",
)

// RestockStorageUnitCommand adds physical stock to an existing unit.
type RestockStorageUnitCommand struct {
	unitID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewRestockStorageUnitCommand(unitID kernel.UUID, quantity int) (RestockStorageUnitCommand, error) {
	var qtyErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d must be positive", quantity))
	}

	if err := errors.Join(unitID.Validate(), qtyErr); err != nil {
		return RestockStorageUnitCommand{}, err
	}

	return RestockStorageUnitCommand{unitID: unitID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (c RestockStorageUnitCommand) Validate() error {
	return c.guard.Validate(ErrRestockStorageUnitCommandIsNotConstructed)
}

func (c RestockStorageUnitCommand) UnitID() kernel.UUID {
	return c.unitID
}

func (c RestockStorageUnitCommand) Quantity() int {
	return c.quantity
}
