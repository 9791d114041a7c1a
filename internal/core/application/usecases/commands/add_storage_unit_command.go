package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddStorageUnitCommandIsNotConstructed = errors.New(
	"AddStorageUnitCommand must be created via NewAddStorageUnitCommand constructor",
)

// AddStorageUnitCommand onboards stock of a catalog product at a location.
type AddStorageUnitCommand struct {
	unitID       kernel.UUID
	productID    kernel.UUID
	locationCode string
	zone         string
	quantity     int

	guard guard.ConstructorGuard
}

func NewAddStorageUnitCommand(
	unitID, productID kernel.UUID,
	locationCode, zone string,
	quantity int,
) (AddStorageUnitCommand, error) {
	locationCode = strings.TrimSpace(locationCode)
	zone = strings.TrimSpace(zone)

	var locErr, zoneErr, qtyErr error
	if locationCode == "" {
		locErr = errs.NewValueIsRequiredError("location code")
	}
	if zone == "" {
		zoneErr = errs.NewValueIsRequiredError("zone")
	}
	if quantity < 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}

	if err := errors.Join(unitID.Validate(), productID.Validate(), locErr, zoneErr, qtyErr); err != nil {
		return AddStorageUnitCommand{}, err
	}

	return AddStorageUnitCommand{
		unitID:       unitID,
		productID:    productID,
		locationCode: locationCode,
		zone:         zone,
		quantity:     quantity,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddStorageUnitCommand) Validate() error {
	return c.guard.Validate(ErrAddStorageUnitCommandIsNotConstructed)
}

func (c AddStorageUnitCommand) UnitID() kernel.UUID {
	return c.unitID
}

func (c AddStorageUnitCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AddStorageUnitCommand) LocationCode() string {
	return c.locationCode
}

func (c AddStorageUnitCommand) Zone() string {
	return c.zone
}

func (c AddStorageUnitCommand) Quantity() int {
	return c.quantity
}
