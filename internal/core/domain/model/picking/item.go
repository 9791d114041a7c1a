package picking

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one concrete pick: a quantity of a product from one storage unit.
// Location and barcode are copied at planning time, so later changes to the
// storage unit never alter an already planned pick.
type Item struct {
	product          kernel.Product
	storageUnitID    kernel.UUID
	locationCode     string
	barcode          string
	quantityRequired int
	quantityPicked   int
}

// NewItem creates an unpicked item.
func NewItem(product kernel.Product, storageUnitID kernel.UUID, locationCode, barcode string, required int) (Item, error) {
	return RestoreItem(product, storageUnitID, locationCode, barcode, required, 0)
}

// RestoreItem rehydrates an item, enforcing 0 <= picked <= required.
func RestoreItem(
	product kernel.Product,
	storageUnitID kernel.UUID,
	locationCode, barcode string,
	required, picked int,
) (Item, error) {
	var locErr, reqErr, pickedErr error
	if strings.TrimSpace(locationCode) == "" {
		locErr = errs.NewValueIsRequiredError("location code")
	}
	if required <= 0 {
		reqErr = errs.NewValueIsInvalidErrorWithCause("quantity required", fmt.Errorf("%d must be positive", required))
	}
	if picked < 0 || picked > required {
		pickedErr = errs.NewValueIsOutOfRangeError("quantity picked", picked, 0, required)
	}

	if err := errors.Join(product.Validate(), storageUnitID.Validate(), locErr, reqErr, pickedErr); err != nil {
		return Item{}, err
	}

	return Item{
		product:          product,
		storageUnitID:    storageUnitID,
		locationCode:     strings.TrimSpace(locationCode),
		barcode:          barcode,
		quantityRequired: required,
		quantityPicked:   picked,
	}, nil
}

func (i Item) Product() kernel.Product {
	return i.product
}

func (i Item) StorageUnitID() kernel.UUID {
	return i.storageUnitID
}

func (i Item) LocationCode() string {
	return i.locationCode
}

func (i Item) Barcode() string {
	return i.barcode
}

func (i Item) QuantityRequired() int {
	return i.quantityRequired
}

func (i Item) QuantityPicked() int {
	return i.quantityPicked
}

// IsPicked is true once the picked quantity covers the requirement.
func (i Item) IsPicked() bool {
	return i.quantityPicked >= i.quantityRequired
}
