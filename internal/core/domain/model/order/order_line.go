package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// OrderLine is a value record owned by an Order. It carries the catalog snapshot
// taken when the order was created.
type OrderLine struct {
	product         kernel.Product
	quantityOrdered int
	quantityPicked  int
	unitPrice       kernel.Money
}

// NewOrderLine creates a line with nothing picked yet.
func NewOrderLine(product kernel.Product, quantity int, unitPrice kernel.Money) (OrderLine, error) {
	return RestoreOrderLine(product, quantity, 0, unitPrice)
}

// RestoreOrderLine rehydrates a line, enforcing 0 <= picked <= ordered.
func RestoreOrderLine(product kernel.Product, quantityOrdered, quantityPicked int, unitPrice kernel.Money) (OrderLine, error) {
	var qtyErr, pickedErr, priceErr error
	if quantityOrdered <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity ordered", fmt.Errorf("%d must be positive", quantityOrdered))
	}
	if quantityPicked < 0 || quantityPicked > quantityOrdered {
		pickedErr = errs.NewValueIsOutOfRangeError("quantity picked", quantityPicked, 0, quantityOrdered)
	}
	if unitPrice < 0 {
		priceErr = errs.NewValueIsOutOfRangeError("unit price", unitPrice, 0, "unbounded")
	}

	if err := errors.Join(product.Validate(), qtyErr, pickedErr, priceErr); err != nil {
		return OrderLine{}, err
	}

	return OrderLine{
		product:         product,
		quantityOrdered: quantityOrdered,
		quantityPicked:  quantityPicked,
		unitPrice:       unitPrice,
	}, nil
}

func (l OrderLine) Product() kernel.Product {
	return l.product
}

func (l OrderLine) QuantityOrdered() int {
	return l.quantityOrdered
}

func (l OrderLine) QuantityPicked() int {
	return l.quantityPicked
}

func (l OrderLine) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total is unit price times ordered quantity.
func (l OrderLine) Total() kernel.Money {
	return l.unitPrice.Multiply(l.quantityOrdered)
}

func (l OrderLine) IsFullyPicked() bool {
	return l.quantityPicked >= l.quantityOrdered
}
