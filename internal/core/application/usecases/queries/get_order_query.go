// Package queries contains read operations over the fulfillment tables.
// Handlers run plain SQL on the shared connection, outside any unit of work,
// and return flat read models shaped for the HTTP surface.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its lines and derived totals.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineView is one order line in the read model.
type OrderLineView struct {
	ProductID       kernel.UUID
	ProductName     string
	SKU             string
	QuantityOrdered int
	QuantityPicked  int
	UnitPrice       kernel.Money
	Total           kernel.Money
}

// GetOrderQueryResponse is the order read model. Totals are computed from the
// lines on read.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	Status             string
	CancellationReason string
	CreatedAt          time.Time
	PickingStartedAt   *time.Time
	PickingCompletedAt *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Lines              []OrderLineView
	TotalQuantity      int
	TotalAmount        kernel.Money
}
