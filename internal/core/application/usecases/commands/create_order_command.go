package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errs.NewValueIsRequiredError("order lines")
)

// OrderLineRequest is one requested product and quantity. Name, SKU and price
// are resolved from the catalog by the handler.
type OrderLineRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand registers a new customer order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, []OrderLineRequest{{ProductID: p, Quantity: 2}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	lines      []OrderLineRequest

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderID, customerID kernel.UUID, lines []OrderLineRequest) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Lines() []OrderLineRequest {
	out := make([]OrderLineRequest, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineRequest) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	var lineErrs error
	for i, l := range lines {
		if err := l.ProductID.Validate(); err != nil {
			lineErrs = errors.Join(lineErrs, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("line %d product id", i), err))
		}
		if l.Quantity <= 0 {
			lineErrs = errors.Join(lineErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("line %d quantity", i), fmt.Errorf("%d must be positive", l.Quantity)))
		}
	}
	if lineErrs != nil {
		return lineErrs
	}

	c.lines = make([]OrderLineRequest, len(lines))
	copy(c.lines, lines)
	return nil
}
