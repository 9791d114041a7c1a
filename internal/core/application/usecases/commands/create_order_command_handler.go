package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// CreateOrderCommandHandler resolves every line through the product catalog and
// persists a Received order. Catalog data is copied once here and never re-read.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		clock:      clk,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	requests := cmd.Lines()
	lines := make([]order.OrderLine, 0, len(requests))
	for _, req := range requests {
		entry, err := h.catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}

		line, err := order.NewOrderLine(entry.Product, req.Quantity, entry.UnitPrice)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), lines, h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
