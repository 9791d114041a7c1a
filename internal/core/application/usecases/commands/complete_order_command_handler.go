package commands

import (
	"context"

	"fulfillment/internal/pkg/clock"
)

// CompleteOrderCommandHandler moves a Picked order to Completed.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Complete(h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
