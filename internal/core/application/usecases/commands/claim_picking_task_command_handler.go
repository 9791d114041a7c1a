package commands

import (
	"context"

	"fulfillment/internal/pkg/clock"
)

// ClaimPickingTaskCommandHandler moves a Created task to InProgress for a picker.
type ClaimPickingTaskCommandHandler struct {
	uowFactory PickingUoWFactory
	clock      clock.Clock
}

func NewClaimPickingTaskCommandHandler(uowFactory PickingUoWFactory, clk clock.Clock) ClaimPickingTaskCommandHandler {
	return ClaimPickingTaskCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h ClaimPickingTaskCommandHandler) Handle(ctx context.Context, cmd ClaimPickingTaskCommand) error {
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

	taskRepo := uow.PickingTaskRepository()

	task, err := taskRepo.GetForUpdate(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.Start(cmd.PickerID(), h.clock.Now()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
