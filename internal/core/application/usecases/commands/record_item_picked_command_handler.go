package commands

import (
	"context"
)

// RecordItemPickedCommandHandler records picker progress on an InProgress task.
// The ledger is not touched here; stock is deducted when picking completes.
type RecordItemPickedCommandHandler struct {
	uowFactory PickingUoWFactory
}

func NewRecordItemPickedCommandHandler(uowFactory PickingUoWFactory) RecordItemPickedCommandHandler {
	return RecordItemPickedCommandHandler{uowFactory: uowFactory}
}

func (h RecordItemPickedCommandHandler) Handle(ctx context.Context, cmd RecordItemPickedCommand) error {
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

	if err = task.UpdateItemPickedStatus(cmd.StorageUnitID(), cmd.Quantity()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
