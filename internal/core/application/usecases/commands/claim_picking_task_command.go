package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrClaimPickingTaskCommandIsNotConstructed = errors.New(
	"ClaimPickingTaskCommand must be created via NewClaimPickingTaskCommand constructor",
)

// ClaimPickingTaskCommand assigns an unclaimed task to a picker.
type ClaimPickingTaskCommand struct {
	taskID   kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimPickingTaskCommand(taskID, pickerID kernel.UUID) (ClaimPickingTaskCommand, error) {
	var pickerErr error
	if err := pickerID.Validate(); err != nil {
		pickerErr = errs.NewValueIsRequiredErrorWithCause("picker id", err)
	}

	if err := errors.Join(taskID.Validate(), pickerErr); err != nil {
		return ClaimPickingTaskCommand{}, err
	}

	return ClaimPickingTaskCommand{taskID: taskID, pickerID: pickerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClaimPickingTaskCommand) Validate() error {
	return c.guard.Validate(ErrClaimPickingTaskCommandIsNotConstructed)
}

func (c ClaimPickingTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c ClaimPickingTaskCommand) PickerID() kernel.UUID {
	return c.pickerID
}
