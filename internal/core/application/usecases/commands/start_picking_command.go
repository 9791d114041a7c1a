package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPickingCommandIsNotConstructed = errors.New(
	"StartPickingCommand must be created via NewStartPickingCommand constructor",
)

// StartPickingCommand asks to allocate stock for an order and create its picking task.
//
// Example:
//
//	cmd, err := NewStartPickingCommand(orderID, &pickerID, "A")
//	if err != nil {
//	    return err
//	}
//	task, err := handler.Handle(ctx, cmd)
type StartPickingCommand struct {
	orderID  kernel.UUID
	pickerID *kernel.UUID
	zone     string

	guard guard.ConstructorGuard
}

// NewStartPickingCommand validates the command. pickerID is optional: without it
// the task is created unclaimed. A blank zone allows stock from every zone.
func NewStartPickingCommand(orderID kernel.UUID, pickerID *kernel.UUID, zone string) (StartPickingCommand, error) {
	cmd := StartPickingCommand{
		zone:  strings.TrimSpace(zone),
		guard: guard.NewConstructorGuard(),
	}

	var pickerErr error
	if pickerID != nil {
		pickerErr = pickerID.Validate()
	}

	if err := errors.Join(orderID.Validate(), pickerErr); err != nil {
		return StartPickingCommand{}, err
	}

	cmd.orderID = orderID
	cmd.pickerID = pickerID
	return cmd, nil
}

func (c StartPickingCommand) Validate() error {
	return c.guard.Validate(ErrStartPickingCommandIsNotConstructed)
}

func (c StartPickingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID is nil when the task should stay unclaimed.
func (c StartPickingCommand) PickerID() *kernel.UUID {
	return c.pickerID
}

func (c StartPickingCommand) Zone() string {
	return c.zone
}
