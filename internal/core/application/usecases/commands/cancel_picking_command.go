package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCancelPickingCommandIsNotConstructed = errors.New(
		"CancelPickingCommand must be created via NewCancelPickingCommand constructor",
	)
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// CancelPickingCommand cancels an order and its active picking task.
type CancelPickingCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelPickingCommand(orderID kernel.UUID, reason string) (CancelPickingCommand, error) {
	cmd := CancelPickingCommand{guard: guard.NewConstructorGuard()}

	reason = strings.TrimSpace(reason)
	var reasonErr error
	if reason == "" {
		reasonErr = ErrReasonIsRequired
	}

	if err := errors.Join(orderID.Validate(), reasonErr); err != nil {
		return CancelPickingCommand{}, err
	}

	cmd.orderID = orderID
	cmd.reason = reason
	return cmd, nil
}

func (c CancelPickingCommand) Validate() error {
	return c.guard.Validate(ErrCancelPickingCommandIsNotConstructed)
}

func (c CancelPickingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelPickingCommand) Reason() string {
	return c.reason
}
