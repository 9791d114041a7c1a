package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Event names recorded by Order.
const (
	EventReceived         = "order.received"
	EventPickingStarted   = "order.picking_started"
	EventPickingCompleted = "order.picking_completed"
	EventCompleted        = "order.completed"
	EventCancelled        = "order.cancelled"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrLinesAreRequired is returned for an order without lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("order lines")
	// ErrCancellationReasonIsRequired is returned by Cancel for a blank reason.
	ErrCancellationReasonIsRequired = errs.NewValueIsRequiredError("cancellation reason")
)

// Timeline holds the timestamps of an order. Nil pointers mark transitions
// that have not happened.
type Timeline struct {
	CreatedAt          time.Time
	PickingStartedAt   *time.Time
	PickingCompletedAt *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
}

// Order is the aggregate root of a fulfillment request.
//
// Order follows these invariants:
//   - at least one line, at most one line per product
//   - status changes only along the edges of the transition table
//   - totals are derived from lines and never stored
//   - once Completed or Cancelled nothing changes
//
// The Order owns its lines as values; there is no back pointer from a line.
type Order struct {
	kernel.EventRecorder

	id                 kernel.UUID
	customerID         kernel.UUID
	status             Status
	lines              []OrderLine
	timeline           Timeline
	cancellationReason string
	guard              guard.ConstructorGuard
}

// NewOrder creates a Received order and records an order.received event.
//
// Parameters:
//   - id: order identifier
//   - customerID: the ordering customer
//   - lines: one line per product, at least one
//   - now: creation time
//
// Example:
//
//	line, _ := order.NewOrderLine(product, 3, 1999)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.OrderLine{line}, clock.Now())
func NewOrder(id kernel.UUID, customerID kernel.UUID, lines []OrderLine, now time.Time) (*Order, error) {
	o := &Order{
		status:   Received,
		timeline: Timeline{CreatedAt: now},
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.record(EventReceived, now, map[string]string{
		"customer_id":    customerID.String(),
		"line_count":     strconv.Itoa(len(lines)),
		"total_quantity": strconv.Itoa(o.TotalQuantity()),
		"total_amount":   o.TotalAmount().String(),
	})

	return o, nil
}

// RestoreOrder rehydrates an order from persistence. No events are recorded.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	status Status,
	lines []OrderLine,
	timeline Timeline,
	cancellationReason string,
) (*Order, error) {
	o := &Order{
		timeline:           timeline,
		cancellationReason: cancellationReason,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate fails for an Order not built by its constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

// Lines returns a copy of the order lines in creation order.
func (o *Order) Lines() []OrderLine {
	out := make([]OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

// Line finds the line for productID.
func (o *Order) Line(productID kernel.UUID) (OrderLine, bool) {
	for _, l := range o.lines {
		if l.product.ID().IsEqual(productID) {
			return l, true
		}
	}
	return OrderLine{}, false
}

func (o *Order) Timeline() Timeline {
	return o.timeline
}

func (o *Order) CreatedAt() time.Time {
	return o.timeline.CreatedAt
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// TotalAmount sums the line totals.
func (o *Order) TotalAmount() kernel.Money {
	var total kernel.Money
	for _, l := range o.lines {
		total += l.Total()
	}
	return total
}

// TotalQuantity sums the ordered quantities.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.lines {
		total += l.quantityOrdered
	}
	return total
}

// TotalPicked sums the picked quantities.
func (o *Order) TotalPicked() int {
	total := 0
	for _, l := range o.lines {
		total += l.quantityPicked
	}
	return total
}

// StartPicking moves a Received order to Picking.
func (o *Order) StartPicking(now time.Time) error {
	next, err := o.status.TransitionTo(Picking)
	if err != nil {
		return err
	}

	o.status = next
	o.timeline.PickingStartedAt = &now
	o.record(EventPickingStarted, now, nil)
	return nil
}

// CompletePicking records the picked quantity of every line and moves the
// order to Picked.
//
// Business rules:
//   - the order must be Picking
//   - every line needs a picked quantity >= its ordered quantity; under-picking
//     of any line rejects the whole call and no line is changed
//   - surplus is accepted but recorded capped at the ordered quantity
//
// Returns InvalidTransitionError or InsufficientPickedQuantityError on failure.
func (o *Order) CompletePicking(pickedQuantities map[kernel.UUID]int, now time.Time) error {
	if !o.status.CanTransitionTo(Picked) {
		return errs.NewInvalidTransitionError("order", o.status, Picked)
	}

	for _, l := range o.lines {
		picked := pickedQuantities[l.product.ID()]
		if picked < l.quantityOrdered {
			return errs.NewInsufficientPickedQuantityError(l.product.ID().String(), l.quantityOrdered, picked)
		}
	}

	for i := range o.lines {
		o.lines[i].quantityPicked = o.lines[i].quantityOrdered
	}

	o.status = Picked
	o.timeline.PickingCompletedAt = &now
	o.record(EventPickingCompleted, now, map[string]string{
		"total_picked": strconv.Itoa(o.TotalPicked()),
	})
	return nil
}

// Complete moves a Picked order to Completed once it has been dispatched.
func (o *Order) Complete(now time.Time) error {
	next, err := o.status.TransitionTo(Completed)
	if err != nil {
		return err
	}

	o.status = next
	o.timeline.CompletedAt = &now
	o.record(EventCompleted, now, nil)
	return nil
}

// Cancel moves a Received or Picking order to Cancelled and records reason.
// Releasing held stock is the caller's job and must happen in the same unit of work.
func (o *Order) Cancel(reason string, now time.Time) error {
	next, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReasonIsRequired
	}

	previous := o.status
	o.status = next
	o.cancellationReason = reason
	o.timeline.CancelledAt = &now
	o.record(EventCancelled, now, map[string]string{
		"reason":          reason,
		"previous_status": previous.String(),
	})
	return nil
}

func (o *Order) record(name string, now time.Time, attributes map[string]string) {
	attrs := map[string]string{"status": o.status.String()}
	for k, v := range attributes {
		attrs[k] = v
	}
	o.Record(kernel.NewDomainEvent(name, o.id, now, attrs))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, l := range lines {
		if err := l.product.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("order line %d", i), err)
		}
		if _, dup := seen[l.product.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"order lines",
				fmt.Errorf("product %s appears more than once", l.product.ID()),
			)
		}
		seen[l.product.ID()] = struct{}{}
	}

	o.lines = make([]OrderLine, len(lines))
	copy(o.lines, lines)
	return nil
}
