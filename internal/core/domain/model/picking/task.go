package picking

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

// Event names recorded by Task.
const (
	EventCreated   = "picking_task.created"
	EventStarted   = "picking_task.started"
	EventCompleted = "picking_task.completed"
	EventCancelled = "picking_task.cancelled"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task was not built by its constructors.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")
	// ErrItemsAreRequired is returned for a task without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("picking items")
	// ErrPickerIsRequired is returned by Start without a picker.
	ErrPickerIsRequired = errs.NewValueIsRequiredError("picker id")
)

// Reservation is a quantity still held on a storage unit by an active task.
type Reservation struct {
	StorageUnitID kernel.UUID
	Quantity      int
}

// Timeline holds the task timestamps; nil marks a transition not yet taken.
type Timeline struct {
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// Task is the unit of work handed to a picker. It owns an ordered list of items
// and its own life cycle, independent from the order it serves.
//
// Invariants:
//   - at least one item, at most one item per storage unit
//   - a picker is set once the task is InProgress
//   - Complete succeeds iff every item is picked in full
type Task struct {
	kernel.EventRecorder

	id       kernel.UUID
	orderID  kernel.UUID
	pickerID *kernel.UUID
	status   Status
	zone     string
	items    []Item
	timeline Timeline
	guard    guard.ConstructorGuard
}

// NewTask creates a Created task for orderID. Zone may be blank when picking is
// not restricted to one warehouse area.
//
// Example:
//
//	item, _ := picking.NewItem(product, unit.ID(), unit.LocationCode(), barcode, 3)
//	task, err := picking.NewTask(kernel.NewUUID(), orderID, "A", []picking.Item{item}, now)
func NewTask(id kernel.UUID, orderID kernel.UUID, zone string, items []Item, now time.Time) (*Task, error) {
	t := &Task{
		status:   Created,
		zone:     strings.TrimSpace(zone),
		timeline: Timeline{CreatedAt: now},
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setItems(items),
	); err != nil {
		return nil, err
	}

	t.record(EventCreated, now, map[string]string{
		"item_count": strconv.Itoa(len(items)),
		"zone":       t.zone,
	})
	return t, nil
}

// RestoreTask rehydrates a task from persistence without recording events.
func RestoreTask(
	id kernel.UUID,
	orderID kernel.UUID,
	pickerID *kernel.UUID,
	status Status,
	zone string,
	items []Item,
	timeline Timeline,
) (*Task, error) {
	t := &Task{
		zone:     zone,
		timeline: timeline,
		guard:    guard.NewConstructorGuard(),
	}

	var pickerErr error
	if pickerID != nil {
		pickerErr = pickerID.Validate()
	} else if status == InProgress || status == Completed {
		pickerErr = errs.NewValueIsInvalidErrorWithCause(
			"picker id", fmt.Errorf("%s task must have a picker", status))
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setItems(items),
		status.Validate(),
		pickerErr,
	); err != nil {
		return nil, err
	}

	t.status = status
	t.pickerID = pickerID
	return t, nil
}

func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

func (t *Task) ID() kernel.UUID {
	return t.id
}

func (t *Task) OrderID() kernel.UUID {
	return t.orderID
}

// PickerID is nil until the task is claimed.
func (t *Task) PickerID() *kernel.UUID {
	return t.pickerID
}

func (t *Task) Status() Status {
	return t.status
}

func (t *Task) Zone() string {
	return t.zone
}

func (t *Task) Timeline() Timeline {
	return t.timeline
}

// Items returns a copy of the items in planning order.
func (t *Task) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Item finds the item sourced from storageUnitID.
func (t *Task) Item(storageUnitID kernel.UUID) (Item, bool) {
	if i := t.indexOf(storageUnitID); i >= 0 {
		return t.items[i], true
	}
	return Item{}, false
}

// IsActive reports whether the task is Created or InProgress.
func (t *Task) IsActive() bool {
	return t.status.IsActive()
}

// Progress is the share of fully picked items, 0 to 100.
func (t *Task) Progress() int {
	picked := 0
	for _, i := range t.items {
		if i.IsPicked() {
			picked++
		}
	}
	return picked * 100 / len(t.items)
}

// OutstandingReservations lists the quantities the task still holds on the
// ledger. Reservations are converted only when picking completes, so an active
// task holds each item's full required quantity and a finished task holds none.
func (t *Task) OutstandingReservations() []Reservation {
	if !t.IsActive() {
		return nil
	}
	out := make([]Reservation, 0, len(t.items))
	for _, i := range t.items {
		out = append(out, Reservation{StorageUnitID: i.storageUnitID, Quantity: i.quantityRequired})
	}
	return out
}

// Start assigns the picker and moves Created to InProgress.
func (t *Task) Start(pickerID kernel.UUID, now time.Time) error {
	if err := pickerID.Validate(); err != nil {
		return ErrPickerIsRequired
	}

	next, err := t.status.TransitionTo(InProgress)
	if err != nil {
		return err
	}

	t.status = next
	t.pickerID = &pickerID
	t.timeline.StartedAt = &now
	t.record(EventStarted, now, map[string]string{"picker_id": pickerID.String()})
	return nil
}

// UpdateItemPickedStatus sets the picked quantity for the item sourced from
// storageUnitID. It is the only way to record picking progress.
//
// Business rules:
//   - the task must be InProgress, otherwise an InvalidTransitionError
//     from the current status to InProgress is returned
//   - 0 <= quantity <= required quantity of the item
//
// Returns ObjectNotFoundError for an unknown storage unit.
func (t *Task) UpdateItemPickedStatus(storageUnitID kernel.UUID, quantity int) error {
	if t.status != InProgress {
		return errs.NewInvalidTransitionError("picking task", t.status, InProgress)
	}

	idx := t.indexOf(storageUnitID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("picking item for storage unit", storageUnitID)
	}

	item := &t.items[idx]
	if quantity < 0 || quantity > item.quantityRequired {
		return errs.NewValueIsOutOfRangeError("quantity picked", quantity, 0, item.quantityRequired)
	}

	item.quantityPicked = quantity
	return nil
}

// Complete moves InProgress to Completed when every item is picked in full.
func (t *Task) Complete(now time.Time) error {
	if !t.status.CanTransitionTo(Completed) {
		return errs.NewInvalidTransitionError("picking task", t.status, Completed)
	}

	unpicked := 0
	for _, i := range t.items {
		if !i.IsPicked() {
			unpicked++
		}
	}
	if unpicked > 0 {
		return errs.NewIncompleteItemsError(t.id.String(), unpicked)
	}

	t.status = Completed
	t.timeline.CompletedAt = &now
	t.record(EventCompleted, now, nil)
	return nil
}

// Cancel moves a Created or InProgress task to Cancelled. The caller releases
// OutstandingReservations in the same unit of work before calling Cancel.
func (t *Task) Cancel(now time.Time) error {
	next, err := t.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	t.status = next
	t.timeline.CancelledAt = &now
	t.record(EventCancelled, now, nil)
	return nil
}

func (t *Task) indexOf(storageUnitID kernel.UUID) int {
	for i := range t.items {
		if t.items[i].storageUnitID.IsEqual(storageUnitID) {
			return i
		}
	}
	return -1
}

func (t *Task) record(name string, now time.Time, attributes map[string]string) {
	attrs := map[string]string{
		"order_id": t.orderID.String(),
		"status":   t.status.String(),
	}
	for k, v := range attributes {
		attrs[k] = v
	}
	t.Record(kernel.NewDomainEvent(name, t.id, now, attrs))
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	t.orderID = orderID
	return nil
}

func (t *Task) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, i := range items {
		if _, dup := seen[i.storageUnitID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"picking items", fmt.Errorf("storage unit %s appears more than once", i.storageUnitID))
		}
		seen[i.storageUnitID] = struct{}{}
	}

	t.items = make([]Item, len(items))
	copy(t.items, items)
	return nil
}
