package errs

import (
	"errors"
	"fmt"
)

// Fulfillment failure categories. Every domain error raised by the ledger,
// the planner, the two state machines or the coordinator unwraps to exactly
// one of these (compound kinds additionally unwrap to their parent category).
var (
	ErrInvalidTransition          = errors.New("invalid transition")
	ErrInsufficientStock          = errors.New("insufficient stock")
	ErrInsufficientReservation    = errors.New("insufficient reservation")
	ErrIncompleteItems            = errors.New("incomplete items")
	ErrInsufficientPickedQuantity = errors.New("insufficient picked quantity")
	ErrInvalidRelease             = errors.New("invalid release")
	ErrDomainInvariantViolation   = errors.New("domain invariant violation")
)

// InvalidTransitionError is returned when a state machine has no edge for the requested move.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity string, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InsufficientStockError is returned when available stock cannot cover a request.
// Location is empty when the shortage is reported for a product as a whole.
type InsufficientStockError struct {
	ProductID string
	Location  string
	Requested int
	Available int
}

func NewInsufficientStockError(productID, location string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Location:  location,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	where := ""
	if e.Location != "" {
		where = " at " + e.Location
	}
	return fmt.Sprintf("%s: product %s%s requested %d, available %d",
		ErrInsufficientStock, e.ProductID, where, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InsufficientReservationError is returned when a pick exceeds the reserved quantity.
// It is also an insufficient-stock failure.
type InsufficientReservationError struct {
	UnitID    string
	Requested int
	Reserved  int
}

func NewInsufficientReservationError(unitID string, requested, reserved int) *InsufficientReservationError {
	return &InsufficientReservationError{UnitID: unitID, Requested: requested, Reserved: reserved}
}

func (e *InsufficientReservationError) Error() string {
	return fmt.Sprintf("%s: storage unit %s requested %d, reserved %d",
		ErrInsufficientReservation, e.UnitID, e.Requested, e.Reserved)
}

func (e *InsufficientReservationError) Unwrap() []error {
	return []error{ErrInsufficientReservation, ErrInsufficientStock}
}

// InvalidReleaseError is returned when more is released than is reserved.
// It is also a domain invariant violation.
type InvalidReleaseError struct {
	UnitID    string
	Requested int
	Reserved  int
}

func NewInvalidReleaseError(unitID string, requested, reserved int) *InvalidReleaseError {
	return &InvalidReleaseError{UnitID: unitID, Requested: requested, Reserved: reserved}
}

func (e *InvalidReleaseError) Error() string {
	return fmt.Sprintf("%s: storage unit %s release of %d exceeds reserved %d",
		ErrInvalidRelease, e.UnitID, e.Requested, e.Reserved)
}

func (e *InvalidReleaseError) Unwrap() []error {
	return []error{ErrInvalidRelease, ErrDomainInvariantViolation}
}

// IncompleteItemsError is returned when a picking task is completed with unpicked items.
type IncompleteItemsError struct {
	TaskID   string
	Unpicked int
}

func NewIncompleteItemsError(taskID string, unpicked int) *IncompleteItemsError {
	return &IncompleteItemsError{TaskID: taskID, Unpicked: unpicked}
}

func (e *IncompleteItemsError) Error() string {
	return fmt.Sprintf("%s: picking task %s has %d unpicked items", ErrIncompleteItems, e.TaskID, e.Unpicked)
}

func (e *IncompleteItemsError) Unwrap() error {
	return ErrIncompleteItems
}

// InsufficientPickedQuantityError is returned when an order line is completed under its ordered quantity.
type InsufficientPickedQuantityError struct {
	ProductID string
	Ordered   int
	Picked    int
}

func NewInsufficientPickedQuantityError(productID string, ordered, picked int) *InsufficientPickedQuantityError {
	return &InsufficientPickedQuantityError{ProductID: productID, Ordered: ordered, Picked: picked}
}

func (e *InsufficientPickedQuantityError) Error() string {
	return fmt.Sprintf("%s: product %s ordered %d, picked %d",
		ErrInsufficientPickedQuantity, e.ProductID, e.Ordered, e.Picked)
}

func (e *InsufficientPickedQuantityError) Unwrap() error {
	return ErrInsufficientPickedQuantity
}

// DomainInvariantViolationError is the catch-all for states that must never be observed.
type DomainInvariantViolationError struct {
	Rule  string
	Cause error
}

func NewDomainInvariantViolationError(rule string) *DomainInvariantViolationError {
	return &DomainInvariantViolationError{Rule: rule}
}

func NewDomainInvariantViolationErrorWithCause(rule string, cause error) *DomainInvariantViolationError {
	return &DomainInvariantViolationError{Rule: rule, Cause: cause}
}

func (e *DomainInvariantViolationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDomainInvariantViolation, e.Rule), e.Cause)
}

func (e *DomainInvariantViolationError) Unwrap() error {
	return ErrDomainInvariantViolation
}
