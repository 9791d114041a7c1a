package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the life-cycle state of an order.
//
// State transitions:
//
//	Received ──> Picking ──> Picked ──> Completed
//	    │           │
//	    └───────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Allowed edges live in a single static
// table; there is no per-state type hierarchy.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Received is the initial status of a new order.
	Received
	// Picking means a picking task holds reservations for the order.
	Picking
	// Picked means every line has been physically picked.
	Picked
	// Completed means the order left the warehouse.
	Completed
	// Cancelled is terminal; held stock has been released.
	Cancelled
)

var statusStrings = map[Status]string{
	Unknown:   "Unknown",
	Received:  "Received",
	Picking:   "Picking",
	Picked:    "Picked",
	Completed: "Completed",
	Cancelled: "Cancelled",
}

var transitions = map[Status][]Status{
	Received: {Picking, Cancelled},
	Picking:  {Picked, Cancelled},
	Picked:   {Completed},
}

// ParseStatus converts a persisted or user-supplied name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusStrings {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the table has an edge s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the edge exists, or an InvalidTransitionError.
//
// Example:
//
//	newStatus, err := order.Received.TransitionTo(order.Picking)
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError("order", s, next)
	}
	return next, nil
}
