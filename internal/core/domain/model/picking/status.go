package picking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the life-cycle state of a picking task.
//
//	Created ──> InProgress ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	// Created tasks hold reservations but have no picker yet.
	Created
	// InProgress tasks are claimed by a picker.
	InProgress
	// Completed tasks had every item picked in full.
	Completed
	// Cancelled tasks released their reservations.
	Cancelled
)

var statusStrings = map[Status]string{
	Unknown:    "Unknown",
	Created:    "Created",
	InProgress: "InProgress",
	Completed:  "Completed",
	Cancelled:  "Cancelled",
}

var transitions = map[Status][]Status{
	Created:    {InProgress, Cancelled},
	InProgress: {Completed, Cancelled},
}

// ParseStatus converts a persisted or user-supplied name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusStrings {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid picking task status", s))
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

// IsActive reports whether the task still holds reservations.
func (s Status) IsActive() bool {
	return s == Created || s == InProgress
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
//	next, err := picking.Created.TransitionTo(picking.InProgress)
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError("picking task", s, next)
	}
	return next, nil
}
