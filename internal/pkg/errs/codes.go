package errs

import "errors"

// Code is the stable, user-visible classification of a failure.
type Code string

const (
	CodeNotFound                   Code = "NOT_FOUND"
	CodeInvalidTransition          Code = "INVALID_TRANSITION"
	CodeInsufficientStock          Code = "INSUFFICIENT_STOCK"
	CodeIncompleteItems            Code = "INCOMPLETE_ITEMS"
	CodeInsufficientPickedQuantity Code = "INSUFFICIENT_PICKED_QUANTITY"
	CodeDomainInvariantViolation   Code = "DOMAIN_INVARIANT_VIOLATION"
	CodeValidation                 Code = "VALIDATION_ERROR"
	CodeInternal                   Code = "INTERNAL"
)

// CodeOf maps err to exactly one Code. It returns an empty Code for nil.
// Order matters: compound errors such as InsufficientReservationError match
// their most specific user-facing category first.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrIncompleteItems):
		return CodeIncompleteItems
	case errors.Is(err, ErrInsufficientPickedQuantity):
		return CodeInsufficientPickedQuantity
	case errors.Is(err, ErrDomainInvariantViolation):
		return CodeDomainInvariantViolation
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return CodeValidation
	default:
		return CodeInternal
	}
}
