// Package errs provides the error types shared by the fulfillment service.
//
// Two families live here:
//   - generic validation and lookup errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError)
//   - the fulfillment taxonomy (InvalidTransitionError, InsufficientStockError,
//     InsufficientReservationError, IncompleteItemsError, InsufficientPickedQuantityError,
//     InvalidReleaseError, DomainInvariantViolationError)
//
// Each error type pairs a sentinel (e.g. ErrInsufficientStock) with a struct carrying
// the details, constructor functions, an Error method and Unwrap. CodeOf collapses any
// error into one stable Code for transport layers.
package errs
