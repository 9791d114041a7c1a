// Package guard provides ConstructorGuard, a marker embedded in domain objects
// and commands to tell a value built by its constructor from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded value was
// not constructed and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value went through its
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	type Reservation struct {
//	    unitID kernel.UUID
//	    qty    int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewReservation(unitID kernel.UUID, qty int) Reservation {
//	    return Reservation{unitID: unitID, qty: qty, guard: guard.NewConstructorGuard()}
//	}
//
//	func (r Reservation) Validate() error {
//	    return r.guard.Validate(ErrReservationIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
