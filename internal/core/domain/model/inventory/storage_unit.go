package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrStorageUnitIsNotConstructed is returned when a zero-value StorageUnit is used.
	ErrStorageUnitIsNotConstructed = errors.New("StorageUnit must be created via NewStorageUnit constructor")
	// ErrLocationCodeIsRequired is returned for a blank location code.
	ErrLocationCodeIsRequired = errs.NewValueIsRequiredError("location code")
	// ErrZoneIsRequired is returned for a blank zone.
	ErrZoneIsRequired = errs.NewValueIsRequiredError("zone")
)

// StorageUnit is the ledger record for one (product, location) pair.
//
// Invariants:
//   - 0 <= reserved <= quantity
//   - location code and zone are never blank
//   - the product snapshot is copied at onboarding and never re-read from the catalog
type StorageUnit struct {
	id              kernel.UUID
	product         kernel.Product
	quantity        int
	reserved        int
	locationCode    string
	zone            string
	lastRestockedAt time.Time
	guard           guard.ConstructorGuard
}

// NewStorageUnit onboards stock of a product at a location.
//
// Parameters:
//   - id: unit identifier
//   - product: catalog snapshot (name and SKU are copied)
//   - locationCode: bin code, e.g. "A-01-03"
//   - zone: warehouse area the bin belongs to
//   - quantity: initial physical quantity (>= 0)
//   - now: used as the last-restocked timestamp
//
// Example:
//
//	unit, err := inventory.NewStorageUnit(kernel.NewUUID(), product, "A-01", "A", 10, clock.Now())
func NewStorageUnit(
	id kernel.UUID,
	product kernel.Product,
	locationCode string,
	zone string,
	quantity int,
	now time.Time,
) (*StorageUnit, error) {
	unit := &StorageUnit{
		guard:           guard.NewConstructorGuard(),
		lastRestockedAt: now,
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setProduct(product),
		unit.setLocation(locationCode, zone),
		unit.setQuantities(quantity, 0),
	); err != nil {
		return nil, err
	}

	return unit, nil
}

// RestoreStorageUnit rehydrates a unit from persistence. The ledger invariant is
// checked again so corrupted rows never reach domain logic.
func RestoreStorageUnit(
	id kernel.UUID,
	product kernel.Product,
	locationCode string,
	zone string,
	quantity int,
	reserved int,
	lastRestockedAt time.Time,
) (*StorageUnit, error) {
	unit := &StorageUnit{
		guard:           guard.NewConstructorGuard(),
		lastRestockedAt: lastRestockedAt,
	}

	if err := errors.Join(
		unit.setID(id),
		unit.setProduct(product),
		unit.setLocation(locationCode, zone),
		unit.setQuantities(quantity, reserved),
	); err != nil {
		return nil, err
	}

	return unit, nil
}

// Validate fails for a unit not built by NewStorageUnit or RestoreStorageUnit.
func (u *StorageUnit) Validate() error {
	if u == nil {
		return ErrStorageUnitIsNotConstructed
	}
	return u.guard.Validate(ErrStorageUnitIsNotConstructed)
}

func (u *StorageUnit) ID() kernel.UUID {
	return u.id
}

func (u *StorageUnit) Product() kernel.Product {
	return u.product
}

func (u *StorageUnit) Quantity() int {
	return u.quantity
}

func (u *StorageUnit) Reserved() int {
	return u.reserved
}

func (u *StorageUnit) LocationCode() string {
	return u.locationCode
}

func (u *StorageUnit) Zone() string {
	return u.zone
}

func (u *StorageUnit) LastRestockedAt() time.Time {
	return u.lastRestockedAt
}

// Available is the quantity a new allocation may consume.
func (u *StorageUnit) Available() int {
	return u.quantity - u.reserved
}

// IsOutOfStock reports whether nothing is available.
func (u *StorageUnit) IsOutOfStock() bool {
	return u.Available() == 0
}

// IsLowStock reports whether the available quantity is at or below threshold.
func (u *StorageUnit) IsLowStock(threshold int) bool {
	return u.Available() <= threshold
}

// Reserve places a soft hold of qty units.
//
// Returns:
//   - ValueIsInvalidError if qty <= 0
//   - InsufficientStockError if qty exceeds the available quantity; reserved is unchanged
func (u *StorageUnit) Reserve(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if qty > u.Available() {
		return errs.NewInsufficientStockError(u.product.ID().String(), u.locationCode, qty, u.Available())
	}

	u.reserved += qty
	return nil
}

// ReleaseReservation returns qty held units to the available pool.
// Releasing more than is reserved is an InvalidReleaseError.
func (u *StorageUnit) ReleaseReservation(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if qty > u.reserved {
		return errs.NewInvalidReleaseError(u.id.String(), qty, u.reserved)
	}

	u.reserved -= qty
	return nil
}

// Pick converts qty reserved units into a physical deduction. Both the
// reservation and the physical quantity must cover qty.
func (u *StorageUnit) Pick(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if qty > u.reserved {
		return errs.NewInsufficientReservationError(u.id.String(), qty, u.reserved)
	}
	if qty > u.quantity {
		return errs.NewInsufficientStockError(u.product.ID().String(), u.locationCode, qty, u.quantity)
	}

	u.reserved -= qty
	u.quantity -= qty
	return nil
}

// Restock adds qty units of physical stock and stamps the restock time.
func (u *StorageUnit) Restock(qty int, now time.Time) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}

	u.quantity += qty
	u.lastRestockedAt = now
	return nil
}

func (u *StorageUnit) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *StorageUnit) setProduct(product kernel.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	u.product = product
	return nil
}

func (u *StorageUnit) setLocation(locationCode, zone string) error {
	locationCode = strings.TrimSpace(locationCode)
	zone = strings.TrimSpace(zone)

	var locErr, zoneErr error
	if locationCode == "" {
		locErr = ErrLocationCodeIsRequired
	}
	if zone == "" {
		zoneErr = ErrZoneIsRequired
	}
	if err := errors.Join(locErr, zoneErr); err != nil {
		return err
	}

	u.locationCode = locationCode
	u.zone = zone
	return nil
}

func (u *StorageUnit) setQuantities(quantity, reserved int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	if reserved < 0 || reserved > quantity {
		return errs.NewDomainInvariantViolationErrorWithCause(
			"0 <= reserved <= quantity",
			fmt.Errorf("reserved %d, quantity %d", reserved, quantity),
		)
	}
	u.quantity = quantity
	u.reserved = reserved
	return nil
}

func validateQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d must be positive", qty))
	}
	return nil
}
