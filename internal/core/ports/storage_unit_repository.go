package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// StorageUnitRepository defines the persistence contract of the inventory ledger.
//
// Reserve, ReleaseReservation and Pick are conditional writes: each checks its
// precondition against the stored row in the same statement that changes it, so
// two transactions can never both consume the same available units. A failed
// condition is reported as InsufficientStock (or InvalidRelease for releases).
type StorageUnitRepository interface {
	// Add persists a new unit. A second unit for the same product and location is rejected.
	Add(ctx context.Context, unit *inventory.StorageUnit) error

	// Update persists quantity, reservation and restock time of a unit that the
	// caller holds locked through GetForUpdate.
	Update(ctx context.Context, unit *inventory.StorageUnit) error

	// Get returns a unit without locking it, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*inventory.StorageUnit, error)

	// GetForUpdate returns a unit and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.StorageUnit, error)

	// GetAvailableForUpdate returns and locks every unit of the given products
	// that has available stock. Rows are locked in id order.
	GetAvailableForUpdate(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.StorageUnit, error)

	// Reserve adds qty to the reservation if at least qty is available.
	Reserve(ctx context.Context, id kernel.UUID, qty int) error

	// ReleaseReservation subtracts qty from the reservation if at least qty is reserved.
	ReleaseReservation(ctx context.Context, id kernel.UUID, qty int) error

	// Pick subtracts qty from both reservation and quantity if both cover it.
	Pick(ctx context.Context, id kernel.UUID, qty int) error
}
