package inventoryrepo

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorageUnitRepository implements ports.StorageUnitRepository using GORM.
//
// Reserve, ReleaseReservation and Pick are single conditional UPDATE statements:
// the row changes only if the stored counters still cover the request, so a
// stale snapshot can never drive the ledger out of its invariant.
type GormStorageUnitRepository struct {
	db *gorm.DB
}

func NewGormStorageUnitRepository(db *gorm.DB) *GormStorageUnitRepository {
	return &GormStorageUnitRepository{db: db}
}

// Add inserts a unit. A second unit for the same product and location violates
// idx_storage_units_product_location.
func (r *GormStorageUnitRepository) Add(ctx context.Context, unit *inventory.StorageUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("storage unit location", err)
		}
		return err
	}

	return nil
}

// Update writes quantity, reservation and restock time.
func (r *GormStorageUnitRepository) Update(ctx context.Context, unit *inventory.StorageUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	dto := fromDomain(unit)
	result := r.db.WithContext(ctx).Model(&StorageUnitDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"quantity":          dto.Quantity,
		"reserved":          dto.Reserved,
		"last_restocked_at": dto.LastRestockedAt,
	})
	if result.Error != nil {
		return mapLedgerError(result.Error, unit.ID())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("storage unit", unit.ID())
	}

	return nil
}

func (r *GormStorageUnitRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.StorageUnit, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the transaction ends.
func (r *GormStorageUnitRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.StorageUnit, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetAvailableForUpdate locks every unit of productIDs with available stock.
// Rows are read and locked in id order so concurrent planners acquire locks in
// the same sequence. A planner that waited on a lock re-reads the committed
// counters, so exhausted units drop out of its result.
func (r *GormStorageUnitRepository) GetAvailableForUpdate(
	ctx context.Context,
	productIDs []kernel.UUID,
) ([]*inventory.StorageUnit, error) {
	if len(productIDs) == 0 {
		return []*inventory.StorageUnit{}, nil
	}

	ids := make([]any, 0, len(productIDs))
	for _, id := range productIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, id.Bytes())
	}

	var dtos []StorageUnitDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("product_id IN ? AND quantity - reserved > 0", ids).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	units := make([]*inventory.StorageUnit, 0, len(dtos))
	for _, dto := range dtos {
		unit, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return units, nil
}

// Reserve raises the reservation by qty if at least qty is available.
func (r *GormStorageUnitRepository) Reserve(ctx context.Context, id kernel.UUID, qty int) error {
	return r.conditionalUpdate(ctx, id, qty,
		"quantity - reserved >= ?",
		map[string]any{"reserved": gorm.Expr("reserved + ?", qty)},
		func(current StorageUnitDTO) error {
			return errs.NewInsufficientStockError(
				current.ProductID.String(), current.LocationCode, qty, current.Quantity-current.Reserved)
		},
	)
}

// ReleaseReservation lowers the reservation by qty if at least qty is reserved.
func (r *GormStorageUnitRepository) ReleaseReservation(ctx context.Context, id kernel.UUID, qty int) error {
	return r.conditionalUpdate(ctx, id, qty,
		"reserved >= ?",
		map[string]any{"reserved": gorm.Expr("reserved - ?", qty)},
		func(current StorageUnitDTO) error {
			return errs.NewInvalidReleaseError(id.String(), qty, current.Reserved)
		},
	)
}

// Pick removes qty from both the reservation and the physical quantity.
func (r *GormStorageUnitRepository) Pick(ctx context.Context, id kernel.UUID, qty int) error {
	return r.conditionalUpdate(ctx, id, qty,
		"reserved >= ? AND quantity >= ?",
		map[string]any{
			"reserved": gorm.Expr("reserved - ?", qty),
			"quantity": gorm.Expr("quantity - ?", qty),
		},
		func(current StorageUnitDTO) error {
			return errs.NewInsufficientReservationError(id.String(), qty, current.Reserved)
		},
	)
}

func (r *GormStorageUnitRepository) get(db *gorm.DB, id kernel.UUID) (*inventory.StorageUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StorageUnitDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("storage unit", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// conditionalUpdate applies updates when cond holds for the stored row. cond
// takes qty once per placeholder. When no row matched, the unit is re-read to
// tell a missing unit from a shortage.
func (r *GormStorageUnitRepository) conditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	qty int,
	cond string,
	updates map[string]any,
	shortage func(current StorageUnitDTO) error,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "available")
	}

	args := make([]any, 0, 3)
	args = append(args, id.Bytes())
	for range strings.Count(cond, "?") {
		args = append(args, qty)
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&StorageUnitDTO{}).Where("id = ? AND "+cond, args...).Updates(updates)
	if result.Error != nil {
		return mapLedgerError(result.Error, id)
	}

	if result.RowsAffected == 1 {
		return nil
	}

	var current StorageUnitDTO
	if err := db.First(&current, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("storage unit", id.String())
		}
		return err
	}

	return shortage(current)
}

// mapLedgerError turns a violated reservation CHECK into an insufficient-stock
// failure. Any other error is returned unchanged.
func mapLedgerError(err error, id kernel.UUID) error {
	if pgerr.IsCheckViolation(err, reservedConstraint) || pgerr.IsCheckViolation(err, quantityConstraint) {
		return errors.Join(errs.NewInsufficientStockError(id.String(), "", 0, 0), err)
	}
	return err
}
