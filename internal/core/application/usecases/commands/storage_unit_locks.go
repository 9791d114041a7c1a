package commands

import (
	"context"
	"slices"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// lockUnits locks storage units in ascending id order, the same order
// GetAvailableForUpdate uses, and returns them by id. Each id is locked once.
func lockUnits(
	ctx context.Context,
	repo ports.StorageUnitRepository,
	ids []kernel.UUID,
) (map[kernel.UUID]*inventory.StorageUnit, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, kernel.UUID.Compare)
	sorted = slices.CompactFunc(sorted, kernel.UUID.IsEqual)

	units := make(map[kernel.UUID]*inventory.StorageUnit, len(sorted))
	for _, id := range sorted {
		unit, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		units[id] = unit
	}

	return units, nil
}
