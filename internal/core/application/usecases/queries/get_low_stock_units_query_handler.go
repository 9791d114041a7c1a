package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLowStockUnitsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockUnitsQueryHandler(db *gorm.DB) GetLowStockUnitsQueryHandler {
	return GetLowStockUnitsQueryHandler{db: db}
}

// Handle returns the scarcest units first, then by location.
func (h GetLowStockUnitsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockUnitsQuery,
) ([]LowStockUnit, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	units := make([]LowStockUnit, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			sku,
			location_code,
			zone,
			quantity,
			reserved,
			last_restocked_at
		FROM storage_units
		WHERE quantity - reserved <= ?
		ORDER BY quantity - reserved, location_code, id
	`, query.Threshold()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var unit LowStockUnit
		var id, productID uuid.UUID

		if err = rows.Scan(
			&id,
			&productID,
			&unit.ProductName,
			&unit.SKU,
			&unit.LocationCode,
			&unit.Zone,
			&unit.Quantity,
			&unit.Reserved,
			&unit.LastRestockedAt,
		); err != nil {
			return nil, err
		}

		if unit.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if unit.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		unit.Available = unit.Quantity - unit.Reserved
		units = append(units, unit)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}
