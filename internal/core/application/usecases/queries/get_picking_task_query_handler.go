package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPickingTaskQueryHandler struct {
	db *gorm.DB
}

func NewGetPickingTaskQueryHandler(db *gorm.DB) GetPickingTaskQueryHandler {
	return GetPickingTaskQueryHandler{db: db}
}

func (h GetPickingTaskQueryHandler) Handle(
	ctx context.Context,
	query GetPickingTaskQuery,
) (GetPickingTaskQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPickingTaskQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var resp GetPickingTaskQueryResponse
	var id, orderID uuid.UUID
	var pickerID *uuid.UUID
	var status int

	err := db.Raw(`
		SELECT
			id,
			order_id,
			picker_id,
			status,
			zone,
			created_at,
			started_at,
			completed_at,
			cancelled_at
		FROM picking_tasks
		WHERE id = ?
	`, query.TaskID().Bytes()).Row().Scan(
		&id,
		&orderID,
		&pickerID,
		&status,
		&resp.Zone,
		&resp.CreatedAt,
		&resp.StartedAt,
		&resp.CompletedAt,
		&resp.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetPickingTaskQueryResponse{}, errs.NewObjectNotFoundError("picking task", query.TaskID())
		}
		return GetPickingTaskQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetPickingTaskQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetPickingTaskQueryResponse{}, err
	}
	if pickerID != nil {
		picker, pickerErr := kernel.UUIDFromBytes(pickerID[:])
		if pickerErr != nil {
			return GetPickingTaskQueryResponse{}, pickerErr
		}
		resp.PickerID = &picker
	}
	resp.Status = picking.Status(status).String()

	rows, err := db.Raw(`
		SELECT
			storage_unit_id,
			product_id,
			product_name,
			sku,
			location_code,
			barcode,
			quantity_required,
			quantity_picked
		FROM picking_items
		WHERE task_id = ?
		ORDER BY position
	`, query.TaskID().Bytes()).Rows()
	if err != nil {
		return GetPickingTaskQueryResponse{}, err
	}
	defer rows.Close()

	resp.Items = make([]PickingItemView, 0)
	picked := 0
	for rows.Next() {
		var item PickingItemView
		var unitID, productID uuid.UUID

		if err = rows.Scan(
			&unitID,
			&productID,
			&item.ProductName,
			&item.SKU,
			&item.LocationCode,
			&item.Barcode,
			&item.QuantityRequired,
			&item.QuantityPicked,
		); err != nil {
			return GetPickingTaskQueryResponse{}, err
		}

		if item.StorageUnitID, err = kernel.UUIDFromBytes(unitID[:]); err != nil {
			return GetPickingTaskQueryResponse{}, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return GetPickingTaskQueryResponse{}, err
		}
		item.Picked = item.QuantityPicked >= item.QuantityRequired
		if item.Picked {
			picked++
		}
		resp.Items = append(resp.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetPickingTaskQueryResponse{}, err
	}

	if len(resp.Items) > 0 {
		resp.Progress = picked * 100 / len(resp.Items)
	}

	return resp, nil
}
