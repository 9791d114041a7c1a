package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var resp GetOrderQueryResponse
	var id, customerID uuid.UUID
	var status int

	row := db.Raw(`
		SELECT
			id,
			customer_id,
			status,
			cancellation_reason,
			created_at,
			picking_started_at,
			picking_completed_at,
			completed_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&status,
		&resp.CancellationReason,
		&resp.CreatedAt,
		&resp.PickingStartedAt,
		&resp.PickingCompletedAt,
		&resp.CompletedAt,
		&resp.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status).String()

	rows, err := db.Raw(`
		SELECT
			product_id,
			product_name,
			sku,
			quantity_ordered,
			quantity_picked,
			unit_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	resp.Lines = make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var productID uuid.UUID
		var unitPrice int64

		if err = rows.Scan(
			&productID,
			&line.ProductName,
			&line.SKU,
			&line.QuantityOrdered,
			&line.QuantityPicked,
			&unitPrice,
		); err != nil {
			return GetOrderQueryResponse{}, err
		}

		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return GetOrderQueryResponse{}, err
		}
		line.UnitPrice = kernel.Money(unitPrice)
		line.Total = line.UnitPrice.Multiply(line.QuantityOrdered)

		resp.TotalQuantity += line.QuantityOrdered
		resp.TotalAmount += line.Total
		resp.Lines = append(resp.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}
