package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle aggregates line totals in SQL; an empty status yields an empty slice.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.created_at,
			COUNT(l.product_id),
			COALESCE(SUM(l.quantity_ordered), 0)::bigint,
			COALESCE(SUM(l.quantity_ordered * l.unit_price), 0)::bigint
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.status = ?
		GROUP BY o.id, o.customer_id, o.created_at
		ORDER BY o.created_at, o.id
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary OrderSummary
		var id, customerID uuid.UUID
		var totalAmount int64

		if err = rows.Scan(
			&id,
			&customerID,
			&summary.CreatedAt,
			&summary.LineCount,
			&summary.TotalQuantity,
			&totalAmount,
		); err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		summary.Status = query.Status().String()
		summary.TotalAmount = kernel.Money(totalAmount)
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
