package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	customerID, err := bodyID("customer_id", req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}

	lines := make([]commands.OrderLineRequest, len(req.Lines))
	for i, l := range req.Lines {
		productID, idErr := bodyID("product_id", l.ProductID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		lines[i] = commands.OrderLineRequest{ProductID: productID, Quantity: l.Quantity}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// GetOrders handles GET /api/v1/orders?status=Received. Status defaults to Received.
func (s *Server) GetOrders(ctx echo.Context) error {
	status := order.Received
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.ParseStatus(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		status = parsed
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return writeError(ctx, err)
	}

	summaries, err := s.handlers.GetOrdersByStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummary, len(summaries))
	for i, o := range summaries {
		response[i] = OrderSummary{
			ID:            o.ID.Bytes(),
			CustomerID:    o.CustomerID.Bytes(),
			Status:        o.Status,
			LineCount:     o.LineCount,
			TotalQuantity: o.TotalQuantity,
			TotalAmount:   int64(o.TotalAmount),
			CreatedAt:     o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartPicking handles POST /api/v1/orders/:id/picking and returns the new task.
func (s *Server) StartPicking(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req StartPicking
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	var pickerID *kernel.UUID
	if req.PickerID != nil {
		id, idErr := bodyID("picker_id", *req.PickerID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		pickerID = &id
	}

	cmd, err := commands.NewStartPickingCommand(orderID, pickerID, req.Zone)
	if err != nil {
		return writeError(ctx, err)
	}

	task, err := s.handlers.StartPicking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, pickingTaskFromDomain(task))
}

// CompletePicking handles POST /api/v1/orders/:id/picking/complete.
func (s *Server) CompletePicking(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req CompletePicking
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	picked := make(map[kernel.UUID]int, len(req.PickedQuantities))
	for rawID, qty := range req.PickedQuantities {
		productID, idErr := kernel.UUIDFromString(rawID)
		if idErr != nil {
			return badRequest(ctx, "picked_quantities", idErr)
		}
		picked[productID] = qty
	}

	cmd, err := commands.NewCompletePickingCommand(orderID, picked)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompletePicking.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelPicking handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelPicking(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req CancelPicking
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewCancelPickingCommand(orderID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelPicking.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
