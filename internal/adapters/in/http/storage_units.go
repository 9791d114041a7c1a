package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// AddStorageUnit handles POST /api/v1/storage-units.
func (s *Server) AddStorageUnit(ctx echo.Context) error {
	var req NewStorageUnit
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	productID, err := bodyID("product_id", req.ProductID)
	if err != nil {
		return writeError(ctx, err)
	}

	unitID := kernel.NewUUID()
	cmd, err := commands.NewAddStorageUnitCommand(unitID, productID, req.LocationCode, req.Zone, req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AddStorageUnit.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: unitID.Bytes()})
}

// RestockStorageUnit handles POST /api/v1/storage-units/:id/restock.
func (s *Server) RestockStorageUnit(ctx echo.Context) error {
	unitID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req Restock
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewRestockStorageUnitCommand(unitID, req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RestockStorageUnit.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLowStockUnits handles GET /api/v1/storage-units/low-stock?threshold=N.
func (s *Server) GetLowStockUnits(ctx echo.Context) error {
	threshold, err := queryInt(ctx, "threshold", s.lowStockThreshold)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetLowStockUnitsQuery(threshold)
	if err != nil {
		return writeError(ctx, err)
	}

	units, err := s.handlers.GetLowStockUnits.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]LowStockUnit, len(units))
	for i, u := range units {
		response[i] = LowStockUnit{
			ID:              u.ID.Bytes(),
			ProductID:       u.ProductID.Bytes(),
			ProductName:     u.ProductName,
			SKU:             u.SKU,
			LocationCode:    u.LocationCode,
			Zone:            u.Zone,
			Quantity:        u.Quantity,
			Reserved:        u.Reserved,
			Available:       u.Available,
			LastRestockedAt: u.LastRestockedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
