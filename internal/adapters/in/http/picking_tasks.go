package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetPickingTask handles GET /api/v1/picking-tasks/:id.
func (s *Server) GetPickingTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPickingTaskQuery(taskID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetPickingTask.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pickingTaskFromView(view))
}

// ClaimPickingTask handles POST /api/v1/picking-tasks/:id/claim.
func (s *Server) ClaimPickingTask(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var req ClaimPickingTask
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	pickerID, err := bodyID("picker_id", req.PickerID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimPickingTaskCommand(taskID, pickerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ClaimPickingTask.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordItemPicked handles PUT /api/v1/picking-tasks/:id/items/:unitId.
// The body carries the total picked so far for the item, not a delta.
func (s *Server) RecordItemPicked(ctx echo.Context) error {
	taskID, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	unitID, err := pathID(ctx, "unitId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req RecordItemPicked
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewRecordItemPickedCommand(taskID, unitID, req.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RecordItemPicked.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
