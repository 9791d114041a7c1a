// Package http exposes the fulfillment use cases over a JSON API mounted
// under /api/v1.
package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/labstack/echo/v4"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	startPickingHandler interface {
		Handle(ctx context.Context, cmd commands.StartPickingCommand) (*picking.Task, error)
	}
	completePickingHandler interface {
		Handle(ctx context.Context, cmd commands.CompletePickingCommand) error
	}
	cancelPickingHandler interface {
		Handle(ctx context.Context, cmd commands.CancelPickingCommand) error
	}
	completeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) error
	}
	claimPickingTaskHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimPickingTaskCommand) error
	}
	recordItemPickedHandler interface {
		Handle(ctx context.Context, cmd commands.RecordItemPickedCommand) error
	}
	addStorageUnitHandler interface {
		Handle(ctx context.Context, cmd commands.AddStorageUnitCommand) error
	}
	restockStorageUnitHandler interface {
		Handle(ctx context.Context, cmd commands.RestockStorageUnitCommand) error
	}
	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	getOrdersByStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderSummary, error)
	}
	getPickingTaskHandler interface {
		Handle(ctx context.Context, query queries.GetPickingTaskQuery) (queries.GetPickingTaskQueryResponse, error)
	}
	getLowStockUnitsHandler interface {
		Handle(ctx context.Context, query queries.GetLowStockUnitsQuery) ([]queries.LowStockUnit, error)
	}
)

// Handlers groups the use cases the API dispatches to. Every field is required.
type Handlers struct {
	CreateOrder        createOrderHandler
	StartPicking       startPickingHandler
	CompletePicking    completePickingHandler
	CancelPicking      cancelPickingHandler
	CompleteOrder      completeOrderHandler
	ClaimPickingTask   claimPickingTaskHandler
	RecordItemPicked   recordItemPickedHandler
	AddStorageUnit     addStorageUnitHandler
	RestockStorageUnit restockStorageUnitHandler

	GetOrder          getOrderHandler
	GetOrdersByStatus getOrdersByStatusHandler
	GetPickingTask    getPickingTaskHandler
	GetLowStockUnits  getLowStockUnitsHandler
}

// Server translates HTTP requests into commands and queries and maps their
// errors to status codes.
type Server struct {
	handlers          Handlers
	lowStockThreshold int
}

// NewServer creates a server. lowStockThreshold is used by
// GET /storage-units/low-stock when the request has no threshold parameter.
func NewServer(handlers Handlers, lowStockThreshold int) *Server {
	return &Server{handlers: handlers, lowStockThreshold: lowStockThreshold}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/picking", s.StartPicking)
	api.POST("/orders/:id/picking/complete", s.CompletePicking)
	api.POST("/orders/:id/cancel", s.CancelPicking)
	api.POST("/orders/:id/complete", s.CompleteOrder)

	api.GET("/picking-tasks/:id", s.GetPickingTask)
	api.POST("/picking-tasks/:id/claim", s.ClaimPickingTask)
	api.PUT("/picking-tasks/:id/items/:unitId", s.RecordItemPicked)

	api.POST("/storage-units", s.AddStorageUnit)
	api.POST("/storage-units/:id/restock", s.RestockStorageUnit)
	api.GET("/storage-units/low-stock", s.GetLowStockUnits)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "OK")
}
