package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	catalog    ports.ProductCatalog
	clock      clock.Clock
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	catalog ports.ProductCatalog,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		catalog:    catalog,
		clock:      clock.NewSystem(),
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pickingUoWFactory() commands.PickingUoWFactory {
	return FuncPickingUoWFactory(func() commands.PickingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog, c.clock)
}

func (c *CompositionRoot) CreateStartPickingCommandHandler() commands.StartPickingCommandHandler {
	return commands.NewStartPickingCommandHandler(c.fulfillmentUoWFactory(), services.NewAllocationPlanner(), c.clock)
}

func (c *CompositionRoot) CreateCompletePickingCommandHandler() commands.CompletePickingCommandHandler {
	return commands.NewCompletePickingCommandHandler(c.fulfillmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelPickingCommandHandler() commands.CancelPickingCommandHandler {
	return commands.NewCancelPickingCommandHandler(c.fulfillmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateClaimPickingTaskCommandHandler() commands.ClaimPickingTaskCommandHandler {
	return commands.NewClaimPickingTaskCommandHandler(c.pickingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRecordItemPickedCommandHandler() commands.RecordItemPickedCommandHandler {
	return commands.NewRecordItemPickedCommandHandler(c.pickingUoWFactory())
}

func (c *CompositionRoot) CreateAddStorageUnitCommandHandler() commands.AddStorageUnitCommandHandler {
	return commands.NewAddStorageUnitCommandHandler(c.inventoryUoWFactory(), c.catalog, c.clock)
}

func (c *CompositionRoot) CreateRestockStorageUnitCommandHandler() commands.RestockStorageUnitCommandHandler {
	return commands.NewRestockStorageUnitCommandHandler(c.inventoryUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickingTaskQueryHandler() queries.GetPickingTaskQueryHandler {
	return queries.NewGetPickingTaskQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockUnitsQueryHandler() queries.GetLowStockUnitsQueryHandler {
	return queries.NewGetLowStockUnitsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the inbound API.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		StartPicking:       c.CreateStartPickingCommandHandler(),
		CompletePicking:    c.CreateCompletePickingCommandHandler(),
		CancelPicking:      c.CreateCancelPickingCommandHandler(),
		CompleteOrder:      c.CreateCompleteOrderCommandHandler(),
		ClaimPickingTask:   c.CreateClaimPickingTaskCommandHandler(),
		RecordItemPicked:   c.CreateRecordItemPickedCommandHandler(),
		AddStorageUnit:     c.CreateAddStorageUnitCommandHandler(),
		RestockStorageUnit: c.CreateRestockStorageUnitCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		GetOrdersByStatus:  c.CreateGetOrdersByStatusQueryHandler(),
		GetPickingTask:     c.CreateGetPickingTaskQueryHandler(),
		GetLowStockUnits:   c.CreateGetLowStockUnitsQueryHandler(),
	}, c.config.LowStockThreshold)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewLowStockReportJob(
			c.CreateGetLowStockUnitsQueryHandler(),
			c.config.LowStockThreshold,
			c.config.LowStockSchedule,
			c.logger,
		),
		jobs.NewBacklogReportJob(
			c.CreateGetOrdersByStatusQueryHandler(),
			c.config.BacklogSchedule,
			c.clock,
			c.logger,
		),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPickingUoWFactory func() commands.PickingUoW

func (f FuncPickingUoWFactory) Create() commands.PickingUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
