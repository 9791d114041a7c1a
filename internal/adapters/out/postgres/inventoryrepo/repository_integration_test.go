package inventoryrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var restockedAt = time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)

type StorageUnitRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormStorageUnitRepository
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.StorageUnitDTO{}))
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE storage_units").Error)
	suite.repository = inventoryrepo.NewGormStorageUnitRepository(suite.db)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestAdd_PersistsUnit() {
	ctx := context.Background()
	unit := suite.addUnit(suite.product("P"), "A-01", 10, 3)

	retrieved, err := suite.repository.Get(ctx, unit.ID())
	suite.Require().NoError(err)
	suite.Equal("A-01", retrieved.LocationCode())
	suite.Equal("A", retrieved.Zone())
	suite.Equal(10, retrieved.Quantity())
	suite.Equal(3, retrieved.Reserved())
	suite.Equal(7, retrieved.Available())
	suite.Equal("P", retrieved.Product().SKU())
	suite.True(restockedAt.Equal(retrieved.LastRestockedAt()))
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestAdd_SameProductAndLocation_ReturnsInvalidValue() {
	ctx := context.Background()
	product := suite.product("P")
	suite.addUnit(product, "A-01", 1, 0)

	duplicate, err := inventory.NewStorageUnit(kernel.NewUUID(), product, "A-01", "A", 5, restockedAt)
	suite.Require().NoError(err)

	suite.Require().ErrorIs(suite.repository.Add(ctx, duplicate), errs.ErrValueIsInvalid)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestReserve_ConditionalOnAvailableStock() {
	ctx := context.Background()
	unit := suite.addUnit(suite.product("P"), "A-01", 5, 2)

	suite.Require().NoError(suite.repository.Reserve(ctx, unit.ID(), 3))
	suite.assertCounters(unit.ID(), 5, 5)

	err := suite.repository.Reserve(ctx, unit.ID(), 1)
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)
	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(unit.Product().ID().String(), stockErr.ProductID)
	suite.Equal(0, stockErr.Available)
	suite.assertCounters(unit.ID(), 5, 5)

	suite.Require().ErrorIs(suite.repository.Reserve(ctx, kernel.NewUUID(), 1), errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Reserve(ctx, unit.ID(), 0), errs.ErrValueIsOutOfRange)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestReleaseReservation_ConditionalOnReservedStock() {
	ctx := context.Background()
	unit := suite.addUnit(suite.product("P"), "A-01", 5, 2)

	suite.Require().ErrorIs(suite.repository.ReleaseReservation(ctx, unit.ID(), 3), errs.ErrInvalidRelease)
	suite.assertCounters(unit.ID(), 5, 2)

	suite.Require().NoError(suite.repository.ReleaseReservation(ctx, unit.ID(), 2))
	suite.assertCounters(unit.ID(), 5, 0)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestPick_DeductsReservationAndQuantity() {
	ctx := context.Background()
	unit := suite.addUnit(suite.product("P"), "A-01", 5, 3)

	suite.Require().NoError(suite.repository.Pick(ctx, unit.ID(), 2))
	suite.assertCounters(unit.ID(), 3, 1)

	err := suite.repository.Pick(ctx, unit.ID(), 2)
	suite.Require().ErrorIs(err, errs.ErrInsufficientReservation)
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)
	suite.assertCounters(unit.ID(), 3, 1)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestGetAvailableForUpdate_FiltersAndOrdersByID() {
	ctx := context.Background()
	p, q, other := suite.product("P"), suite.product("Q"), suite.product("R")
	a := suite.addUnit(p, "A-01", 5, 0)
	b := suite.addUnit(p, "A-02", 4, 4)
	c := suite.addUnit(q, "B-01", 1, 0)
	suite.addUnit(other, "C-01", 9, 0)

	var units []*inventory.StorageUnit
	err := suite.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		units, txErr = inventoryrepo.NewGormStorageUnitRepository(tx).
			GetAvailableForUpdate(ctx, []kernel.UUID{p.ID(), q.ID()})
		return txErr
	})
	suite.Require().NoError(err)

	suite.Require().Len(units, 2, "exhausted units and other products are skipped")
	for i := 1; i < len(units); i++ {
		suite.Negative(units[i-1].ID().Compare(units[i].ID()))
	}
	ids := []kernel.UUID{units[0].ID(), units[1].ID()}
	suite.Contains(ids, a.ID())
	suite.Contains(ids, c.ID())
	suite.NotContains(ids, b.ID())

	empty, err := suite.repository.GetAvailableForUpdate(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestUpdate_PersistsRestock() {
	ctx := context.Background()
	unit := suite.addUnit(suite.product("P"), "A-01", 2, 1)
	later := restockedAt.Add(24 * time.Hour)
	suite.Require().NoError(unit.Restock(8, later))

	suite.Require().NoError(suite.repository.Update(ctx, unit))

	retrieved, err := suite.repository.Get(ctx, unit.ID())
	suite.Require().NoError(err)
	suite.Equal(10, retrieved.Quantity())
	suite.Equal(1, retrieved.Reserved())
	suite.True(later.Equal(retrieved.LastRestockedAt()))
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) TestSchema_RejectsOverReservation() {
	unit := suite.addUnit(suite.product("P"), "A-01", 2, 0)

	err := suite.db.Exec("UPDATE storage_units SET reserved = quantity + 1 WHERE id = ?", unit.ID().Bytes()).Error

	suite.Require().Error(err)
	suite.True(pgerr.IsCheckViolation(err, "chk_storage_units_reserved"))
	suite.assertCounters(unit.ID(), 2, 0)
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) product(sku string) kernel.Product {
	p, err := kernel.NewProduct(kernel.NewUUID(), "Product "+sku, sku)
	suite.Require().NoError(err)
	return p
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) addUnit(
	product kernel.Product, location string, quantity, reserved int,
) *inventory.StorageUnit {
	unit, err := inventory.RestoreStorageUnit(kernel.NewUUID(), product, location, "A", quantity, reserved, restockedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), unit))
	return unit
}

func (suite *StorageUnitRepositoryIntegrationTestSuite) assertCounters(id kernel.UUID, quantity, reserved int) {
	unit, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal(quantity, unit.Quantity(), "quantity")
	suite.Equal(reserved, unit.Reserved(), "reserved")
}

func TestStorageUnitRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StorageUnitRepositoryIntegrationTestSuite))
}
