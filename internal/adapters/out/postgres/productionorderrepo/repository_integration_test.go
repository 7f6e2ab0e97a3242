package productionorderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"manufacturing/internal/adapters/out/postgres/pgtest"
	"manufacturing/internal/adapters/out/postgres/productionorderrepo"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ProductionOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *productionorderrepo.GormProductionOrderRepository
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = productionorderrepo.NewGormProductionOrderRepository(suite.database.DB, tracker)
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) add(number string, warehouseOrderID *kernel.UUID) *productionorder.ProductionOrder {
	order, err := productionorder.NewProductionOrder(
		kernel.NewUUID(), number, kernel.NewUUID(), warehouseOrderID,
		kernel.PriorityHigh, now.Add(7*24*time.Hour), 7, 6, "cascade", now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), order))
	return order
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) submit(order *productionorder.ProductionOrder, scheduleID string) {
	completion := now.Add(3 * time.Hour)
	suite.Require().NoError(order.MarkSubmitted(scheduleID, 180, &completion, now))
	suite.Require().NoError(suite.repository.Update(context.Background(), order))
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) TestRoundTrip() {
	ctx := context.Background()
	warehouseOrderID := kernel.NewUUID()
	order := suite.add("PO-000001", &warehouseOrderID)
	suite.submit(order, "SCH-42")

	stored, err := suite.repository.GetByNumber(ctx, "PO-000001")

	suite.Require().NoError(err)
	suite.Equal(order.Snapshot().CustomerOrderID, stored.CustomerOrderID())
	suite.Require().NotNil(stored.WarehouseOrderID())
	suite.True(warehouseOrderID.IsEqual(*stored.WarehouseOrderID()))
	suite.Equal(kernel.PriorityHigh, stored.Priority())
	suite.Equal(productionorder.Submitted, stored.Status())
	suite.Equal("SCH-42", stored.ScheduleID())
	suite.Equal(180, stored.EstimatedDurationMinutes())
	suite.Require().NotNil(stored.ExpectedCompletion())
	suite.True(now.Add(3 * time.Hour).Equal(*stored.ExpectedCompletion()))
	suite.Equal(kernel.WorkstationID(6), stored.AssignedWorkstationID())
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) TestFindInFlight() {
	ctx := context.Background()
	suite.add("PO-000001", nil)
	submitted := suite.add("PO-000002", nil)
	suite.submit(submitted, "SCH-2")
	completed := suite.add("PO-000003", nil)
	suite.submit(completed, "SCH-3")
	suite.Require().NoError(completed.Complete(now))
	suite.Require().NoError(suite.repository.Update(ctx, completed))

	orders, err := suite.repository.FindInFlight(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("PO-000002", orders[0].Number())
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) TestFindAwaitingSynthesis() {
	ctx := context.Background()
	pending := suite.add("PO-000001", nil)
	suite.submit(pending, "SCH-1")
	done := suite.add("PO-000002", nil)
	suite.submit(done, "SCH-2")
	suite.Require().NoError(done.MarkControlOrdersSynthesized(now))
	suite.Require().NoError(suite.repository.Update(ctx, done))

	orders, err := suite.repository.FindAwaitingSynthesis(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("PO-000001", orders[0].Number())
}

func (suite *ProductionOrderRepositoryIntegrationTestSuite) TestFind_ByWarehouseOrder() {
	ctx := context.Background()
	warehouseOrderID := kernel.NewUUID()
	suite.add("PO-000001", &warehouseOrderID)
	suite.add("PO-000002", nil)

	orders, err := suite.repository.Find(ctx, ports.ProductionOrderFilter{WarehouseOrderID: &warehouseOrderID})

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal("PO-000001", orders[0].Number())
}

func TestProductionOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductionOrderRepositoryIntegrationTestSuite))
}
