package controlorderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"manufacturing/internal/adapters/out/postgres/controlorderrepo"
	"manufacturing/internal/adapters/out/postgres/pgtest"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ControlOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *controlorderrepo.GormControlOrderRepository
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = controlorderrepo.NewGormControlOrderRepository(suite.database.DB, tracker)
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) add(
	typ controlorder.Type,
	number string,
	ws kernel.WorkstationID,
	productionOrderID kernel.UUID,
) *controlorder.ControlOrder {
	order, err := controlorder.FromDraft(kernel.NewUUID(), number, controlorder.Draft{
		Type:              typ,
		ProductionOrderID: productionOrderID,
		WorkstationID:     ws,
		ScheduleID:        "SCH-1",
		Priority:          kernel.PriorityMedium,
		TargetStart:       now,
		TargetCompletion:  now.Add(2 * time.Hour),
		Details: controlorder.Details{
			Instructions:             "Production Schedule:\n",
			QualityCheckpoints:       "Quality Checkpoints:\n",
			EstimatedDurationMinutes: 120,
		},
	}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), order))
	return order
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) TestLifecycleRoundTrip() {
	ctx := context.Background()
	order := suite.add(controlorder.Assembly, "ACO-0001", 3, kernel.NewUUID())

	suite.Require().NoError(order.Start(now))
	suite.Require().NoError(order.Complete(now.Add(125 * time.Minute)))
	suite.Require().NoError(order.UpdateShippingNotes("fragile", now))
	order.UpdateDefects(2, 1, true, now)
	suite.Require().NoError(suite.repository.Update(ctx, order))

	stored, err := suite.repository.GetByNumber(ctx, "ACO-0001")
	suite.Require().NoError(err)
	suite.Equal(controlorder.Assembly, stored.Type())
	suite.Equal(controlorder.Completed, stored.Status())
	suite.Require().NotNil(stored.ActualDurationMinutes())
	suite.Equal(125, *stored.ActualDurationMinutes())
	suite.True(now.Equal(stored.TargetStart()))
	suite.Equal("fragile", stored.Details().ShippingNotes)
	suite.Equal(120, stored.Details().EstimatedDurationMinutes)
	suite.Equal(2, stored.DefectsFound())
	suite.True(stored.ReworkRequired())
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) TestGet_Unknown() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ControlOrderRepositoryIntegrationTestSuite) TestFind() {
	ctx := context.Background()
	productionOrderID := kernel.NewUUID()
	active := suite.add(controlorder.Production, "PCO-0001", 1, productionOrderID)
	suite.Require().NoError(active.Start(now))
	suite.Require().NoError(suite.repository.Update(ctx, active))
	suite.add(controlorder.Production, "PCO-0002", 1, productionOrderID)
	suite.add(controlorder.Assembly, "ACO-0001", 3, kernel.NewUUID())

	ws := kernel.WorkstationID(1)
	inProgress := controlorder.InProgress
	assembly := controlorder.Assembly
	testCases := []struct {
		name   string
		filter ports.ControlOrderFilter
		want   []string
	}{
		{"active at workstation", ports.ControlOrderFilter{WorkstationID: &ws, Status: &inProgress}, []string{"PCO-0001"}},
		{"by production order", ports.ControlOrderFilter{ProductionOrderID: &productionOrderID}, []string{"PCO-0001", "PCO-0002"}},
		{"by type", ports.ControlOrderFilter{Type: &assembly}, []string{"ACO-0001"}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			orders, err := suite.repository.Find(ctx, tc.filter)
			suite.Require().NoError(err)

			numbers := make([]string, 0, len(orders))
			for _, o := range orders {
				numbers = append(numbers, o.Number())
			}
			suite.ElementsMatch(tc.want, numbers)
		})
	}
}

func TestControlOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ControlOrderRepositoryIntegrationTestSuite))
}
