package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"manufacturing/internal/core/application/usecases/queries"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type MockCustomerOrderReader struct {
	mock.Mock
}

func (m *MockCustomerOrderReader) Get(ctx context.Context, id kernel.UUID) (*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*customerorder.CustomerOrder)
	return order, args.Error(1)
}

func (m *MockCustomerOrderReader) GetByNumber(ctx context.Context, number string) (*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, number)
	order, _ := args.Get(0).(*customerorder.CustomerOrder)
	return order, args.Error(1)
}

func (m *MockCustomerOrderReader) Find(ctx context.Context, filter ports.CustomerOrderFilter) ([]*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*customerorder.CustomerOrder)
	return orders, args.Error(1)
}

type MockControlOrderFinder struct {
	mock.Mock
}

func (m *MockControlOrderFinder) Find(ctx context.Context, filter ports.ControlOrderFilter) ([]*controlorder.ControlOrder, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*controlorder.ControlOrder)
	return orders, args.Error(1)
}

type MockScheduler struct {
	ports.Scheduler
	mock.Mock
}

func (m *MockScheduler) GetSchedule(ctx context.Context, scheduleID string) (schedule.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(schedule.Schedule), args.Error(1)
}

func customerOrder(t *testing.T) *customerorder.CustomerOrder {
	t.Helper()
	item, err := customerorder.NewItem("PRODUCT_VARIANT", 1, 10, "")
	require.NoError(t, err)
	order, err := customerorder.NewCustomerOrder(kernel.NewUUID(), "ORD-000001", 7,
		[]*customerorder.Item{item}, "", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return order
}

func TestGetOrderQuery(t *testing.T) {
	t.Run("should require a number", func(t *testing.T) {
		_, err := queries.NewGetOrderByNumberQuery("  ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should refuse a zero value", func(t *testing.T) {
		var query queries.GetOrderQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("should look up by id", func(t *testing.T) {
		ctx := t.Context()
		order := customerOrder(t)
		reader := new(MockCustomerOrderReader)
		reader.On("Get", ctx, order.ID()).Return(order, nil).Once()

		query, err := queries.NewGetOrderByIDQuery(order.ID())
		require.NoError(t, err)
		h := queries.NewGetOrderQueryHandler[*customerorder.CustomerOrder](reader)
		got, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Same(t, order, got)
		reader.AssertExpectations(t)
	})

	t.Run("should look up by number", func(t *testing.T) {
		ctx := t.Context()
		order := customerOrder(t)
		reader := new(MockCustomerOrderReader)
		reader.On("GetByNumber", ctx, "ORD-000001").Return(order, nil).Once()

		query, err := queries.NewGetOrderByNumberQuery(" ORD-000001 ")
		require.NoError(t, err)
		h := queries.NewGetOrderQueryHandler[*customerorder.CustomerOrder](reader)
		got, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "ORD-000001", got.Number())
		reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("should pass not found through", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockCustomerOrderReader)
		reader.On("GetByNumber", ctx, "ORD-999999").
			Return(nil, errs.NewObjectNotFoundError("orderNumber", "ORD-999999")).Once()

		query, _ := queries.NewGetOrderByNumberQuery("ORD-999999")
		h := queries.NewGetOrderQueryHandler[*customerorder.CustomerOrder](reader)
		_, err := h.Handle(ctx, query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	t.Run("should parse the filter", func(t *testing.T) {
		ctx := t.Context()
		ws := kernel.WorkstationID(7)
		reader := new(MockCustomerOrderReader)
		reader.On("Find", ctx, mock.MatchedBy(func(f ports.CustomerOrderFilter) bool {
			return f.WorkstationID != nil && *f.WorkstationID == 7 &&
				f.Status != nil && *f.Status == customerorder.Processing
		})).Return([]*customerorder.CustomerOrder{customerOrder(t)}, nil).Once()

		query, err := queries.NewCustomerOrdersQuery(&ws, "processing")
		require.NoError(t, err)
		h := queries.NewListOrdersQueryHandler[*customerorder.CustomerOrder, ports.CustomerOrderFilter](reader)
		orders, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.Len(t, orders, 1)
		reader.AssertExpectations(t)
	})

	t.Run("should return an empty slice when nothing matches", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockCustomerOrderReader)
		reader.On("Find", ctx, ports.CustomerOrderFilter{}).Return(nil, nil).Once()

		query, err := queries.NewCustomerOrdersQuery(nil, "")
		require.NoError(t, err)
		h := queries.NewListOrdersQueryHandler[*customerorder.CustomerOrder, ports.CustomerOrderFilter](reader)
		orders, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("should narrow active control orders to IN_PROGRESS", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockControlOrderFinder)
		reader.On("Find", ctx, mock.MatchedBy(func(f ports.ControlOrderFilter) bool {
			return f.Status != nil && *f.Status == controlorder.InProgress &&
				f.WorkstationID != nil && *f.WorkstationID == 3 && f.Type == nil
		})).Return([]*controlorder.ControlOrder{}, nil).Once()

		query, err := queries.NewActiveControlOrdersQuery(3)
		require.NoError(t, err)
		h := queries.NewListOrdersQueryHandler[*controlorder.ControlOrder, ports.ControlOrderFilter](reader)
		_, err = h.Handle(ctx, query)

		require.NoError(t, err)
		reader.AssertExpectations(t)
	})

	t.Run("should reject unknown statuses and types", func(t *testing.T) {
		_, err := queries.NewControlOrdersQuery("INSPECTION", nil, "DONE", nil)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGetScheduledTasksQueryHandler_Handle(t *testing.T) {
	t.Run("should return the scheduled tasks", func(t *testing.T) {
		ctx := t.Context()
		scheduler := new(MockScheduler)
		scheduler.On("GetSchedule", ctx, "SCH-1").Return(schedule.Schedule{
			ID:    "SCH-1",
			Tasks: []schedule.Task{{TaskID: "T1", WorkstationID: "WS-1"}},
		}, nil).Once()

		query, err := queries.NewGetScheduledTasksQuery("SCH-1")
		require.NoError(t, err)
		tasks, err := queries.NewGetScheduledTasksQueryHandler(scheduler, zap.NewNop()).Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "T1", tasks[0].TaskID)
	})

	t.Run("should swallow scheduler failures", func(t *testing.T) {
		ctx := t.Context()
		scheduler := new(MockScheduler)
		scheduler.On("GetSchedule", ctx, "SCH-1").
			Return(schedule.Schedule{}, errs.NewSchedulerIntegrationErrorWithCause("get schedule", errors.New("refused"))).Once()

		query, _ := queries.NewGetScheduledTasksQuery("SCH-1")
		tasks, err := queries.NewGetScheduledTasksQueryHandler(scheduler, zap.NewNop()).Handle(ctx, query)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}
