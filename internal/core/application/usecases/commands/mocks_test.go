package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

var fixedClock = ports.ClockFunc(func() time.Time { return fixedNow })

// MockUoW implements every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) CustomerOrderRepository() ports.CustomerOrderRepository {
	return m.Called().Get(0).(ports.CustomerOrderRepository)
}

func (m *MockUoW) WarehouseOrderRepository() ports.WarehouseOrderRepository {
	return m.Called().Get(0).(ports.WarehouseOrderRepository)
}

func (m *MockUoW) ProductionOrderRepository() ports.ProductionOrderRepository {
	return m.Called().Get(0).(ports.ProductionOrderRepository)
}

func (m *MockUoW) ControlOrderRepository() ports.ControlOrderRepository {
	return m.Called().Get(0).(ports.ControlOrderRepository)
}

func (m *MockUoW) SupplyOrderRepository() ports.SupplyOrderRepository {
	return m.Called().Get(0).(ports.SupplyOrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockProductionOrderUoWFactory struct{ mock.Mock }

func (m *MockProductionOrderUoWFactory) Create() commands.ProductionOrderUoW {
	return m.Called().Get(0).(commands.ProductionOrderUoW)
}

type MockControlOrderUoWFactory struct{ mock.Mock }

func (m *MockControlOrderUoWFactory) Create() commands.ControlOrderUoW {
	return m.Called().Get(0).(commands.ControlOrderUoW)
}

type MockSupplyOrderUoWFactory struct{ mock.Mock }

func (m *MockSupplyOrderUoWFactory) Create() commands.SupplyOrderUoW {
	return m.Called().Get(0).(commands.SupplyOrderUoW)
}

type MockCustomerOrderRepository struct{ mock.Mock }

func (m *MockCustomerOrderRepository) Add(ctx context.Context, o *customerorder.CustomerOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockCustomerOrderRepository) Update(ctx context.Context, o *customerorder.CustomerOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockCustomerOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerOrderRepository) Get(ctx context.Context, id kernel.UUID) (*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*customerorder.CustomerOrder)
	return o, args.Error(1)
}

func (m *MockCustomerOrderRepository) GetByNumber(ctx context.Context, number string) (*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*customerorder.CustomerOrder)
	return o, args.Error(1)
}

func (m *MockCustomerOrderRepository) Find(ctx context.Context, f ports.CustomerOrderFilter) ([]*customerorder.CustomerOrder, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]*customerorder.CustomerOrder)
	return o, args.Error(1)
}

type MockWarehouseOrderRepository struct{ mock.Mock }

func (m *MockWarehouseOrderRepository) Add(ctx context.Context, o *warehouseorder.WarehouseOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockWarehouseOrderRepository) Update(ctx context.Context, o *warehouseorder.WarehouseOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockWarehouseOrderRepository) Get(ctx context.Context, id kernel.UUID) (*warehouseorder.WarehouseOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*warehouseorder.WarehouseOrder)
	return o, args.Error(1)
}

func (m *MockWarehouseOrderRepository) GetByNumber(ctx context.Context, number string) (*warehouseorder.WarehouseOrder, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*warehouseorder.WarehouseOrder)
	return o, args.Error(1)
}

func (m *MockWarehouseOrderRepository) ExistsForCustomerOrder(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseOrderRepository) Find(ctx context.Context, f ports.WarehouseOrderFilter) ([]*warehouseorder.WarehouseOrder, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]*warehouseorder.WarehouseOrder)
	return o, args.Error(1)
}

type MockProductionOrderRepository struct{ mock.Mock }

func (m *MockProductionOrderRepository) Add(ctx context.Context, o *productionorder.ProductionOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockProductionOrderRepository) Update(ctx context.Context, o *productionorder.ProductionOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*productionorder.ProductionOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*productionorder.ProductionOrder)
	return o, args.Error(1)
}

func (m *MockProductionOrderRepository) GetByNumber(ctx context.Context, number string) (*productionorder.ProductionOrder, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*productionorder.ProductionOrder)
	return o, args.Error(1)
}

func (m *MockProductionOrderRepository) Find(ctx context.Context, f ports.ProductionOrderFilter) ([]*productionorder.ProductionOrder, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]*productionorder.ProductionOrder)
	return o, args.Error(1)
}

func (m *MockProductionOrderRepository) FindInFlight(ctx context.Context) ([]*productionorder.ProductionOrder, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]*productionorder.ProductionOrder)
	return o, args.Error(1)
}

func (m *MockProductionOrderRepository) FindAwaitingSynthesis(ctx context.Context) ([]*productionorder.ProductionOrder, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]*productionorder.ProductionOrder)
	return o, args.Error(1)
}

type MockControlOrderRepository struct{ mock.Mock }

func (m *MockControlOrderRepository) Add(ctx context.Context, o *controlorder.ControlOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockControlOrderRepository) Update(ctx context.Context, o *controlorder.ControlOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockControlOrderRepository) Get(ctx context.Context, id kernel.UUID) (*controlorder.ControlOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*controlorder.ControlOrder)
	return o, args.Error(1)
}

func (m *MockControlOrderRepository) GetByNumber(ctx context.Context, number string) (*controlorder.ControlOrder, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*controlorder.ControlOrder)
	return o, args.Error(1)
}

func (m *MockControlOrderRepository) Find(ctx context.Context, f ports.ControlOrderFilter) ([]*controlorder.ControlOrder, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]*controlorder.ControlOrder)
	return o, args.Error(1)
}

type MockSupplyOrderRepository struct{ mock.Mock }

func (m *MockSupplyOrderRepository) Add(ctx context.Context, o *supplyorder.SupplyOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockSupplyOrderRepository) Update(ctx context.Context, o *supplyorder.SupplyOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockSupplyOrderRepository) Get(ctx context.Context, id kernel.UUID) (*supplyorder.SupplyOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*supplyorder.SupplyOrder)
	return o, args.Error(1)
}

func (m *MockSupplyOrderRepository) GetByNumber(ctx context.Context, number string) (*supplyorder.SupplyOrder, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*supplyorder.SupplyOrder)
	return o, args.Error(1)
}

func (m *MockSupplyOrderRepository) Find(ctx context.Context, f ports.SupplyOrderFilter) ([]*supplyorder.SupplyOrder, error) {
	args := m.Called(ctx, f)
	o, _ := args.Get(0).([]*supplyorder.SupplyOrder)
	return o, args.Error(1)
}

type MockSequence struct{ mock.Mock }

func (m *MockSequence) Next(ctx context.Context, series ports.Series) (int64, error) {
	args := m.Called(ctx, series)
	return args.Get(0).(int64), args.Error(1)
}

type MockInventory struct{ mock.Mock }

func (m *MockInventory) UpdateStock(
	ctx context.Context, ws kernel.WorkstationID, itemType string, itemID int64, quantity int,
) (bool, error) {
	args := m.Called(ctx, ws, itemType, itemID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventory) RestoreStock(
	ctx context.Context, ws kernel.WorkstationID, itemType string, itemID int64, quantity int,
) error {
	return m.Called(ctx, ws, itemType, itemID, quantity).Error(0)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Submit(ctx context.Context, req ports.ScheduleRequest) (ports.ScheduleReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.ScheduleReceipt), args.Error(1)
}

func (m *MockScheduler) GetSchedule(ctx context.Context, scheduleID string) (schedule.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(schedule.Schedule), args.Error(1)
}

func (m *MockScheduler) GetStatus(ctx context.Context, scheduleID string) (string, error) {
	args := m.Called(ctx, scheduleID)
	return args.String(0), args.Error(1)
}

func (m *MockScheduler) Start(ctx context.Context, scheduleID string) error {
	return m.Called(ctx, scheduleID).Error(0)
}

func (m *MockScheduler) Complete(ctx context.Context, scheduleID string) error {
	return m.Called(ctx, scheduleID).Error(0)
}

type MockControlOrderGateway struct{ mock.Mock }

func (m *MockControlOrderGateway) CreateControlOrder(ctx context.Context, draft controlorder.Draft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}
