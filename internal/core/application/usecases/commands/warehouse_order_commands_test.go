package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

func TestCreateWarehouseOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should copy customer lines and start processing", func(t *testing.T) {
		ctx := t.Context()
		customer := newCustomerOrder(t, customerorder.Pending)
		cmd, err := commands.NewCreateWarehouseOrderCommand(customer.ID(), 7, "STOCK_CHECK", "")
		require.NoError(t, err)

		seq := new(MockSequence)
		customers := new(MockCustomerOrderRepository)
		warehouses := new(MockWarehouseOrderRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)

		factory.On("Create").Return(uow).Once()
		seq.On("Next", ctx, ports.WarehouseOrderSeries).Return(int64(3), nil).Once()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CustomerOrderRepository").Return(customers).Once(),
			customers.On("Get", ctx, customer.ID()).Return(customer, nil).Once(),
			customers.On("Update", ctx, customer).Return(nil).Once(),
			uow.On("WarehouseOrderRepository").Return(warehouses).Once(),
			warehouses.On("Add", ctx, mock.AnythingOfType("*warehouseorder.WarehouseOrder")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewCreateWarehouseOrderCommandHandler(factory, seq, fixedClock)
		order, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "WO-000003", order.Number())
		assert.Equal(t, warehouseorder.Pending, order.Status())
		assert.True(t, order.CustomerOrderID().IsEqual(customer.ID()))
		assert.Equal(t, customer.WorkstationID(), order.RequestingWorkstationID())
		require.Len(t, order.Items(), 1)
		assert.Equal(t, 10, order.Items()[0].RequestedQuantity())
		assert.Equal(t, customerorder.Processing, customer.Status())
		customers.AssertExpectations(t)
		warehouses.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should report an unknown customer order", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewCreateWarehouseOrderCommand(id, 7, "", "")

		customers := new(MockCustomerOrderRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CustomerOrderRepository").Return(customers).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		customers.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("customerOrderId", id)).Once()

		h := commands.NewCreateWarehouseOrderCommandHandler(factory, new(MockSequence), fixedClock)
		_, err := h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestUpdateWarehouseOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should refuse FULFILLED while items are short", func(t *testing.T) {
		ctx := t.Context()
		order := newWarehouseOrder(t, kernel.NewUUID(), fixedNow, 5)
		cmd, err := commands.NewUpdateWarehouseOrderStatusCommand(order.ID(), "FULFILLED")
		require.NoError(t, err)

		warehouses := new(MockWarehouseOrderRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("WarehouseOrderRepository").Return(warehouses).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		warehouses.On("Get", ctx, order.ID()).Return(order, nil).Once()

		h := commands.NewUpdateWarehouseOrderStatusCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, warehouseorder.Pending, order.Status())
	})

	t.Run("should reject a pending order", func(t *testing.T) {
		ctx := t.Context()
		order := newWarehouseOrder(t, kernel.NewUUID(), fixedNow, 5)
		cmd, _ := commands.NewUpdateWarehouseOrderStatusCommand(order.ID(), "rejected")

		warehouses := new(MockWarehouseOrderRepository)
		uow := new(MockUoW)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("WarehouseOrderRepository").Return(warehouses).Once(),
			warehouses.On("Get", ctx, order.ID()).Return(order, nil).Once(),
			warehouses.On("Update", ctx, order).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		h := commands.NewUpdateWarehouseOrderStatusCommandHandler(factory, fixedClock)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, warehouseorder.Rejected, updated.Status())
		uow.AssertExpectations(t)
	})
}

func newFulfillHandler(uf commands.UoWFactory, inv ports.Inventory, seq ports.SequenceGenerator) commands.FulfillWarehouseOrderCommandHandler {
	return commands.NewFulfillWarehouseOrderCommandHandler(uf, inv, seq, fixedClock, nil, zap.NewNop())
}

func TestFulfillWarehouseOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should fulfill and close the customer order when stock suffices", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		customer := newCustomerOrder(t, customerorder.Processing)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow, 4, 6)
		store.warehouses[order.ID().String()] = order

		inv := newMemInventory()
		inv.set(7, 1, 10)
		inv.set(7, 2, 10)

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Fulfilled())
		assert.Nil(t, result.ProductionOrder)
		assert.Equal(t, warehouseorder.Fulfilled, order.Status())
		assert.True(t, order.IsFullyFulfilled())
		assert.Equal(t, customerorder.Completed, customer.Status())
		assert.Contains(t, customer.Notes(), "Warehouse order WO-000001 fulfilled - order completed")
		assert.Equal(t, 6, inv.get(7, 1))
		assert.Equal(t, 4, inv.get(7, 2))
		assert.Empty(t, store.productions)
	})

	t.Run("should cascade one production order on shortfall", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		customer := newCustomerOrder(t, customerorder.Processing)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow.Add(-2*24*time.Hour), 4, 6)
		store.warehouses[order.ID().String()] = order

		inv := newMemInventory()
		inv.set(7, 1, 10)

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Fulfilled())
		assert.Equal(t, warehouseorder.Processing, order.Status())
		assert.Contains(t, order.Notes(), warehouseorder.PartialFulfillmentNote)
		assert.Equal(t, customerorder.Processing, customer.Status())

		require.Len(t, store.productions, 1)
		production := result.ProductionOrder
		require.NotNil(t, production)
		assert.Equal(t, "PO-000001", production.Number())
		assert.True(t, production.WarehouseOrderID().IsEqual(order.ID()))
		assert.True(t, production.CustomerOrderID().IsEqual(customer.ID()))
		assert.Equal(t, kernel.PriorityMedium, production.Priority())
		assert.Equal(t, order.OrderDate().Add(productionorder.CascadeLeadTime), production.DueDate())
		assert.Equal(t, kernel.ProductionPlanningWorkstation, production.CreatedByWorkstationID())
		assert.Equal(t, kernel.ModulesSupermarketWorkstation, production.AssignedWorkstationID())
		assert.Equal(t, "Created from warehouse order WO-000001 - partial fulfillment", production.Notes())
	})

	t.Run("should count inventory errors as failed items", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		customer := newCustomerOrder(t, customerorder.Processing)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow, 4)
		store.warehouses[order.ID().String()] = order

		inv := new(MockInventory)
		inv.On("UpdateStock", mock.Anything, kernel.WorkstationID(7), "PRODUCT_VARIANT", int64(1), 4).
			Return(false, errors.New("inventory unreachable")).Once()

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, warehouseorder.Processing, result.WarehouseOrder.Status())
		assert.NotNil(t, result.ProductionOrder)
		inv.AssertExpectations(t)
	})

	t.Run("should restore debited stock when commit fails", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		store.commitErr = errors.New("commit error")
		customer := newCustomerOrder(t, customerorder.Processing)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow, 4, 6)
		store.warehouses[order.ID().String()] = order

		inv := newMemInventory()
		inv.set(7, 1, 10)
		inv.set(7, 2, 10)

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		_, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit error")
		assert.Equal(t, 10, inv.get(7, 1))
		assert.Equal(t, 10, inv.get(7, 2))
	})

	t.Run("should surface compensation failures", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		store.commitErr = errors.New("commit error")
		customer := newCustomerOrder(t, customerorder.Processing)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow, 4)
		store.warehouses[order.ID().String()] = order

		inv := new(MockInventory)
		inv.On("UpdateStock", mock.Anything, kernel.WorkstationID(7), "PRODUCT_VARIANT", int64(1), 4).Return(true, nil).Once()
		inv.On("RestoreStock", mock.Anything, kernel.WorkstationID(7), "PRODUCT_VARIANT", int64(1), 4).
			Return(errors.New("restore failed")).Once()

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		_, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit error")
		assert.Contains(t, err.Error(), "restore failed")
		inv.AssertExpectations(t)
	})

	t.Run("should not fail when the customer order is gone", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		order := newWarehouseOrder(t, kernel.NewUUID(), fixedNow, 4)
		store.warehouses[order.ID().String()] = order

		inv := newMemInventory()
		inv.set(7, 1, 4)

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Fulfilled())
	})

	t.Run("should not fail when the customer order cannot be closed", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		customer := newCustomerOrder(t, customerorder.Cancelled)
		store.customers[customer.ID().String()] = customer
		order := newWarehouseOrder(t, customer.ID(), fixedNow, 4)
		store.warehouses[order.ID().String()] = order

		inv := newMemInventory()
		inv.set(7, 1, 4)

		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Fulfilled())
		assert.Equal(t, customerorder.Cancelled, customer.Status())
	})

	t.Run("should refuse a terminal order without touching stock", func(t *testing.T) {
		ctx := t.Context()
		store := newMemStore()
		order := newWarehouseOrder(t, kernel.NewUUID(), fixedNow, 4)
		require.NoError(t, order.ChangeStatus(warehouseorder.Cancelled, fixedNow))
		store.warehouses[order.ID().String()] = order

		inv := new(MockInventory)
		h := newFulfillHandler(store, inv, &counterSequence{})
		cmd, _ := commands.NewFulfillWarehouseOrderCommand(order.ID())
		_, err := h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		inv.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// End to end through the command handlers: a customer order for ten units at
// workstation 7, served by workstation 7.
func TestOrderFlow_Scenarios(t *testing.T) {
	run := func(t *testing.T, stock int) (*memStore, commands.FulfillmentResult) {
		ctx := t.Context()
		store := newMemStore()
		seq := &counterSequence{}
		inv := newMemInventory()
		inv.set(7, 1, stock)

		createCustomer := commands.NewCreateCustomerOrderCommandHandler(store, seq, fixedClock)
		customerCmd, err := commands.NewCreateCustomerOrderCommand(7, []commands.CustomerOrderLine{
			{ItemType: "PRODUCT_VARIANT", ItemID: 1, Quantity: 10},
		}, "")
		require.NoError(t, err)
		customer, err := createCustomer.Handle(ctx, customerCmd)
		require.NoError(t, err)

		createWarehouse := commands.NewCreateWarehouseOrderCommandHandler(store, seq, fixedClock)
		warehouseCmd, err := commands.NewCreateWarehouseOrderCommand(customer.ID(), 7, "STOCK_CHECK", "")
		require.NoError(t, err)
		warehouse, err := createWarehouse.Handle(ctx, warehouseCmd)
		require.NoError(t, err)

		fulfill := newFulfillHandler(store, inv, seq)
		fulfillCmd, err := commands.NewFulfillWarehouseOrderCommand(warehouse.ID())
		require.NoError(t, err)
		result, err := fulfill.Handle(ctx, fulfillCmd)
		require.NoError(t, err)
		return store, result
	}

	t.Run("should complete the customer order with stock 10", func(t *testing.T) {
		store, result := run(t, 10)

		assert.Equal(t, warehouseorder.Fulfilled, result.WarehouseOrder.Status())
		customer := store.customers[result.WarehouseOrder.CustomerOrderID().String()]
		assert.Equal(t, customerorder.Completed, customer.Status())
		assert.Empty(t, store.productions)
	})

	t.Run("should cascade a production order with stock 0", func(t *testing.T) {
		store, result := run(t, 0)

		assert.Equal(t, warehouseorder.Processing, result.WarehouseOrder.Status())
		require.Len(t, store.productions, 1)
		for _, production := range store.productions {
			assert.True(t, production.WarehouseOrderID().IsEqual(result.WarehouseOrder.ID()))
			assert.Equal(t, productionorder.Created, production.Status())
			assert.Equal(t, kernel.PriorityHigh, production.Priority())
		}
		customer := store.customers[result.WarehouseOrder.CustomerOrderID().String()]
		assert.Equal(t, customerorder.Processing, customer.Status())
	})
}
