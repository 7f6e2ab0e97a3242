package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

func supplyUoW(t *testing.T, supplies *MockSupplyOrderRepository) (*MockUoW, *MockSupplyOrderUoWFactory) {
	t.Helper()
	uow := new(MockUoW)
	factory := new(MockSupplyOrderUoWFactory)
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("SupplyOrderRepository").Return(supplies)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow, factory
}

func TestCreateSupplyOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should create a pending order for the supply warehouse", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateSupplyOrderCommand(kernel.NewUUID(), controlorder.Production, 2,
			kernel.PriorityHigh, nil, []commands.SupplyLine{{PartID: 9, Quantity: 3}}, "")
		require.NoError(t, err)

		seq := new(MockSequence)
		seq.On("Next", ctx, ports.SupplyOrderSeries).Return(int64(12), nil).Once()
		supplies := new(MockSupplyOrderRepository)
		supplies.On("Add", ctx, mock.AnythingOfType("*supplyorder.SupplyOrder")).Return(nil).Once()
		_, factory := supplyUoW(t, supplies)

		h := commands.NewCreateSupplyOrderCommandHandler(factory, seq, fixedClock)
		order, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "SUP-0012", order.Number())
		assert.Equal(t, kernel.SupplyWarehouseWorkstation, order.SupplyWorkstationID())
		assert.Equal(t, supplyorder.Pending, order.Status())
	})

	t.Run("should require items", func(t *testing.T) {
		_, err := commands.NewCreateSupplyOrderCommand(kernel.NewUUID(), controlorder.Production, 2,
			kernel.PriorityHigh, nil, nil, "")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUpdateSupplyOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should stamp rejection and keep the reason", func(t *testing.T) {
		ctx := t.Context()
		order := newSupplyOrder(t, 5)
		supplies := new(MockSupplyOrderRepository)
		supplies.On("Get", ctx, order.ID()).Return(order, nil).Once()
		supplies.On("Update", ctx, order).Return(nil).Once()
		_, factory := supplyUoW(t, supplies)

		cmd, err := commands.NewUpdateSupplyOrderStatusCommand(order.ID(), "REJECTED", "part discontinued")
		require.NoError(t, err)

		h := commands.NewUpdateSupplyOrderStatusCommandHandler(factory, fixedClock)
		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, supplyorder.Rejected, updated.Status())
		require.NotNil(t, updated.RejectedAt())
		assert.Equal(t, fixedNow, *updated.RejectedAt())
		assert.Contains(t, updated.Notes(), "part discontinued")
	})

	t.Run("should refuse fulfilled while parts are unsupplied", func(t *testing.T) {
		ctx := t.Context()
		order := newSupplyOrder(t, 5)
		supplies := new(MockSupplyOrderRepository)
		supplies.On("Get", ctx, order.ID()).Return(order, nil).Once()
		_, factory := supplyUoW(t, supplies)

		cmd, err := commands.NewUpdateSupplyOrderStatusCommand(order.ID(), "FULFILLED", "")
		require.NoError(t, err)

		h := commands.NewUpdateSupplyOrderStatusCommandHandler(factory, fixedClock)
		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, supplyorder.Pending, order.Status())
		supplies.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should report unknown orders", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		supplies := new(MockSupplyOrderRepository)
		supplies.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("supplyOrderId", id)).Once()
		_, factory := supplyUoW(t, supplies)

		cmd, _ := commands.NewUpdateSupplyOrderStatusCommand(id, "CANCELLED", "")
		h := commands.NewUpdateSupplyOrderStatusCommandHandler(factory, fixedClock)
		_, err := h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestFulfillSupplyItemCommandHandler_Handle(t *testing.T) {
	fulfill := func(t *testing.T, order *supplyorder.SupplyOrder, partID int64, quantity int) error {
		t.Helper()
		supplies := new(MockSupplyOrderRepository)
		supplies.On("Get", mock.Anything, order.ID()).Return(order, nil)
		supplies.On("Update", mock.Anything, order).Return(nil)
		_, factory := supplyUoW(t, supplies)

		cmd, err := commands.NewFulfillSupplyItemCommand(order.ID(), partID, quantity)
		require.NoError(t, err)
		h := commands.NewFulfillSupplyItemCommandHandler(factory, fixedClock)
		_, err = h.Handle(t.Context(), cmd)
		return err
	}

	t.Run("should progress then fulfill", func(t *testing.T) {
		order := newSupplyOrder(t, 5, 2)

		require.NoError(t, fulfill(t, order, 100, 9))
		assert.Equal(t, supplyorder.InProgress, order.Status())
		assert.Equal(t, 5, order.Items()[0].SuppliedQuantity())

		require.NoError(t, fulfill(t, order, 101, 2))
		assert.Equal(t, supplyorder.Fulfilled, order.Status())
		assert.NotNil(t, order.FulfilledAt())
	})

	t.Run("should reject unknown parts", func(t *testing.T) {
		order := newSupplyOrder(t, 5)

		err := fulfill(t, order, 999, 1)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, supplyorder.Pending, order.Status())
	})
}
