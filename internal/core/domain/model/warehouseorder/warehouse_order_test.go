package warehouseorder_test

import (
	"testing"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, quantities ...int) *warehouseorder.WarehouseOrder {
	t.Helper()
	items := make([]*warehouseorder.Item, 0, len(quantities))
	for i, q := range quantities {
		item, err := warehouseorder.NewItem(int64(i+1), "Module", "MODULE", q)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := warehouseorder.NewWarehouseOrder(
		kernel.NewUUID(), "WO-000001", kernel.NewUUID(), 7, 7, items, "STOCK_CHECK", "", now,
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("should start unfulfilled", func(t *testing.T) {
		item, err := warehouseorder.NewItem(4, "Gear", "PART", 3)

		require.NoError(t, err)
		assert.Equal(t, 3, item.RequestedQuantity())
		assert.Equal(t, 0, item.FulfilledQuantity())
		assert.False(t, item.IsFullyFulfilled())
	})

	t.Run("should refuse fulfilled above requested on restore", func(t *testing.T) {
		item, err := warehouseorder.RestoreItem(kernel.NewUUID(), 4, "Gear", "PART", 3, 4)

		require.Error(t, err)
		assert.Nil(t, item)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should refuse fulfilling above requested", func(t *testing.T) {
		item, err := warehouseorder.NewItem(4, "Gear", "PART", 3)
		require.NoError(t, err)

		err = item.Fulfill(5)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 0, item.FulfilledQuantity())
	})
}

func TestNewWarehouseOrder(t *testing.T) {
	t.Run("should create pending order", func(t *testing.T) {
		o := newOrder(t, 2, 5)

		require.NoError(t, o.Validate())
		assert.Equal(t, warehouseorder.Pending, o.Status())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, "STOCK_CHECK", o.TriggerScenario())
		assert.False(t, o.IsFullyFulfilled())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := warehouseorder.NewWarehouseOrder(kernel.UUID{}, "", kernel.UUID{}, 0, 0, nil, "", "", now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "requestingWorkstationId")
		assert.Contains(t, err.Error(), "fulfillingWorkstationId")
		assert.ErrorIs(t, err, warehouseorder.ErrItemsAreRequired)
	})

	t.Run("should refuse restoring FULFILLED with short items", func(t *testing.T) {
		item, err := warehouseorder.RestoreItem(kernel.NewUUID(), 1, "Gear", "PART", 3, 1)
		require.NoError(t, err)

		o, err := warehouseorder.RestoreWarehouseOrder(
			kernel.NewUUID(), "WO-000002", kernel.NewUUID(), 7, 7, warehouseorder.Fulfilled,
			[]*warehouseorder.Item{item}, "", "", now, now, now,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWarehouseOrder_Fulfillment(t *testing.T) {
	t.Run("should reach FULFILLED only when every item is fulfilled", func(t *testing.T) {
		o := newOrder(t, 2, 5)
		items := o.Items()

		require.NoError(t, o.FulfillItem(items[0].ID(), now))
		err := o.ChangeStatus(warehouseorder.Fulfilled, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), warehouseorder.ErrItemsNotFullyFulfilled.Error())
		assert.Equal(t, warehouseorder.Pending, o.Status())

		require.NoError(t, o.FulfillItem(items[1].ID(), now))
		require.NoError(t, o.ChangeStatus(warehouseorder.Fulfilled, now))
		assert.Equal(t, warehouseorder.Fulfilled, o.Status())
		assert.Equal(t, "Warehouse order WO-000001 fulfilled - order completed", o.FulfilledNote())
	})

	t.Run("should mark partial fulfillment as processing with note", func(t *testing.T) {
		o := newOrder(t, 2)

		require.NoError(t, o.MarkPartiallyFulfilled(now))
		require.NoError(t, o.MarkPartiallyFulfilled(now.Add(time.Minute)))

		assert.Equal(t, warehouseorder.Processing, o.Status())
		assert.Contains(t, o.Notes(), warehouseorder.PartialFulfillmentNote)
		assert.Len(t, o.DomainEvents(), 2)
	})

	t.Run("should report unknown item", func(t *testing.T) {
		o := newOrder(t, 2)

		err := o.FulfillItem(kernel.NewUUID(), now)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse fulfilling a terminal order", func(t *testing.T) {
		o := newOrder(t, 2)
		require.NoError(t, o.ChangeStatus(warehouseorder.Cancelled, now))

		err := o.FulfillItem(o.Items()[0].ID(), now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should refuse leaving a terminal status", func(t *testing.T) {
		o := newOrder(t, 2)
		require.NoError(t, o.ChangeStatus(warehouseorder.Rejected, now))

		err := o.ChangeStatus(warehouseorder.Processing, now)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}
