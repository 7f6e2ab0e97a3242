package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
)

func newCustomerOrder(t *testing.T, status customerorder.Status) *customerorder.CustomerOrder {
	t.Helper()
	item, err := customerorder.NewItem("PRODUCT_VARIANT", 1, 10, "")
	require.NoError(t, err)
	order, err := customerorder.RestoreCustomerOrder(
		kernel.NewUUID(), "ORD-000001", 7, status, []*customerorder.Item{item}, "", fixedNow, fixedNow, fixedNow,
	)
	require.NoError(t, err)
	return order
}

func newWarehouseOrder(t *testing.T, customerOrderID kernel.UUID, orderDate time.Time, quantities ...int) *warehouseorder.WarehouseOrder {
	t.Helper()
	items := make([]*warehouseorder.Item, 0, len(quantities))
	for i, q := range quantities {
		item, err := warehouseorder.NewItem(int64(i+1), "Product", "PRODUCT_VARIANT", q)
		require.NoError(t, err)
		items = append(items, item)
	}
	order, err := warehouseorder.RestoreWarehouseOrder(
		kernel.NewUUID(), "WO-000001", customerOrderID, 7, 7, warehouseorder.Pending, items,
		"", "", orderDate, orderDate, orderDate,
	)
	require.NoError(t, err)
	return order
}

func newProductionOrder(t *testing.T, status productionorder.Status, scheduleID string) *productionorder.ProductionOrder {
	t.Helper()
	order, err := productionorder.RestoreProductionOrder(productionorder.Snapshot{
		ID:                     kernel.NewUUID(),
		Number:                 "PO-000001",
		CustomerOrderID:        kernel.NewUUID(),
		Priority:               kernel.PriorityHigh,
		DueDate:                fixedNow.Add(7 * 24 * time.Hour),
		ScheduleID:             scheduleID,
		Status:                 status,
		CreatedByWorkstationID: kernel.ProductionPlanningWorkstation,
		AssignedWorkstationID:  kernel.ModulesSupermarketWorkstation,
		CreatedAt:              fixedNow,
		UpdatedAt:              fixedNow,
	})
	require.NoError(t, err)
	return order
}

func newDraft(typ controlorder.Type) controlorder.Draft {
	return controlorder.Draft{
		Type:              typ,
		ProductionOrderID: kernel.NewUUID(),
		WorkstationID:     1,
		ScheduleID:        "SCH-1",
		Priority:          kernel.PriorityMedium,
		TargetStart:       fixedNow,
		TargetCompletion:  fixedNow.Add(2 * time.Hour),
		Details:           controlorder.Details{Instructions: "do it"},
	}
}

func newControlOrder(t *testing.T, typ controlorder.Type) *controlorder.ControlOrder {
	t.Helper()
	order, err := controlorder.FromDraft(kernel.NewUUID(), typ.NumberPrefix()+"-0001", newDraft(typ), fixedNow)
	require.NoError(t, err)
	return order
}

func newSupplyOrder(t *testing.T, quantities ...int) *supplyorder.SupplyOrder {
	t.Helper()
	items := make([]*supplyorder.Item, 0, len(quantities))
	for i, q := range quantities {
		item, err := supplyorder.NewItem(int64(100+i), q, "", "")
		require.NoError(t, err)
		items = append(items, item)
	}
	order, err := supplyorder.NewSupplyOrder(
		kernel.NewUUID(), "SUP-0001", kernel.NewUUID(), controlorder.Production, 1,
		kernel.PriorityMedium, nil, items, "", fixedNow,
	)
	require.NoError(t, err)
	return order
}
