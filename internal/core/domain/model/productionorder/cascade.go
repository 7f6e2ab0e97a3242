package productionorder

import (
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
)

// CascadeLeadTime is added to the warehouse order date to get the due date of
// a cascaded production order.
const CascadeLeadTime = 7 * 24 * time.Hour

// CascadeFromWarehouseOrder builds the production order raised when a
// warehouse order could only be partially served from stock. Priority is
// derived from the age of the warehouse order at now.
func CascadeFromWarehouseOrder(
	id kernel.UUID,
	number string,
	wo *warehouseorder.WarehouseOrder,
	now time.Time,
) (*ProductionOrder, error) {
	if err := wo.Validate(); err != nil {
		return nil, err
	}

	warehouseOrderID := wo.ID()
	return NewProductionOrder(
		id,
		number,
		wo.CustomerOrderID(),
		&warehouseOrderID,
		kernel.PriorityForAge(wo.OrderDate(), now),
		wo.OrderDate().Add(CascadeLeadTime),
		kernel.ProductionPlanningWorkstation,
		kernel.ModulesSupermarketWorkstation,
		fmt.Sprintf("Created from warehouse order %s - partial fulfillment", wo.Number()),
		now,
	)
}
