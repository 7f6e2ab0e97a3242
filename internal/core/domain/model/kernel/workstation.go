package kernel

import (
	"fmt"

	"manufacturing/internal/pkg/errs"
)

// WorkstationID identifies a physical workstation on the factory floor.
type WorkstationID int64

// Well known workstations that receive cascaded orders.
const (
	// ProductionPlanningWorkstation creates production orders cascaded from warehouse shortfalls.
	ProductionPlanningWorkstation WorkstationID = 7

	// ModulesSupermarketWorkstation is assigned cascaded production orders.
	ModulesSupermarketWorkstation WorkstationID = 6

	// SupplyWarehouseWorkstation fulfills supply orders raised by control orders.
	SupplyWarehouseWorkstation WorkstationID = 9
)

// Int64 returns the numeric id as stored in the database.
func (w WorkstationID) Int64() int64 {
	return int64(w)
}

// String formats the id as WS-<n>.
func (w WorkstationID) String() string {
	return fmt.Sprintf("WS-%d", int64(w))
}

// Validate requires a positive identifier.
func (w WorkstationID) Validate(paramName string) error {
	if w <= 0 {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
