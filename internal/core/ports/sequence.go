package ports

import (
	"context"
)

// Series names an independent number sequence.
type Series string

const (
	CustomerOrderSeries          Series = "customer_order"
	WarehouseOrderSeries         Series = "warehouse_order"
	ProductionOrderSeries        Series = "production_order"
	ProductionControlOrderSeries Series = "production_control_order"
	AssemblyControlOrderSeries   Series = "assembly_control_order"
	SupplyOrderSeries            Series = "supply_order"
)

// SequenceGenerator hands out monotonically increasing values per series. The
// values are unique but not gap free. Implementations are safe for concurrent use.
type SequenceGenerator interface {
	Next(ctx context.Context, series Series) (int64, error)
}
