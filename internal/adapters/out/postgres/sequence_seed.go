package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"manufacturing/internal/core/ports"
)

type seriesSource struct {
	series ports.Series
	table  string
	prefix string
}

var seriesSources = []seriesSource{
	{ports.CustomerOrderSeries, "customer_orders", "ORD"},
	{ports.WarehouseOrderSeries, "warehouse_orders", "WO"},
	{ports.ProductionOrderSeries, "production_orders", "PO"},
	{ports.ProductionControlOrderSeries, "control_orders", "PCO"},
	{ports.AssemblyControlOrderSeries, "control_orders", "ACO"},
	{ports.SupplyOrderSeries, "supply_orders", "SUP"},
}

// HighestOrderNumbers returns, per series, the largest numeric suffix among
// stored order numbers. Placeholder numbers with a hex suffix are ignored.
func HighestOrderNumbers(ctx context.Context, db *gorm.DB) (map[ports.Series]int64, error) {
	out := make(map[ports.Series]int64, len(seriesSources))
	for _, src := range seriesSources {
		var highest int64
		pattern := "^" + src.prefix + "-[0-9]+$"
		err := db.WithContext(ctx).
			Table(src.table).
			Where("order_number ~ ?", pattern).
			Select("COALESCE(MAX(CAST(SUBSTRING(order_number FROM '[0-9]+$') AS BIGINT)), 0)").
			Scan(&highest).Error
		if err != nil {
			return nil, fmt.Errorf("read highest %s number: %w", src.series, err)
		}
		out[src.series] = highest
	}
	return out, nil
}
