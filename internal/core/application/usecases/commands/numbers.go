package commands

import (
	"context"
	"fmt"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/ports"
)

const (
	customerOrderNumberFormat   = "ORD-%06d"
	warehouseOrderNumberFormat  = "WO-%06d"
	productionOrderNumberFormat = "PO-%06d"
	supplyOrderNumberFormat     = "SUP-%04d"
)

// nextNumber draws the next value of series and formats it.
func nextNumber(ctx context.Context, seq ports.SequenceGenerator, series ports.Series, format string) (string, error) {
	n, err := seq.Next(ctx, series)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", series, err)
	}
	return fmt.Sprintf(format, n), nil
}

func controlOrderSeries(t controlorder.Type) ports.Series {
	if t == controlorder.Assembly {
		return ports.AssemblyControlOrderSeries
	}
	return ports.ProductionControlOrderSeries
}

func nextControlOrderNumber(ctx context.Context, seq ports.SequenceGenerator, t controlorder.Type) (string, error) {
	return nextNumber(ctx, seq, controlOrderSeries(t), t.NumberPrefix()+"-%04d")
}
