package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/pkg/metrics"
)

const productionProgressJobName = "production_progress_job"

type InFlightFinder interface {
	FindInFlight(ctx context.Context) ([]*productionorder.ProductionOrder, error)
}

type ProgressUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateProductionProgressCommand) (*productionorder.ProductionOrder, error)
}

// ProductionProgressJob polls the scheduler for every production order that
// has a schedule and is not finished yet.
type ProductionProgressJob struct {
	*cronJob
	finder  InFlightFinder
	updater ProgressUpdater
}

func NewProductionProgressJob(
	spec string,
	timeout time.Duration,
	finder InFlightFinder,
	updater ProgressUpdater,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ProductionProgressJob {
	j := &ProductionProgressJob{finder: finder, updater: updater}
	j.cronJob = newCronJob(productionProgressJobName, spec, timeout, j.Run, m, logger)
	return j
}

// Run refreshes all in-flight orders once. A failing order does not stop the
// others; the failures are returned joined.
func (j *ProductionProgressJob) Run(ctx context.Context) error {
	orders, err := j.finder.FindInFlight(ctx)
	if err != nil {
		return fmt.Errorf("find in-flight production orders: %w", err)
	}

	var failures []error
	for _, order := range orders {
		if err = ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}
		cmd, err := commands.NewUpdateProductionProgressCommand(order.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		updated, err := j.updater.Handle(ctx, cmd)
		if err != nil {
			j.logger.Warn("progress update failed",
				zap.String("orderNumber", order.Number()),
				zap.Error(err))
			failures = append(failures, fmt.Errorf("%s: %w", order.Number(), err))
			continue
		}
		if updated.Status() != order.Status() {
			j.logger.Info("production order progressed",
				zap.String("orderNumber", order.Number()),
				zap.Stringer("from", order.Status()),
				zap.Stringer("to", updated.Status()))
		}
	}
	return errors.Join(failures...)
}
