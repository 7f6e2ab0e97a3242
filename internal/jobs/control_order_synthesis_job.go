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

const controlOrderSynthesisJobName = "control_order_synthesis_job"

type SynthesisCandidateFinder interface {
	FindAwaitingSynthesis(ctx context.Context) ([]*productionorder.ProductionOrder, error)
}

type ControlOrderSynthesizer interface {
	Handle(ctx context.Context, cmd commands.SynthesizeControlOrdersCommand) ([]commands.SynthesisResult, error)
}

// ControlOrderSynthesisJob creates the control orders of scheduled production
// orders that have none yet.
type ControlOrderSynthesisJob struct {
	*cronJob
	finder      SynthesisCandidateFinder
	synthesizer ControlOrderSynthesizer
}

func NewControlOrderSynthesisJob(
	spec string,
	timeout time.Duration,
	finder SynthesisCandidateFinder,
	synthesizer ControlOrderSynthesizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ControlOrderSynthesisJob {
	j := &ControlOrderSynthesisJob{finder: finder, synthesizer: synthesizer}
	j.cronJob = newCronJob(controlOrderSynthesisJobName, spec, timeout, j.Run, m, logger)
	return j
}

// Run synthesizes every waiting order once. Per workstation failures inside a
// synthesis are logged but do not fail the run.
func (j *ControlOrderSynthesisJob) Run(ctx context.Context) error {
	orders, err := j.finder.FindAwaitingSynthesis(ctx)
	if err != nil {
		return fmt.Errorf("find production orders awaiting synthesis: %w", err)
	}

	var failures []error
	for _, order := range orders {
		if err = ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}
		cmd, err := commands.NewSynthesizeControlOrdersCommand(order.ID())
		if err != nil {
			failures = append(failures, err)
			continue
		}
		results, err := j.synthesizer.Handle(ctx, cmd)
		if err != nil {
			j.logger.Warn("synthesis failed",
				zap.String("orderNumber", order.Number()),
				zap.Error(err))
			failures = append(failures, fmt.Errorf("%s: %w", order.Number(), err))
			continue
		}
		j.logResults(order, results)
	}
	return errors.Join(failures...)
}

func (j *ControlOrderSynthesisJob) logResults(order *productionorder.ProductionOrder, results []commands.SynthesisResult) {
	created := 0
	for _, r := range results {
		if r.Err != nil {
			j.logger.Warn("control order not created",
				zap.String("orderNumber", order.Number()),
				zap.Int64("workstationId", r.WorkstationID.Int64()),
				zap.Error(r.Err))
			continue
		}
		created++
	}
	if len(results) > 0 {
		j.logger.Info("control orders synthesized",
			zap.String("orderNumber", order.Number()),
			zap.Int("created", created),
			zap.Int("workstations", len(results)))
	}
}
