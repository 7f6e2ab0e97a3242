// Package saga collects compensating actions for multi-step workflows that
// touch systems outside the local transaction.
package saga

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "manufacturing/saga"

// Compensation undoes one completed step.
type Compensation func(ctx context.Context) error

type step struct {
	name string
	undo Compensation
}

// Saga records compensations while a workflow runs. Compensate runs them in
// reverse registration order. A Saga is safe for concurrent use.
type Saga struct {
	name  string
	mu    sync.Mutex
	steps []step
}

func New(name string) *Saga {
	return &Saga{name: name}
}

// AddCompensation registers undo for a completed step called name.
func (s *Saga) AddCompensation(name string, undo Compensation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step{name: name, undo: undo})
}

// Len returns the number of registered compensations.
func (s *Saga) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Compensate runs every registered compensation, newest first, and clears
// them. All compensations run even when some fail; the failures are joined.
func (s *Saga) Compensate(ctx context.Context) error {
	s.mu.Lock()
	steps := s.steps
	s.steps = nil
	s.mu.Unlock()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "saga.compensate")
	defer span.End()
	span.SetAttributes(
		attribute.String("saga.name", s.name),
		attribute.Int("saga.steps", len(steps)),
	)

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i].undo(ctx); err != nil {
			errs = append(errs, fmt.Errorf("compensate %s: %w", steps[i].name, err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compensation failed")
	}
	return err
}

// Forget drops the registered compensations once the workflow succeeded.
func (s *Saga) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = nil
}
