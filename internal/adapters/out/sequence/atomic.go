// Package sequence provides the number generators behind ports.SequenceGenerator.
package sequence

import (
	"context"
	"sync"
	"sync/atomic"

	"manufacturing/internal/core/ports"
)

// AtomicGenerator keeps one in-process counter per series. Values restart
// from 1 when the process restarts, so it only fits single-instance setups
// and tests.
type AtomicGenerator struct {
	counters sync.Map
}

func NewAtomicGenerator() *AtomicGenerator {
	return &AtomicGenerator{}
}

// Seed makes the next value of series start after value.
func (g *AtomicGenerator) Seed(series ports.Series, value int64) {
	counter, _ := g.counters.LoadOrStore(series, new(atomic.Int64))
	counter.(*atomic.Int64).Store(value)
}

func (g *AtomicGenerator) Next(ctx context.Context, series ports.Series) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	counter, _ := g.counters.LoadOrStore(series, new(atomic.Int64))
	return counter.(*atomic.Int64).Add(1), nil
}
