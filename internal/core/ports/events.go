package ports

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
)

// EventPublisher ships committed domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// Clock tells the time. Handlers take it so tests can pin now.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the current UTC time.
var SystemClock = ClockFunc(func() time.Time {
	return time.Now().UTC()
})
