package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after the unit
// of work that persisted it commits.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// StatusChanged is recorded by every order aggregate whenever its status moves.
type StatusChanged struct {
	OrderType   string
	OrderID     UUID
	OrderNumber string
	From        string
	To          string
	At          time.Time
}

// EventName is the aggregate type followed by ".status_changed", e.g. "production_order.status_changed".
func (e StatusChanged) EventName() string {
	return e.OrderType + ".status_changed"
}

// AggregateID returns the ID of the order whose status changed.
func (e StatusChanged) AggregateID() UUID {
	return e.OrderID
}

// OccurredAt returns the time of the status change.
func (e StatusChanged) OccurredAt() time.Time {
	return e.At
}

// EventLog collects the events of one aggregate instance. It is embedded by
// value into aggregates and is not safe for concurrent use.
type EventLog struct {
	events []DomainEvent
}

// Record appends event to the log.
func (l *EventLog) Record(event DomainEvent) {
	l.events = append(l.events, event)
}

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []DomainEvent {
	out := make([]DomainEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Clear empties the log after publication.
func (l *EventLog) Clear() {
	l.events = nil
}
