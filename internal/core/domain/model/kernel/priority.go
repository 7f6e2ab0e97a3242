package kernel

import (
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/pkg/errs"
)

// Priority ranks orders for the scheduler and for operators.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

const (
	highPriorityAge   = 24 * time.Hour
	mediumPriorityAge = 3 * 24 * time.Hour
)

// ParsePriority accepts any letter case and rejects unknown values.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// PriorityForAge derives the priority of a cascaded order from the age of the
// order that caused it: younger than one day is HIGH, younger than three days
// is MEDIUM, anything older is LOW.
func PriorityForAge(orderDate, now time.Time) Priority {
	age := now.Sub(orderDate)
	switch {
	case age < highPriorityAge:
		return PriorityHigh
	case age < mediumPriorityAge:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// String returns the wire representation.
func (p Priority) String() string {
	return string(p)
}

// Validate accepts LOW, MEDIUM, HIGH and URGENT.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("unknown priority %q", string(p)))
	}
}
