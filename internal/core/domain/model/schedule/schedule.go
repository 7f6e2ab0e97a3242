// Package schedule models the timeline the external scheduler returns for a
// submitted production order.
package schedule

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"manufacturing/internal/core/domain/model/kernel"
)

// Task is one step of a schedule executed at a single workstation.
type Task struct {
	TaskID          string
	ItemID          string
	ItemName        string
	Quantity        int
	WorkstationID   string
	WorkstationName string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Status          string
	Sequence        int
}

// Schedule is the scheduler's plan for one production order.
type Schedule struct {
	ID                  string
	OrderNumber         string
	Status              string
	EstimatedCompletion *time.Time
	Tasks               []Task
	TotalDuration       int
}

// Workstation extracts the numeric workstation from identifiers like "WS-3".
// Identifiers without digits resolve to workstation 1.
func (t Task) Workstation() kernel.WorkstationID {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, t.WorkstationID)

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 1
	}
	return kernel.WorkstationID(n)
}

// WithDefaults fills unknown start times with fallbackStart and unknown
// durations with fallbackDuration. Missing end times are derived from start
// and duration.
func (t Task) WithDefaults(fallbackStart time.Time, fallbackDuration int) Task {
	if t.Start.IsZero() {
		t.Start = fallbackStart
	}
	if t.DurationMinutes <= 0 {
		t.DurationMinutes = fallbackDuration
	}
	if t.End.IsZero() {
		t.End = t.Start.Add(time.Duration(t.DurationMinutes) * time.Minute)
	}
	return t
}
