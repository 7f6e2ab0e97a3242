package controlorder

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
)

// Draft describes a control order that should be created. It is produced by
// schedule synthesis and consumed by whoever issues control order numbers.
type Draft struct {
	Type              Type
	ProductionOrderID kernel.UUID
	WorkstationID     kernel.WorkstationID
	ScheduleID        string
	Priority          kernel.Priority
	TargetStart       time.Time
	TargetCompletion  time.Time
	Details           Details
}

// Validate checks the draft the same way NewControlOrder checks its arguments.
func (d Draft) Validate() error {
	return errors.Join(
		d.Type.Validate(),
		d.ProductionOrderID.Validate(),
		d.WorkstationID.Validate("assignedWorkstationId"),
		d.Priority.Validate(),
		validateWindow(d.TargetStart, d.TargetCompletion),
		validateEstimate(d.Details.EstimatedDurationMinutes),
	)
}

// FromDraft creates an ASSIGNED control order from d.
func FromDraft(id kernel.UUID, number string, d Draft, now time.Time) (*ControlOrder, error) {
	return NewControlOrder(
		id, number, d.Type, d.ProductionOrderID, d.WorkstationID, d.ScheduleID, d.Priority,
		d.TargetStart, d.TargetCompletion, d.Details, now,
	)
}

// PlaceholderNumber builds the locally generated number reported when a
// control order could not be created downstream.
func PlaceholderNumber(t Type) string {
	return t.NumberPrefix() + "-" + kernel.NewUUID().ShortCode()
}
