package controlorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

const AggregateType = "control_order"

var (
	ErrControlOrderIsNotConstructed = errors.New("ControlOrder must be created via NewControlOrder constructor")
	ErrShippingNotesOnProduction    = errors.New("shipping notes apply to assembly control orders only")
)

// Details are the operator facing texts of a control order. Safety procedures
// and estimated duration belong to production orders; testing procedures,
// packaging requirements and shipping notes to assembly orders.
type Details struct {
	Instructions             string
	QualityCheckpoints       string
	SafetyProcedures         string
	EstimatedDurationMinutes int
	TestingProcedures        string
	PackagingRequirements    string
	ShippingNotes            string
}

// Snapshot carries every persisted field of a control order.
type Snapshot struct {
	ID                    kernel.UUID
	Number                string
	Type                  Type
	ProductionOrderID     kernel.UUID
	AssignedWorkstationID kernel.WorkstationID
	ScheduleID            string
	Priority              kernel.Priority
	Status                Status
	TargetStart           time.Time
	TargetCompletion      time.Time
	ActualStart           *time.Time
	ActualCompletion      *time.Time
	ActualDurationMinutes *int
	Details               Details
	OperatorNotes         string
	DefectsFound          int
	DefectsReworked       int
	ReworkRequired        bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ControlOrder is a work instruction executed at one workstation.
type ControlOrder struct {
	s      Snapshot
	events kernel.EventLog
	guard  guard.ConstructorGuard
}

// NewControlOrder creates an ASSIGNED control order.
func NewControlOrder(
	id kernel.UUID,
	number string,
	typ Type,
	productionOrderID kernel.UUID,
	workstationID kernel.WorkstationID,
	scheduleID string,
	priority kernel.Priority,
	targetStart, targetCompletion time.Time,
	details Details,
	now time.Time,
) (*ControlOrder, error) {
	return RestoreControlOrder(Snapshot{
		ID:                    id,
		Number:                number,
		Type:                  typ,
		ProductionOrderID:     productionOrderID,
		AssignedWorkstationID: workstationID,
		ScheduleID:            scheduleID,
		Priority:              priority,
		Status:                Assigned,
		TargetStart:           targetStart,
		TargetCompletion:      targetCompletion,
		Details:               details,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
}

// RestoreControlOrder rebuilds a control order from persisted state. No events
// are recorded.
//
// Returns:
//   - *ControlOrder: the restored order
//   - error: joined validation errors when the snapshot is inconsistent
func RestoreControlOrder(s Snapshot) (*ControlOrder, error) {
	if err := errors.Join(
		s.ID.Validate(),
		validateNumber(s.Number),
		s.Type.Validate(),
		s.ProductionOrderID.Validate(),
		s.AssignedWorkstationID.Validate("assignedWorkstationId"),
		s.Priority.Validate(),
		s.Status.Validate(),
		validateWindow(s.TargetStart, s.TargetCompletion),
		validateEstimate(s.Details.EstimatedDurationMinutes),
	); err != nil {
		return nil, err
	}

	return &ControlOrder{
		s:     s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrControlOrderIsNotConstructed for orders built outside the constructors.
func (o *ControlOrder) Validate() error {
	if o == nil {
		return ErrControlOrderIsNotConstructed
	}
	return o.guard.Validate(ErrControlOrderIsNotConstructed)
}

// Snapshot returns a copy of the order state for persistence.
func (o *ControlOrder) Snapshot() Snapshot {
	return o.s
}

// ID returns the order's unique identifier.
func (o *ControlOrder) ID() kernel.UUID {
	return o.s.ID
}

// Number returns the PCO- or ACO- prefixed order number.
func (o *ControlOrder) Number() string {
	return o.s.Number
}

// Type returns PRODUCTION or ASSEMBLY.
func (o *ControlOrder) Type() Type {
	return o.s.Type
}

// ProductionOrderID returns the production order this control order was synthesized from.
func (o *ControlOrder) ProductionOrderID() kernel.UUID {
	return o.s.ProductionOrderID
}

// AssignedWorkstationID returns the workstation the order is assigned to.
func (o *ControlOrder) AssignedWorkstationID() kernel.WorkstationID {
	return o.s.AssignedWorkstationID
}

// ScheduleID returns the scheduler's identifier for the originating schedule.
func (o *ControlOrder) ScheduleID() string {
	return o.s.ScheduleID
}

// Priority returns the order priority.
func (o *ControlOrder) Priority() kernel.Priority {
	return o.s.Priority
}

// Status returns the current lifecycle status.
func (o *ControlOrder) Status() Status {
	return o.s.Status
}

// TargetStart returns the scheduled start of the first task.
func (o *ControlOrder) TargetStart() time.Time {
	return o.s.TargetStart
}

// TargetCompletion returns the scheduled end of the last task.
func (o *ControlOrder) TargetCompletion() time.Time {
	return o.s.TargetCompletion
}

// ActualStart is nil until the order is started.
func (o *ControlOrder) ActualStart() *time.Time {
	return o.s.ActualStart
}

// ActualCompletion is nil until the order completes.
func (o *ControlOrder) ActualCompletion() *time.Time {
	return o.s.ActualCompletion
}

// ActualDurationMinutes is nil until the order completes with a known start.
func (o *ControlOrder) ActualDurationMinutes() *int {
	return o.s.ActualDurationMinutes
}

// Details returns the work instructions handed to the workstation.
func (o *ControlOrder) Details() Details {
	return o.s.Details
}

// OperatorNotes returns the operator notes, including halt and cancel reasons.
func (o *ControlOrder) OperatorNotes() string {
	return o.s.OperatorNotes
}

// DefectsFound returns the reported defect count.
func (o *ControlOrder) DefectsFound() int {
	return o.s.DefectsFound
}

// DefectsReworked returns how many defects were reworked.
func (o *ControlOrder) DefectsReworked() int {
	return o.s.DefectsReworked
}

// ReworkRequired returns the reported rework flag.
func (o *ControlOrder) ReworkRequired() bool {
	return o.s.ReworkRequired
}

// CreatedAt returns the creation time.
func (o *ControlOrder) CreatedAt() time.Time {
	return o.s.CreatedAt
}

// UpdatedAt returns the time of the last change.
func (o *ControlOrder) UpdatedAt() time.Time {
	return o.s.UpdatedAt
}

// Start begins work on an ASSIGNED order. Resuming a halted order goes through Resume.
func (o *ControlOrder) Start(now time.Time) error {
	if o.s.Status != Assigned {
		return errs.NewIllegalTransitionError(o.s.Type.Kind().String(), o.s.Status.String(), InProgress.String())
	}
	if err := o.changeStatus(InProgress, now); err != nil {
		return err
	}
	started := now
	o.s.ActualStart = &started
	return nil
}

// Complete finishes an IN_PROGRESS order and records the actual duration in
// whole minutes when the start time is known.
func (o *ControlOrder) Complete(now time.Time) error {
	if err := o.changeStatus(Completed, now); err != nil {
		return err
	}
	completed := now
	o.s.ActualCompletion = &completed
	if o.s.ActualStart != nil {
		minutes := int(completed.Sub(*o.s.ActualStart) / time.Minute)
		o.s.ActualDurationMinutes = &minutes
	}
	return nil
}

// Halt stops work and appends the reason to the operator notes.
func (o *ControlOrder) Halt(reason string, now time.Time) error {
	if err := o.changeStatus(Halted, now); err != nil {
		return err
	}
	o.appendOperatorNote("Halted: " + strings.TrimSpace(reason))
	return nil
}

// Resume continues a HALTED order.
//
// Returns:
//   - nil when the order is back IN_PROGRESS
//   - *errs.IllegalTransitionError when the order is not halted
//
// The original ActualStart is kept, so the recorded duration covers the halt.
func (o *ControlOrder) Resume(now time.Time) error {
	if o.s.Status != Halted {
		return errs.NewIllegalTransitionError(o.s.Type.Kind().String(), o.s.Status.String(), InProgress.String())
	}
	return o.changeStatus(InProgress, now)
}

// Cancel moves the order to CANCELLED. A non-blank reason is appended to the
// operator notes.
//
// Parameters:
//   - reason: free text, may be empty
//   - now: timestamp for UpdatedAt and the status event
//
// Returns:
//   - nil on success
//   - *errs.IllegalTransitionError from a terminal state
func (o *ControlOrder) Cancel(reason string, now time.Time) error {
	if err := o.changeStatus(Cancelled, now); err != nil {
		return err
	}
	if strings.TrimSpace(reason) != "" {
		o.appendOperatorNote("Cancelled: " + strings.TrimSpace(reason))
	}
	return nil
}

// UpdateOperatorNotes replaces the operator notes.
func (o *ControlOrder) UpdateOperatorNotes(notes string, now time.Time) {
	o.s.OperatorNotes = notes
	o.s.UpdatedAt = now
}

// UpdateDefects overwrites the defect counters. Counts are taken as reported.
func (o *ControlOrder) UpdateDefects(found, reworked int, reworkRequired bool, now time.Time) {
	o.s.DefectsFound = found
	o.s.DefectsReworked = reworked
	o.s.ReworkRequired = reworkRequired
	o.s.UpdatedAt = now
}

// UpdateShippingNotes sets the shipping notes of an assembly order.
// Production orders carry no shipping notes and return ErrShippingNotesOnProduction.
func (o *ControlOrder) UpdateShippingNotes(notes string, now time.Time) error {
	if o.s.Type != Assembly {
		return errs.NewValueIsInvalidErrorWithCause("shippingNotes", ErrShippingNotesOnProduction)
	}
	o.s.Details.ShippingNotes = notes
	o.s.UpdatedAt = now
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *ControlOrder) DomainEvents() []kernel.DomainEvent {
	return o.events.Events()
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *ControlOrder) ClearDomainEvents() {
	o.events.Clear()
}

func (o *ControlOrder) changeStatus(status Status, now time.Time) error {
	from := o.s.Status
	err := statemachine.Validate(o.s.Type.Kind(), statemachine.State(from), statemachine.State(status))
	if err != nil {
		return err
	}

	o.s.Status = status
	o.s.UpdatedAt = now
	o.events.Record(kernel.StatusChanged{
		OrderType:   AggregateType,
		OrderID:     o.s.ID,
		OrderNumber: o.s.Number,
		From:        from.String(),
		To:          status.String(),
		At:          now,
	})
	return nil
}

func (o *ControlOrder) appendOperatorNote(note string) {
	if o.s.OperatorNotes == "" {
		o.s.OperatorNotes = note
		return
	}
	o.s.OperatorNotes = o.s.OperatorNotes + "\n" + note
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("controlOrderNumber")
	}
	return nil
}

func validateWindow(start, completion time.Time) error {
	if !start.IsZero() && !completion.IsZero() && completion.Before(start) {
		return errs.NewValueIsInvalidErrorWithCause(
			"targetCompletionTime",
			fmt.Errorf("%s is before target start %s", completion.Format(time.RFC3339), start.Format(time.RFC3339)),
		)
	}
	return nil
}

func validateEstimate(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDurationMinutes", fmt.Errorf("%d is negative", minutes))
	}
	return nil
}
