package productionorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

const AggregateType = "production_order"

var (
	ErrProductionOrderIsNotConstructed = errors.New("ProductionOrder must be created via NewProductionOrder constructor")
	ErrScheduleIDIsRequired            = errs.NewValueIsRequiredError("scheduleId")
)

// Snapshot carries every persisted field of a production order. It is the
// input of RestoreProductionOrder and the output of ProductionOrder.Snapshot.
type Snapshot struct {
	ID                       kernel.UUID
	Number                   string
	CustomerOrderID          kernel.UUID
	WarehouseOrderID         *kernel.UUID
	Priority                 kernel.Priority
	DueDate                  time.Time
	ScheduleID               string
	EstimatedDurationMinutes int
	ExpectedCompletion       *time.Time
	Status                   Status
	CreatedByWorkstationID   kernel.WorkstationID
	AssignedWorkstationID    kernel.WorkstationID
	Notes                    string
	ControlOrdersSynthesized bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// ProductionOrder is manufacturing work submitted to the external scheduler.
type ProductionOrder struct {
	s      Snapshot
	events kernel.EventLog
	guard  guard.ConstructorGuard
}

// NewProductionOrder creates a CREATED production order.
func NewProductionOrder(
	id kernel.UUID,
	number string,
	customerOrderID kernel.UUID,
	warehouseOrderID *kernel.UUID,
	priority kernel.Priority,
	dueDate time.Time,
	createdBy, assignedTo kernel.WorkstationID,
	notes string,
	now time.Time,
) (*ProductionOrder, error) {
	return RestoreProductionOrder(Snapshot{
		ID:                     id,
		Number:                 number,
		CustomerOrderID:        customerOrderID,
		WarehouseOrderID:       warehouseOrderID,
		Priority:               priority,
		DueDate:                dueDate,
		Status:                 Created,
		CreatedByWorkstationID: createdBy,
		AssignedWorkstationID:  assignedTo,
		Notes:                  notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
}

// RestoreProductionOrder rebuilds a production order from persisted state
// without recording events.
//
// Returns:
//   - *ProductionOrder: the restored order
//   - error: joined validation errors for every invalid field
func RestoreProductionOrder(s Snapshot) (*ProductionOrder, error) {
	var warehouseErr error
	if s.WarehouseOrderID != nil {
		warehouseErr = s.WarehouseOrderID.Validate()
	}

	if err := errors.Join(
		s.ID.Validate(),
		validateNumber(s.Number),
		s.CustomerOrderID.Validate(),
		warehouseErr,
		s.Priority.Validate(),
		s.Status.Validate(),
		s.CreatedByWorkstationID.Validate("createdByWorkstationId"),
		s.AssignedWorkstationID.Validate("assignedWorkstationId"),
		validateDuration(s.EstimatedDurationMinutes),
	); err != nil {
		return nil, err
	}

	return &ProductionOrder{
		s:     s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrProductionOrderIsNotConstructed for orders built outside the constructors.
func (o *ProductionOrder) Validate() error {
	if o == nil {
		return ErrProductionOrderIsNotConstructed
	}
	return o.guard.Validate(ErrProductionOrderIsNotConstructed)
}

// Snapshot returns a copy of the persisted state.
func (o *ProductionOrder) Snapshot() Snapshot {
	return o.s
}

// ID returns the order's unique identifier.
func (o *ProductionOrder) ID() kernel.UUID {
	return o.s.ID
}

// Number returns the PO- prefixed order number.
func (o *ProductionOrder) Number() string {
	return o.s.Number
}

// CustomerOrderID returns the customer order this production order fulfils.
func (o *ProductionOrder) CustomerOrderID() kernel.UUID {
	return o.s.CustomerOrderID
}

// WarehouseOrderID is nil when the order was not raised from a warehouse order.
func (o *ProductionOrder) WarehouseOrderID() *kernel.UUID {
	return o.s.WarehouseOrderID
}

// Priority returns the order priority.
func (o *ProductionOrder) Priority() kernel.Priority {
	return o.s.Priority
}

// DueDate returns the date production must finish by.
func (o *ProductionOrder) DueDate() time.Time {
	return o.s.DueDate
}

// ScheduleID is empty until the scheduler accepts the order.
func (o *ProductionOrder) ScheduleID() string {
	return o.s.ScheduleID
}

// HasSchedule reports whether a schedule ID has been recorded.
func (o *ProductionOrder) HasSchedule() bool {
	return o.s.ScheduleID != ""
}

// EstimatedDurationMinutes is the scheduler's estimate, zero before submission.
func (o *ProductionOrder) EstimatedDurationMinutes() int {
	return o.s.EstimatedDurationMinutes
}

// ExpectedCompletion is the scheduler's estimate, nil when none was given.
func (o *ProductionOrder) ExpectedCompletion() *time.Time {
	return o.s.ExpectedCompletion
}

// Status returns the current lifecycle status.
func (o *ProductionOrder) Status() Status {
	return o.s.Status
}

// CreatedByWorkstationID returns the workstation that raised the order.
func (o *ProductionOrder) CreatedByWorkstationID() kernel.WorkstationID {
	return o.s.CreatedByWorkstationID
}

// AssignedWorkstationID returns the workstation the order is assigned to.
func (o *ProductionOrder) AssignedWorkstationID() kernel.WorkstationID {
	return o.s.AssignedWorkstationID
}

// Notes returns the free-form notes.
func (o *ProductionOrder) Notes() string {
	return o.s.Notes
}

// ControlOrdersSynthesized reports whether control orders were already created from the schedule.
func (o *ProductionOrder) ControlOrdersSynthesized() bool {
	return o.s.ControlOrdersSynthesized
}

// CreatedAt returns the creation time.
func (o *ProductionOrder) CreatedAt() time.Time {
	return o.s.CreatedAt
}

// UpdatedAt returns the time of the last change.
func (o *ProductionOrder) UpdatedAt() time.Time {
	return o.s.UpdatedAt
}

// IsSubmitted reports whether the scheduler already knows this order.
func (o *ProductionOrder) IsSubmitted() bool {
	return o.s.Status == Submitted || o.s.Status == Scheduled
}

// MarkSubmitted records the scheduler's answer and moves the order to SUBMITTED.
func (o *ProductionOrder) MarkSubmitted(
	scheduleID string,
	estimatedDurationMinutes int,
	expectedCompletion *time.Time,
	now time.Time,
) error {
	if strings.TrimSpace(scheduleID) == "" {
		return ErrScheduleIDIsRequired
	}
	if err := validateDuration(estimatedDurationMinutes); err != nil {
		return err
	}
	if err := o.ChangeStatus(Submitted, now); err != nil {
		return err
	}
	o.s.ScheduleID = scheduleID
	o.s.EstimatedDurationMinutes = estimatedDurationMinutes
	o.s.ExpectedCompletion = expectedCompletion
	return nil
}

// StartProduction requires the order to be SCHEDULED.
func (o *ProductionOrder) StartProduction(now time.Time) error {
	if o.s.Status != Scheduled {
		return errs.NewIllegalTransitionError(AggregateType, o.s.Status.String(), InProduction.String())
	}
	return o.ChangeStatus(InProduction, now)
}

// Complete moves the order to COMPLETED from any non-terminal status past CREATED.
//
// Returns:
//   - nil on success
//   - *errs.IllegalTransitionError from CREATED or a terminal status
func (o *ProductionOrder) Complete(now time.Time) error {
	return o.ChangeStatus(Completed, now)
}

// CanTransitionTo reports whether the transition table allows status.
func (o *ProductionOrder) CanTransitionTo(status Status) bool {
	_, err := o.s.Status.TransitionTo(status)
	return err == nil
}

// SyncStatus applies a status reported by the scheduler. It returns false
// without error when nothing changed.
func (o *ProductionOrder) SyncStatus(status Status, now time.Time) (bool, error) {
	if status == o.s.Status {
		return false, nil
	}
	if err := o.ChangeStatus(status, now); err != nil {
		return false, err
	}
	return true, nil
}

// ChangeStatus validates the transition and records a StatusChanged event.
func (o *ProductionOrder) ChangeStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	from := o.s.Status
	next, err := from.TransitionTo(status)
	if err != nil {
		return err
	}

	o.s.Status = next
	o.s.UpdatedAt = now
	o.events.Record(kernel.StatusChanged{
		OrderType:   AggregateType,
		OrderID:     o.s.ID,
		OrderNumber: o.s.Number,
		From:        from.String(),
		To:          next.String(),
		At:          now,
	})
	return nil
}

// MarkControlOrdersSynthesized prevents the synthesis job from picking the
// order up again.
func (o *ProductionOrder) MarkControlOrdersSynthesized(now time.Time) error {
	if !o.HasSchedule() {
		return ErrScheduleIDIsRequired
	}
	o.s.ControlOrdersSynthesized = true
	o.s.UpdatedAt = now
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *ProductionOrder) DomainEvents() []kernel.DomainEvent {
	return o.events.Events()
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *ProductionOrder) ClearDomainEvents() {
	o.events.Clear()
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("productionOrderNumber")
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDurationMinutes", fmt.Errorf("%d is negative", minutes))
	}
	return nil
}
