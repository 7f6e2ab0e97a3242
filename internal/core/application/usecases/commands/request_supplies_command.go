package commands

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrRequestSuppliesCommandIsNotConstructed = errors.New(
	"RequestSuppliesCommand must be created via NewRequestSuppliesCommand constructor",
)

// RequestSuppliesCommand raises a supply order for the parts a control order
// needs. Priority, source type and requesting workstation come from the
// control order.
type RequestSuppliesCommand struct { //nolint:recvcheck //using for validation
	controlOrderID kernel.UUID
	neededBy       *time.Time
	lines          []SupplyLine
	notes          string

	guard guard.ConstructorGuard
}

func NewRequestSuppliesCommand(
	controlOrderID kernel.UUID,
	neededBy *time.Time,
	lines []SupplyLine,
	notes string,
) (RequestSuppliesCommand, error) {
	_, itemsErr := supplyItems(lines)
	if err := errors.Join(controlOrderID.Validate(), itemsErr); err != nil {
		return RequestSuppliesCommand{}, err
	}

	return RequestSuppliesCommand{
		controlOrderID: controlOrderID,
		neededBy:       neededBy,
		lines:          append([]SupplyLine(nil), lines...),
		notes:          notes,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RequestSuppliesCommand) Validate() error {
	return c.guard.Validate(ErrRequestSuppliesCommandIsNotConstructed)
}

func (c RequestSuppliesCommand) ControlOrderID() kernel.UUID {
	return c.controlOrderID
}

func (c RequestSuppliesCommand) NeededBy() *time.Time {
	return c.neededBy
}

func (c RequestSuppliesCommand) Lines() []SupplyLine {
	return c.lines
}

func (c RequestSuppliesCommand) Notes() string {
	return c.notes
}
