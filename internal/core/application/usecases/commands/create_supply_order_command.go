package commands

import (
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateSupplyOrderCommandIsNotConstructed = errors.New(
	"CreateSupplyOrderCommand must be created via NewCreateSupplyOrderCommand constructor",
)

// SupplyLine is one requested part. An empty Unit means "piece".
type SupplyLine struct {
	PartID   int64
	Quantity int
	Unit     string
	Notes    string
}

// CreateSupplyOrderCommand requests parts from the supply warehouse on behalf
// of a control order.
type CreateSupplyOrderCommand struct { //nolint:recvcheck //using for validation
	sourceControlOrderID    kernel.UUID
	sourceType              controlorder.Type
	requestingWorkstationID kernel.WorkstationID
	priority                kernel.Priority
	neededBy                *time.Time
	items                   []*supplyorder.Item
	notes                   string

	guard guard.ConstructorGuard
}

func NewCreateSupplyOrderCommand(
	sourceControlOrderID kernel.UUID,
	sourceType controlorder.Type,
	requestingWorkstationID kernel.WorkstationID,
	priority kernel.Priority,
	neededBy *time.Time,
	lines []SupplyLine,
	notes string,
) (CreateSupplyOrderCommand, error) {
	items, itemsErr := supplyItems(lines)
	if err := errors.Join(
		sourceControlOrderID.Validate(),
		sourceType.Validate(),
		requestingWorkstationID.Validate("requestingWorkstationId"),
		priority.Validate(),
		itemsErr,
	); err != nil {
		return CreateSupplyOrderCommand{}, err
	}

	return CreateSupplyOrderCommand{
		sourceControlOrderID:    sourceControlOrderID,
		sourceType:              sourceType,
		requestingWorkstationID: requestingWorkstationID,
		priority:                priority,
		neededBy:                neededBy,
		items:                   items,
		notes:                   notes,
		guard:                   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateSupplyOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateSupplyOrderCommandIsNotConstructed)
}

func (c CreateSupplyOrderCommand) SourceControlOrderID() kernel.UUID {
	return c.sourceControlOrderID
}

func (c CreateSupplyOrderCommand) SourceType() controlorder.Type {
	return c.sourceType
}

func (c CreateSupplyOrderCommand) RequestingWorkstationID() kernel.WorkstationID {
	return c.requestingWorkstationID
}

func (c CreateSupplyOrderCommand) Priority() kernel.Priority {
	return c.priority
}

func (c CreateSupplyOrderCommand) NeededBy() *time.Time {
	return c.neededBy
}

func (c CreateSupplyOrderCommand) Items() []*supplyorder.Item {
	return c.items
}

func (c CreateSupplyOrderCommand) Notes() string {
	return c.notes
}

func supplyItems(lines []SupplyLine) ([]*supplyorder.Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]*supplyorder.Item, 0, len(lines))
	for i, line := range lines {
		item, err := supplyorder.NewItem(line.PartID, line.Quantity, line.Unit, line.Notes)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		items = append(items, item)
	}
	return items, nil
}
