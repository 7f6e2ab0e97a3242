package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrSynthesizeControlOrdersCommandIsNotConstructed = errors.New(
	"SynthesizeControlOrdersCommand must be created via NewSynthesizeControlOrdersCommand constructor",
)

// SynthesizeControlOrdersCommand creates the control orders for the schedule
// of a submitted production order.
type SynthesizeControlOrdersCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSynthesizeControlOrdersCommand(orderID kernel.UUID) (SynthesizeControlOrdersCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SynthesizeControlOrdersCommand{}, err
	}

	return SynthesizeControlOrdersCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SynthesizeControlOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSynthesizeControlOrdersCommandIsNotConstructed)
}

func (c SynthesizeControlOrdersCommand) OrderID() kernel.UUID {
	return c.orderID
}
