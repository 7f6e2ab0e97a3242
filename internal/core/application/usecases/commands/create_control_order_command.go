package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateControlOrderCommandIsNotConstructed = errors.New(
	"CreateControlOrderCommand must be created via NewCreateControlOrderCommand constructor",
)

// CreateControlOrderCommand issues a production or assembly control order.
type CreateControlOrderCommand struct { //nolint:recvcheck //using for validation
	draft controlorder.Draft

	guard guard.ConstructorGuard
}

func NewCreateControlOrderCommand(draft controlorder.Draft) (CreateControlOrderCommand, error) {
	if err := draft.Validate(); err != nil {
		return CreateControlOrderCommand{}, err
	}

	return CreateControlOrderCommand{
		draft: draft,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateControlOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateControlOrderCommandIsNotConstructed)
}

func (c CreateControlOrderCommand) Draft() controlorder.Draft {
	return c.draft
}
