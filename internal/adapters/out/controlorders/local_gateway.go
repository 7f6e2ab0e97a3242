package controlorders

import (
	"context"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/ports"
)

type controlOrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateControlOrderCommand) (*controlorder.ControlOrder, error)
}

// LocalGateway creates control orders in this service's own store. It is
// wired when no remote control order endpoint is configured.
type LocalGateway struct {
	creator controlOrderCreator
}

var _ ports.ControlOrderGateway = (*LocalGateway)(nil)

func NewLocalGateway(creator controlOrderCreator) *LocalGateway {
	return &LocalGateway{creator: creator}
}

func (g *LocalGateway) CreateControlOrder(ctx context.Context, draft controlorder.Draft) (string, error) {
	cmd, err := commands.NewCreateControlOrderCommand(draft)
	if err != nil {
		return "", err
	}
	order, err := g.creator.Handle(ctx, cmd)
	if err != nil {
		return "", err
	}
	return order.Number(), nil
}
