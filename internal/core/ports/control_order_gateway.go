package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/controlorder"
)

// ControlOrderGateway creates a control order from a draft and returns the
// number it was given. It is either the remote control order endpoint or the
// local create command.
type ControlOrderGateway interface {
	CreateControlOrder(ctx context.Context, draft controlorder.Draft) (string, error)
}
