package queries

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
)

// OrderGetter is the slice of a repository a single-order lookup needs. Every
// repository in ports satisfies it for its own aggregate.
type OrderGetter[T any] interface {
	Get(ctx context.Context, id kernel.UUID) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
}

// GetOrderQueryHandler loads one aggregate of type T. Unknown keys surface as
// *errs.ObjectNotFoundError from the repository.
type GetOrderQueryHandler[T any] struct {
	reader OrderGetter[T]
}

func NewGetOrderQueryHandler[T any](reader OrderGetter[T]) GetOrderQueryHandler[T] {
	return GetOrderQueryHandler[T]{reader: reader}
}

func (h GetOrderQueryHandler[T]) Handle(ctx context.Context, query GetOrderQuery) (T, error) {
	var zero T
	if err := query.Validate(); err != nil {
		return zero, err
	}

	if query.ByNumber() {
		return h.reader.GetByNumber(ctx, query.Number())
	}
	return h.reader.Get(ctx, query.ID())
}
