package queries

import (
	"context"
)

// OrderFinder is the filtered listing of a repository.
type OrderFinder[T, F any] interface {
	Find(ctx context.Context, filter F) ([]T, error)
}

// ListOrdersQueryHandler returns the aggregates matching a filter. An empty
// result is an empty slice, never nil.
type ListOrdersQueryHandler[T, F any] struct {
	reader OrderFinder[T, F]
}

func NewListOrdersQueryHandler[T, F any](reader OrderFinder[T, F]) ListOrdersQueryHandler[T, F] {
	return ListOrdersQueryHandler[T, F]{reader: reader}
}

func (h ListOrdersQueryHandler[T, F]) Handle(ctx context.Context, query ListOrdersQuery[F]) ([]T, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.Find(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = make([]T, 0)
	}
	return orders, nil
}
