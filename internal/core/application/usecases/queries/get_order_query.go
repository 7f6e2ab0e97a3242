// Package queries contains the read side: lookups of single orders by id or
// number, filtered listings and the scheduler task view. Handlers read through
// repositories bound to the base connection and never open a unit of work.
package queries

import (
	"errors"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderByIDQuery or NewGetOrderByNumberQuery constructor",
)

// GetOrderQuery selects one order either by id or by business number.
//
// Example:
//
//	query, err := queries.NewGetOrderByNumberQuery("ORD-000001")
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	id     kernel.UUID
	number string

	guard guard.ConstructorGuard
}

func NewGetOrderByIDQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

// Number is empty for lookups by id.
func (q GetOrderQuery) Number() string {
	return q.number
}

func (q GetOrderQuery) ByNumber() bool {
	return q.number != ""
}
