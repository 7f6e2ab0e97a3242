package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrUpdateControlOrderRecordCommandIsNotConstructed = errors.New(
		"UpdateControlOrderRecordCommand must be created via NewUpdateControlOrderRecordCommand constructor",
	)
	ErrNothingToUpdate = errs.NewValueIsRequiredError("operatorNotes, defects or shippingNotes")
)

// DefectsRecord is the quality outcome reported by an operator. Counts are
// stored as given.
type DefectsRecord struct {
	Found          int
	Reworked       int
	ReworkRequired bool
}

// UpdateControlOrderRecordCommand overwrites the operator record of a control
// order. Nil fields are left unchanged.
type UpdateControlOrderRecordCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	operatorNotes *string
	defects       *DefectsRecord
	shippingNotes *string

	guard guard.ConstructorGuard
}

func NewUpdateControlOrderRecordCommand(
	orderID kernel.UUID,
	operatorNotes *string,
	defects *DefectsRecord,
	shippingNotes *string,
) (UpdateControlOrderRecordCommand, error) {
	var emptyErr error
	if operatorNotes == nil && defects == nil && shippingNotes == nil {
		emptyErr = ErrNothingToUpdate
	}
	if err := errors.Join(orderID.Validate(), emptyErr); err != nil {
		return UpdateControlOrderRecordCommand{}, err
	}

	return UpdateControlOrderRecordCommand{
		orderID:       orderID,
		operatorNotes: operatorNotes,
		defects:       defects,
		shippingNotes: shippingNotes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateControlOrderRecordCommand) Validate() error {
	return c.guard.Validate(ErrUpdateControlOrderRecordCommandIsNotConstructed)
}

func (c UpdateControlOrderRecordCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateControlOrderRecordCommand) OperatorNotes() *string {
	return c.operatorNotes
}

func (c UpdateControlOrderRecordCommand) Defects() *DefectsRecord {
	return c.defects
}

func (c UpdateControlOrderRecordCommand) ShippingNotes() *string {
	return c.shippingNotes
}
