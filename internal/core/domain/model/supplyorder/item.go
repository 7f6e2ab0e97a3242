package supplyorder

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// DefaultUnit is used when a part is requested without a unit of measurement.
const DefaultUnit = "piece"

// Item is one part requested from the supply warehouse.
type Item struct {
	id                kernel.UUID
	partID            int64
	requestedQuantity int
	suppliedQuantity  int
	unit              string
	notes             string
	guard             guard.ConstructorGuard
}

// NewItem creates an unsupplied part line. An empty unit defaults to DefaultUnit.
//
// Parameters:
//   - partID: catalogue id of the part (must be positive)
//   - requestedQuantity: how many units are needed (must be positive)
//   - unit: unit of measure, e.g. "piece"
//   - notes: free text
//
// Returns:
//   - *Item: the new line with a zero supplied quantity
//   - error: joined validation errors
func NewItem(partID int64, requestedQuantity int, unit, notes string) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), partID, requestedQuantity, 0, unit, notes)
}

// RestoreItem rebuilds a part line from persisted state.
func RestoreItem(
	id kernel.UUID,
	partID int64,
	requestedQuantity, suppliedQuantity int,
	unit, notes string,
) (*Item, error) {
	var partErr, requestedErr, suppliedErr error
	if partID <= 0 {
		partErr = errs.NewValueIsInvalidErrorWithCause("partId", fmt.Errorf("%d is not greater than 0", partID))
	}
	if requestedQuantity <= 0 {
		requestedErr = errs.NewValueIsInvalidErrorWithCause(
			"requestedQuantity", fmt.Errorf("%d is not greater than 0", requestedQuantity),
		)
	}
	if suppliedQuantity < 0 {
		suppliedErr = errs.NewValueIsOutOfRangeError("suppliedQuantity", suppliedQuantity, 0, requestedQuantity)
	}
	if err := errors.Join(id.Validate(), partErr, requestedErr, suppliedErr); err != nil {
		return nil, err
	}

	if unit == "" {
		unit = DefaultUnit
	}
	return &Item{
		id:                id,
		partID:            partID,
		requestedQuantity: requestedQuantity,
		suppliedQuantity:  suppliedQuantity,
		unit:              unit,
		notes:             notes,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrItemIsNotConstructed for items built outside the constructors.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// PartID returns the catalogue id of the part.
func (i *Item) PartID() int64 {
	return i.partID
}

// RequestedQuantity returns the requested quantity.
func (i *Item) RequestedQuantity() int {
	return i.requestedQuantity
}

// SuppliedQuantity returns how much has been supplied so far.
func (i *Item) SuppliedQuantity() int {
	return i.suppliedQuantity
}

// Unit returns the unit of measure.
func (i *Item) Unit() string {
	return i.unit
}

// Notes returns the free-form notes.
func (i *Item) Notes() string {
	return i.notes
}

// IsFullySupplied reports whether the supplied quantity covers the request.
func (i *Item) IsFullySupplied() bool {
	return i.suppliedQuantity >= i.requestedQuantity
}

// supply records the supplied quantity capped at the requested quantity.
func (i *Item) supply(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("suppliedQuantity", quantity, 0, i.requestedQuantity)
	}
	i.suppliedQuantity = min(quantity, i.requestedQuantity)
	return nil
}
