package warehouseorder

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of a warehouse order with its fulfillment progress.
type Item struct {
	id                kernel.UUID
	itemID            int64
	itemName          string
	itemType          string
	requestedQuantity int
	fulfilledQuantity int
	guard             guard.ConstructorGuard
}

// NewItem creates an unfulfilled line.
func NewItem(itemID int64, itemName, itemType string, requestedQuantity int) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), itemID, itemName, itemType, requestedQuantity, 0)
}

// RestoreItem rebuilds an item line from persisted state.
func RestoreItem(
	id kernel.UUID,
	itemID int64,
	itemName, itemType string,
	requestedQuantity, fulfilledQuantity int,
) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		validateItemID(itemID),
		validateItemType(itemType),
		validateQuantities(requestedQuantity, fulfilledQuantity),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:                id,
		itemID:            itemID,
		itemName:          itemName,
		itemType:          itemType,
		requestedQuantity: requestedQuantity,
		fulfilledQuantity: fulfilledQuantity,
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

// ItemID returns the catalogue id of the requested item.
func (i *Item) ItemID() int64 {
	return i.itemID
}

// ItemName returns the display name of the item.
func (i *Item) ItemName() string {
	return i.itemName
}

// ItemType returns the item classification.
func (i *Item) ItemType() string {
	return i.itemType
}

// RequestedQuantity returns the requested quantity.
func (i *Item) RequestedQuantity() int {
	return i.requestedQuantity
}

// FulfilledQuantity returns how much has been fulfilled so far.
func (i *Item) FulfilledQuantity() int {
	return i.fulfilledQuantity
}

// IsFullyFulfilled reports whether the fulfilled quantity reached the requested quantity.
func (i *Item) IsFullyFulfilled() bool {
	return i.fulfilledQuantity == i.requestedQuantity
}

// Fulfill sets the fulfilled quantity. It must stay within [0, requested].
func (i *Item) Fulfill(quantity int) error {
	if quantity < 0 || quantity > i.requestedQuantity {
		return errs.NewValueIsOutOfRangeError("fulfilledQuantity", quantity, 0, i.requestedQuantity)
	}
	i.fulfilledQuantity = quantity
	return nil
}

func validateItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("itemId", fmt.Errorf("%d is not greater than 0", itemID))
	}
	return nil
}

func validateItemType(itemType string) error {
	if itemType == "" {
		return errs.NewValueIsRequiredError("itemType")
	}
	return nil
}

func validateQuantities(requested, fulfilled int) error {
	if requested <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requestedQuantity", fmt.Errorf("%d is not greater than 0", requested))
	}
	if fulfilled < 0 || fulfilled > requested {
		return errs.NewValueIsOutOfRangeError("fulfilledQuantity", fulfilled, 0, requested)
	}
	return nil
}
