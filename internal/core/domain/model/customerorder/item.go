package customerorder

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of a customer order: how many units of which catalogue item.
type Item struct {
	id       kernel.UUID
	itemType string
	itemID   int64
	quantity int
	notes    string
	guard    guard.ConstructorGuard
}

// NewItem creates a line item with a fresh identifier.
func NewItem(itemType string, itemID int64, quantity int, notes string) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), itemType, itemID, quantity, notes)
}

// RestoreItem rebuilds a persisted line item.
func RestoreItem(id kernel.UUID, itemType string, itemID int64, quantity int, notes string) (*Item, error) {
	if err := errors.Join(
		id.Validate(),
		validateItemType(itemType),
		validateItemID(itemID),
		validateQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:       id,
		itemType: itemType,
		itemID:   itemID,
		quantity: quantity,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
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

// ItemType classifies the ordered item. It is free text and only required to be non-empty.
func (i *Item) ItemType() string {
	return i.itemType
}

// ItemID returns the catalogue id of the ordered item.
func (i *Item) ItemID() int64 {
	return i.itemID
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// Notes returns the free-form notes.
func (i *Item) Notes() string {
	return i.notes
}

func validateItemType(itemType string) error {
	if itemType == "" {
		return errs.NewValueIsRequiredError("itemType")
	}
	return nil
}

func validateItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("itemId", fmt.Errorf("%d is not greater than 0", itemID))
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
