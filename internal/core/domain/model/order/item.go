package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order: a menu item reference with the quantity and
// the unit price snapshotted at ordering time. The price is deliberately a
// copy, not a live menu lookup — later menu edits must not change what the
// customer agreed to pay.
type Item struct {
	id          int64
	menuItemID  int64
	variantID   *int64
	displayName string
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates an order line for a menu item. Quantity must be at least 1
// and the display name non-empty; the unit price may be zero (comped items).
func NewItem(menuItemID int64, variantID *int64, displayName string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setDisplayName(displayName),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	item.variantID = variantID
	item.unitPrice = unitPrice
	return item, nil
}

// RestoreItem reconstructs an Item from persistent storage.
func RestoreItem(id, menuItemID int64, variantID *int64, displayName string, quantity int, unitPrice kernel.Money) (*Item, error) {
	item, err := NewItem(menuItemID, variantID, displayName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	item.id = id
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || i.guard.Validate(ErrItemIsNotConstructed) != nil {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's storage identifier (0 until persisted).
func (i *Item) ID() int64 {
	return i.id
}

// MenuItemID returns the referenced menu item.
func (i *Item) MenuItemID() int64 {
	return i.menuItemID
}

// VariantID returns the optional menu variant reference.
func (i *Item) VariantID() *int64 {
	return i.variantID
}

// DisplayName returns the name shown on tickets and receipts.
func (i *Item) DisplayName() string {
	return i.displayName
}

// Quantity returns how many units of the menu item were ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot taken at ordering time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i *Item) Subtotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}

// AttachID records the storage identifier assigned on first insert.
func (i *Item) AttachID(id int64) error {
	if i.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("item already has id %d", i.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("%d is not a valid id", id))
	}
	i.id = id
	return nil
}

func (i *Item) setMenuItemID(menuItemID int64) error {
	if menuItemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("menu_item_id",
			fmt.Errorf("%d is not a valid menu item id", menuItemID))
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *Item) setDisplayName(displayName string) error {
	if displayName == "" {
		return errs.NewValueIsRequiredError("display_name")
	}
	i.displayName = displayName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	i.quantity = quantity
	return nil
}
