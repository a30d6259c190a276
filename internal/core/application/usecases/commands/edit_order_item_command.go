package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEditOrderItemCommandIsNotConstructed = errors.New(
	"EditOrderItemCommand must be created via NewEditOrderItemCommand constructor",
)

// EditOrderItemCommand represents an admin request to change the quantity of
// one order line before the order reaches a terminal state.
type EditOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID  int64
	itemID   int64
	quantity int

	guard guard.ConstructorGuard
}

// NewEditOrderItemCommand creates a command to set a new quantity on an
// order's item.
func NewEditOrderItemCommand(orderID, itemID int64, quantity int) (EditOrderItemCommand, error) {
	cmd := EditOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return EditOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderItemCommandIsNotConstructed)
}

// OrderID returns the id of the order to edit.
func (c EditOrderItemCommand) OrderID() int64 {
	return c.orderID
}

// ItemID returns the id of the order line to edit.
func (c EditOrderItemCommand) ItemID() int64 {
	return c.itemID
}

// Quantity returns the new quantity.
func (c EditOrderItemCommand) Quantity() int {
	return c.quantity
}

func (c *EditOrderItemCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *EditOrderItemCommand) setItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("%d is not a valid item id", itemID))
	}

	c.itemID = itemID
	return nil
}

func (c *EditOrderItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("quantity %d must be at least 1", quantity))
	}

	c.quantity = quantity
	return nil
}
