package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
	"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
)

// RemoveOrderItemCommand represents an admin request to remove one order
// line. Removing the last line is rejected by the aggregate; the admin must
// cancel the order instead.
type RemoveOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	itemID  int64

	guard guard.ConstructorGuard
}

// NewRemoveOrderItemCommand creates a command to remove an order's item.
func NewRemoveOrderItemCommand(orderID, itemID int64) (RemoveOrderItemCommand, error) {
	cmd := RemoveOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
	); err != nil {
		return RemoveOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

// OrderID returns the id of the order to edit.
func (c RemoveOrderItemCommand) OrderID() int64 {
	return c.orderID
}

// ItemID returns the id of the order line to remove.
func (c RemoveOrderItemCommand) ItemID() int64 {
	return c.itemID
}

func (c *RemoveOrderItemCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveOrderItemCommand) setItemID(itemID int64) error {
	if itemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item_id",
			fmt.Errorf("%d is not a valid item id", itemID))
	}

	c.itemID = itemID
	return nil
}
