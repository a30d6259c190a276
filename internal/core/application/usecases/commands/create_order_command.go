package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemDraft is one proposed order line from the POS. Prices are snapshots
// taken at ordering time, not live menu lookups.
type ItemDraft struct {
	MenuItemID  int64
	VariantID   *int64
	DisplayName string
	Quantity    int
	UnitPrice   kernel.Money
}

// CreateOrderCommand represents a request to create a new order together
// with its items and the payments taken at the POS.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderType order.OrderType
	draft     order.Draft
	items     []ItemDraft
	payments  []services.PaymentDraft

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. Structural
// validation happens here; the full business rules (per-type draft fields,
// payment reconciliation) run in the domain when the handler executes.
func NewCreateOrderCommand(
	orderType order.OrderType,
	draft order.Draft,
	items []ItemDraft,
	payments []services.PaymentDraft,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		draft:    draft,
		guard:    guard.NewConstructorGuard(),
		payments: payments,
	}

	if err := errors.Join(
		cmd.setOrderType(orderType),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderType returns the order type.
func (c CreateOrderCommand) OrderType() order.OrderType {
	return c.orderType
}

// Draft returns the actor-entered order attributes.
func (c CreateOrderCommand) Draft() order.Draft {
	return c.draft
}

// Items returns the proposed order lines.
func (c CreateOrderCommand) Items() []ItemDraft {
	return c.items
}

// Payments returns the proposed payments.
func (c CreateOrderCommand) Payments() []services.PaymentDraft {
	return c.payments
}

func (c *CreateOrderCommand) setOrderType(orderType order.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemDraft) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
