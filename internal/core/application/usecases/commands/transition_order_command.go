package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to run one fulfillment action
// against an order on behalf of an actor. Cancellation is the same request
// with the cancel action.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	action  order.Action
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Rider-role actors must carry their rider id; whether the action itself is
// legal for the order's current status is decided in the domain.
func NewTransitionOrderCommand(orderID int64, action order.Action, actor order.Actor) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the id of the order to transition.
func (c TransitionOrderCommand) OrderID() int64 {
	return c.orderID
}

// Action returns the fulfillment action to apply.
func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

// Actor returns who is requesting the transition.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

func (c *TransitionOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a valid order id", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *TransitionOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Role.Validate(); err != nil {
		return err
	}
	if actor.Role == order.RoleRider && actor.RiderID == nil {
		return errs.NewValueIsRequiredError("rider_id")
	}

	c.actor = actor
	return nil
}
