package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// The three order types share a common preparation phase and diverge after
// "ready":
//
//	ordered ──> under_preparation ──> ready_to_serve   ──> completed      (dine-in)
//	                              ──> ready_for_pickup ──> collected      (takeaway)
//	                              ──> ready_to_collect ──> on_the_way ──> delivered (delivery)
//
// cancelled is reachable from any non-terminal state. Status is a value
// object; transitions are decided by the transition table in this package,
// never by mutating a Status in place.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Ordered is the initial status: the order is placed and waiting for
	// the kitchen to pick it up.
	Ordered

	// UnderPreparation means the kitchen is working on the order.
	UnderPreparation

	// ReadyToCollect means a delivery order is ready for its rider.
	ReadyToCollect

	// ReadyToServe means a dine-in order is ready to be brought to the table.
	ReadyToServe

	// ReadyForPickup means a takeaway order is ready at the counter.
	ReadyForPickup

	// OnTheWay means a delivery order is with its rider. The kitchen's part
	// is done but the order is not: only the rider can finish it.
	OnTheWay

	// Delivered is the done-terminal state for delivery orders.
	Delivered

	// Completed is the done-terminal state for dine-in orders.
	Completed

	// Collected is the done-terminal state for takeaway orders.
	Collected

	// Cancelled is the terminal state for orders abandoned before completion.
	// It is not a "done" state: cancelled orders never get a completion time.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		Ordered:          "ordered",
		UnderPreparation: "under_preparation",
		ReadyToCollect:   "ready_to_collect",
		ReadyToServe:     "ready_to_serve",
		ReadyForPickup:   "ready_for_pickup",
		OnTheWay:         "on_the_way",
		Delivered:        "delivered",
		Completed:        "completed",
		Collected:        "collected",
		Cancelled:        "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Ordered:          "ordered",
		UnderPreparation: "under_preparation",
		ReadyToCollect:   "ready_to_collect",
		ReadyToServe:     "ready_to_serve",
		ReadyForPickup:   "ready_for_pickup",
		OnTheWay:         "on_the_way",
		Delivered:        "delivered",
		Completed:        "completed",
		Collected:        "collected",
		Cancelled:        "cancelled",
	}
}

// ParseStatus converts a wire/storage string to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is defined from s.
// Terminal states are delivered, completed, collected and cancelled.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Completed, Collected, Cancelled:
		return true
	default:
		return false
	}
}

// IsDone reports whether s is a done-terminal state: one the order reached
// by finishing its lifecycle rather than by cancellation. Orders in a done
// state carry a completion timestamp; cancelled orders do not.
func (s Status) IsDone() bool {
	switch s {
	case Delivered, Completed, Collected:
		return true
	default:
		return false
	}
}

// IsReady reports whether s is one of the per-type "ready" states the
// kitchen board groups into its ready bucket.
func (s Status) IsReady() bool {
	switch s {
	case ReadyToCollect, ReadyToServe, ReadyForPickup:
		return true
	default:
		return false
	}
}

// ValidateCanHaveRider validates the consistency between order status, type
// and rider assignment. A rider is attached exactly when a delivery order
// has reached ready_to_collect or later (excluding cancellation).
func (s Status) ValidateCanHaveRider(orderType OrderType, hasRider bool) error {
	riderExpected := orderType == Delivery &&
		(s == ReadyToCollect || s == OnTheWay || s == Delivered)

	if hasRider && !riderExpected {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%s %s order cannot have a rider", s, orderType))
	}
	if !hasRider && riderExpected {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%s %s order must have a rider", s, orderType))
	}
	return nil
}
