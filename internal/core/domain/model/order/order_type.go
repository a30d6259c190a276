package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// OrderType distinguishes how an order leaves the kitchen: served at a
// table, collected at the counter, or handed to a rider. The type
// determines which "ready" and which done-terminal status apply.
type OrderType int

const (
	// OrderTypeUnknown represents an invalid or undefined order type.
	OrderTypeUnknown OrderType = iota

	// DineIn orders are served at a table inside the restaurant.
	DineIn

	// Takeaway orders are collected by the customer at the counter.
	Takeaway

	// Delivery orders are brought to the customer by an assigned rider.
	Delivery
)

func getOrderTypeStrings() map[OrderType]string {
	return map[OrderType]string{
		OrderTypeUnknown: "unknown",
		DineIn:           "dine_in",
		Takeaway:         "takeaway",
		Delivery:         "delivery",
	}
}

func getValidOrderTypeStrings() map[OrderType]string {
	//nolint:exhaustive // OrderTypeUnknown is intentionally excluded as it's invalid
	return map[OrderType]string{
		DineIn:   "dine_in",
		Takeaway: "takeaway",
		Delivery: "delivery",
	}
}

// ParseOrderType converts a wire/storage string to an OrderType.
func ParseOrderType(s string) (OrderType, error) {
	for t, str := range getValidOrderTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return OrderTypeUnknown, errs.NewValueIsInvalidErrorWithCause("order_type",
		fmt.Errorf("%q is not a valid order type", s))
}

// Validate checks that the OrderType is one of the defined types.
func (t OrderType) Validate() error {
	if _, ok := getValidOrderTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order_type",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the snake_case name of the order type, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (t OrderType) String() string {
	if str, ok := getOrderTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
