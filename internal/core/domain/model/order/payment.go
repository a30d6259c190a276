package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/google/uuid"
)

// ErrPaymentIsNotConstructed is returned when a PaymentTransaction was not
// created through NewPaymentTransaction or RestorePaymentTransaction.
var ErrPaymentIsNotConstructed = errors.New(
	"PaymentTransaction must be created via NewPaymentTransaction constructor")

// PaymentMethod is the tender used for a payment transaction.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined method.
	PaymentMethodUnknown PaymentMethod = iota

	// Cash payment taken at the POS or at the door.
	Cash

	// Card payment through the terminal.
	Card

	// QR wallet payment.
	QR
)

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Cash: "cash",
		Card: "card",
		QR:   "qr",
	}
}

// ParsePaymentMethod converts a wire/storage string to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, str := range getValidPaymentMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment_method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the PaymentMethod is one of the defined methods.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment_method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the name of the payment method. Implements fmt.Stringer.
func (m PaymentMethod) String() string {
	if str, ok := getValidPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus is the settlement state of an order's payment as a whole.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending means the money has not changed hands yet
	// (cash on delivery while the order is en route).
	PaymentPending

	// PaymentCompleted means the order is settled.
	PaymentCompleted
)

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentStatusUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "pending",
		PaymentCompleted: "completed",
	}
}

// ParsePaymentStatus converts a wire/storage string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for ps, str := range getValidPaymentStatusStrings() {
		if str == s {
			return ps, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment_status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the PaymentStatus is one of the defined states.
func (ps PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[ps]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment_status",
			fmt.Errorf("%d is not a valid payment status", ps))
	}
	return nil
}

// String returns the name of the payment status. Implements fmt.Stringer.
func (ps PaymentStatus) String() string {
	if str, ok := getValidPaymentStatusStrings()[ps]; ok {
		return str
	}
	return "unknown"
}

// PaymentTransaction is one tender applied to an order: a method and a
// positive amount. The POS generates the transaction id so a retried order
// submission carries recognizable payment identities.
type PaymentTransaction struct {
	id     uuid.UUID
	method PaymentMethod
	amount kernel.Money

	guard guard.ConstructorGuard
}

// NewPaymentTransaction creates a payment of the given method and amount.
// The amount must be strictly positive.
func NewPaymentTransaction(method PaymentMethod, amount kernel.Money) (*PaymentTransaction, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("payment amount %s is not positive", amount))
	}

	return &PaymentTransaction{
		id:     uuid.New(),
		method: method,
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestorePaymentTransaction reconstructs a PaymentTransaction from storage.
func RestorePaymentTransaction(id uuid.UUID, method PaymentMethod, amount kernel.Money) (*PaymentTransaction, error) {
	if id == uuid.Nil {
		return nil, errs.NewValueIsRequiredError("payment_id")
	}

	payment, err := NewPaymentTransaction(method, amount)
	if err != nil {
		return nil, err
	}

	payment.id = id
	return payment, nil
}

// Validate ensures the PaymentTransaction was created through a constructor.
func (p *PaymentTransaction) Validate() error {
	if p == nil || p.guard.Validate(ErrPaymentIsNotConstructed) != nil {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the transaction identity.
func (p *PaymentTransaction) ID() uuid.UUID {
	return p.id
}

// Method returns the tender used.
func (p *PaymentTransaction) Method() PaymentMethod {
	return p.method
}

// Amount returns the paid amount.
func (p *PaymentTransaction) Amount() kernel.Money {
	return p.amount
}
