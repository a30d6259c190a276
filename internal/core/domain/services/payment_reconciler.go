package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// PaymentDraft is one proposed payment from the POS: how the customer pays
// and how much of the total that payment covers.
type PaymentDraft struct {
	Method order.PaymentMethod
	Amount kernel.Money
}

// PaymentReconciler is a domain service that validates a set of proposed
// payments against an order's computed total before the order may be created.
//
// Rules:
//   - every payment amount must be strictly positive
//   - the running sum must never exceed the total: the payment that would
//     overshoot is rejected outright, never silently clipped
//   - the order may be confirmed only when the payments sum to exactly the
//     total (amounts are integer cents, so equality is exact)
//
// Payments are fixed at creation time; there is no post-creation capture.
type PaymentReconciler struct{}

// NewPaymentReconciler creates a PaymentReconciler.
func NewPaymentReconciler() PaymentReconciler {
	return PaymentReconciler{}
}

// Reconcile validates the drafts against the total in order and returns the
// payment transactions to persist with the order. The drafts are processed in
// the sequence the cashier entered them, so a rejection names the first
// payment that breaks the rules.
func (PaymentReconciler) Reconcile(total kernel.Money, drafts []PaymentDraft) ([]*order.PaymentTransaction, error) {
	if len(drafts) == 0 {
		return nil, errs.NewValueIsRequiredError("payments")
	}
	if !total.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("total_amount",
			fmt.Errorf("order total %s must be positive", total))
	}

	payments := make([]*order.PaymentTransaction, 0, len(drafts))
	var paid kernel.Money
	for i, draft := range drafts {
		payment, err := order.NewPaymentTransaction(draft.Method, draft.Amount)
		if err != nil {
			return nil, err
		}

		next := paid.Add(draft.Amount)
		if next.GreaterThan(total) {
			return nil, errs.NewValueIsInvalidErrorWithCause("payments",
				fmt.Errorf("payment %d of %s would overshoot the order total %s (already paid %s)",
					i+1, draft.Amount, total, paid))
		}

		paid = next
		payments = append(payments, payment)
	}

	if !paid.Equals(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("payments",
			fmt.Errorf("paid %s does not cover the order total %s", paid, total))
	}

	return payments, nil
}

// QuickPay is the single-payment shortcut: one payment of exactly the full
// total, skipping incremental accumulation.
func (r PaymentReconciler) QuickPay(total kernel.Money, method order.PaymentMethod) ([]*order.PaymentTransaction, error) {
	return r.Reconcile(total, []PaymentDraft{{Method: method, Amount: total}})
}
