package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentReconciler_Reconcile(t *testing.T) {
	reconciler := services.NewPaymentReconciler()
	total := kernel.MustMoneyFromCents(1000)

	t.Run("split_payments_summing_to_total", func(t *testing.T) {
		payments, err := reconciler.Reconcile(total, []services.PaymentDraft{
			{Method: order.Cash, Amount: kernel.MustMoneyFromCents(600)},
			{Method: order.Card, Amount: kernel.MustMoneyFromCents(400)},
		})

		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, order.Cash, payments[0].Method())
		assert.Equal(t, int64(600), payments[0].Amount().Cents())
		assert.Equal(t, order.Card, payments[1].Method())
		assert.Equal(t, int64(400), payments[1].Amount().Cents())
	})

	t.Run("rejects_the_payment_that_overshoots", func(t *testing.T) {
		_, err := reconciler.Reconcile(total, []services.PaymentDraft{
			{Method: order.Cash, Amount: kernel.MustMoneyFromCents(600)},
			{Method: order.Card, Amount: kernel.MustMoneyFromCents(400)},
			{Method: order.Cash, Amount: kernel.MustMoneyFromCents(1)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorContains(t, err, "overshoot")
	})

	t.Run("rejects_underpayment", func(t *testing.T) {
		_, err := reconciler.Reconcile(total, []services.PaymentDraft{
			{Method: order.Cash, Amount: kernel.MustMoneyFromCents(999)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		_, err := reconciler.Reconcile(total, []services.PaymentDraft{
			{Method: order.Cash, Amount: kernel.Money{}},
			{Method: order.Card, Amount: total},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_draft_list", func(t *testing.T) {
		_, err := reconciler.Reconcile(total, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_zero_total", func(t *testing.T) {
		_, err := reconciler.Reconcile(kernel.Money{}, []services.PaymentDraft{
			{Method: order.Cash, Amount: kernel.MustMoneyFromCents(1)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPaymentReconciler_QuickPay(t *testing.T) {
	reconciler := services.NewPaymentReconciler()

	payments, err := reconciler.QuickPay(kernel.MustMoneyFromCents(450), order.QR)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, order.QR, payments[0].Method())
	assert.Equal(t, int64(450), payments[0].Amount().Cents())
}
