package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)

func mustItem(t *testing.T, name string, quantity int, unitPriceCents int64) *order.Item {
	t.Helper()
	item, err := order.NewItem(1, nil, name, quantity, kernel.MustMoneyFromCents(unitPriceCents))
	require.NoError(t, err)
	return item
}

func mustPayment(t *testing.T, method order.PaymentMethod, amountCents int64) *order.PaymentTransaction {
	t.Helper()
	payment, err := order.NewPaymentTransaction(method, kernel.MustMoneyFromCents(amountCents))
	require.NoError(t, err)
	return payment
}

func newDineInOrder(t *testing.T) *order.Order {
	t.Helper()
	table := 4
	o, err := order.NewOrder(order.DineIn,
		order.Draft{TableNumber: &table, CustomerName: "Walk-in"},
		[]*order.Item{mustItem(t, "Pad Thai", 2, 500)},
		[]*order.PaymentTransaction{mustPayment(t, order.Cash, 1000)},
		testClock)
	require.NoError(t, err)
	return o
}

func newDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.Delivery,
		order.Draft{
			CustomerName:    "Ada",
			CustomerPhone:   "555-0101",
			DeliveryAddress: "1 Infinite Loop",
		},
		[]*order.Item{mustItem(t, "Green Curry", 1, 1200)},
		[]*order.PaymentTransaction{mustPayment(t, order.Card, 1200)},
		testClock)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_ordered_order_with_computed_total", func(t *testing.T) {
		o := newDineInOrder(t)

		assert.Equal(t, order.Ordered, o.Status())
		assert.Equal(t, int64(1000), o.TotalAmount().Cents())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.Rider())
		assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())
	})

	t.Run("delivery_payment_stays_pending_until_delivered", func(t *testing.T) {
		o := newDeliveryOrder(t)

		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	})

	t.Run("rejects_empty_item_list", func(t *testing.T) {
		_, err := order.NewOrder(order.Takeaway,
			order.Draft{CustomerName: "Bob"},
			nil,
			[]*order.PaymentTransaction{mustPayment(t, order.Cash, 100)},
			testClock)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_payments_not_matching_total", func(t *testing.T) {
		_, err := order.NewOrder(order.Takeaway,
			order.Draft{CustomerName: "Bob"},
			[]*order.Item{mustItem(t, "Latte", 1, 450)},
			[]*order.PaymentTransaction{mustPayment(t, order.Cash, 400)},
			testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_table_number_on_non_dine_in", func(t *testing.T) {
		table := 7
		_, err := order.NewOrder(order.Takeaway,
			order.Draft{TableNumber: &table, CustomerName: "Bob"},
			[]*order.Item{mustItem(t, "Latte", 1, 450)},
			[]*order.PaymentTransaction{mustPayment(t, order.Cash, 450)},
			testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires_delivery_address_for_delivery", func(t *testing.T) {
		_, err := order.NewOrder(order.Delivery,
			order.Draft{CustomerName: "Ada"},
			[]*order.Item{mustItem(t, "Curry", 1, 1200)},
			[]*order.PaymentTransaction{mustPayment(t, order.Card, 1200)},
			testClock)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_delivery_address_on_dine_in", func(t *testing.T) {
		table := 2
		_, err := order.NewOrder(order.DineIn,
			order.Draft{TableNumber: &table, CustomerName: "Ada", DeliveryAddress: "somewhere"},
			[]*order.Item{mustItem(t, "Curry", 1, 1200)},
			[]*order.PaymentTransaction{mustPayment(t, order.Card, 1200)},
			testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

// TestOrder_DineInLifecycle walks the dine-in path:
// ordered → under_preparation → ready_to_serve → completed.
func TestOrder_DineInLifecycle(t *testing.T) {
	o := newDineInOrder(t)
	kitchen := order.KitchenActor()

	status, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.UnderPreparation, status)
	assert.Nil(t, o.CompletedAt())

	status, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyToServe, status)
	assert.Nil(t, o.CompletedAt())

	servedAt := testClock.Add(20 * time.Minute)
	status, err = o.Apply(order.ActionServed, kitchen, servedAt)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, status)
	require.NotNil(t, o.CompletedAt())
	assert.Equal(t, servedAt, *o.CompletedAt())
}

// TestOrder_TakeawayLifecycle walks the takeaway path:
// ordered → under_preparation → ready_for_pickup → collected.
func TestOrder_TakeawayLifecycle(t *testing.T) {
	o, err := order.NewOrder(order.Takeaway,
		order.Draft{CustomerName: "Bob", CustomerPhone: "555-0102"},
		[]*order.Item{mustItem(t, "Latte", 2, 450)},
		[]*order.PaymentTransaction{mustPayment(t, order.QR, 900)},
		testClock)
	require.NoError(t, err)

	kitchen := order.KitchenActor()

	_, err = o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, o.Status())

	status, err := o.Apply(order.ActionServed, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.Collected, status)
	require.NotNil(t, o.CompletedAt())
}

// TestOrder_DeliveryLifecycle walks the delivery path including the rider
// hand-off leg: "served" by the kitchen is explicitly not terminal.
func TestOrder_DeliveryLifecycle(t *testing.T) {
	o := newDeliveryOrder(t)
	kitchen := order.KitchenActor()
	rider := order.RiderActor(9)

	_, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	assert.Nil(t, o.Rider())

	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyToCollect, o.Status())

	require.NoError(t, o.AssignRider(9, testClock))
	require.NotNil(t, o.Rider())
	assert.Equal(t, int64(9), *o.Rider())

	status, err := o.Apply(order.ActionMarkPickedUp, rider, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.OnTheWay, status)
	assert.Nil(t, o.CompletedAt())
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())

	deliveredAt := testClock.Add(40 * time.Minute)
	status, err = o.Apply(order.ActionMarkDelivered, rider, deliveredAt)
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, status)
	require.NotNil(t, o.CompletedAt())
	assert.Equal(t, deliveredAt, *o.CompletedAt())
	assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())
}

func TestOrder_KitchenServedHandsDeliveryToRider(t *testing.T) {
	// The kitchen "serving" a delivery order only moves it on the way; a
	// separate rider event finishes it.
	o := newDeliveryOrder(t)
	kitchen := order.KitchenActor()

	_, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	require.NoError(t, o.AssignRider(9, testClock))

	status, err := o.Apply(order.ActionServed, kitchen, testClock)
	require.NoError(t, err)
	assert.Equal(t, order.OnTheWay, status)
	assert.Nil(t, o.CompletedAt(), "on_the_way is not terminal")
}

func TestOrder_IllegalTransitionLeavesStateUntouched(t *testing.T) {
	o := newDineInOrder(t)

	for range 2 {
		_, err := o.Apply(order.ActionServed, order.KitchenActor(), testClock)

		require.ErrorIs(t, err, errs.ErrTransitionRejected)
		assert.Equal(t, order.Ordered, o.Status())
		assert.Nil(t, o.CompletedAt())
	}
}

func TestOrder_RiderIdentityEnforced(t *testing.T) {
	o := newDeliveryOrder(t)
	kitchen := order.KitchenActor()

	_, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	require.NoError(t, o.AssignRider(9, testClock))

	t.Run("foreign_rider_is_rejected_generically", func(t *testing.T) {
		_, err := o.Apply(order.ActionMarkPickedUp, order.RiderActor(13), testClock)

		require.ErrorIs(t, err, errs.ErrActionNotPermitted)
		assert.Equal(t, order.ReadyToCollect, o.Status())
	})

	t.Run("assigned_rider_is_accepted", func(t *testing.T) {
		_, err := o.Apply(order.ActionMarkPickedUp, order.RiderActor(9), testClock)

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())
	})
}

func TestOrder_AssignRider(t *testing.T) {
	t.Run("rejected_before_ready_to_collect", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.AssignRider(9, testClock)

		require.ErrorIs(t, err, errs.ErrTransitionRejected)
		assert.Nil(t, o.Rider())
	})

	t.Run("rejected_on_non_delivery_orders", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.AssignRider(9, testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejected_when_already_assigned", func(t *testing.T) {
		o := newDeliveryOrder(t)
		kitchen := order.KitchenActor()
		_, err := o.Apply(order.ActionStart, kitchen, testClock)
		require.NoError(t, err)
		_, err = o.Apply(order.ActionFinish, kitchen, testClock)
		require.NoError(t, err)
		require.NoError(t, o.AssignRider(9, testClock))

		err = o.AssignRider(10, testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, int64(9), *o.Rider())
	})
}

func TestOrder_CancelNeverSetsCompletedAt(t *testing.T) {
	o := newDineInOrder(t)

	status, err := o.Apply(order.ActionCancel, order.AdminActor(), testClock)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, status)
	assert.Nil(t, o.CompletedAt())
}

// TestOrder_CancelAssignedDeliveryReleasesRider cancels a delivery order
// after rider assignment: the rider must be detached together with the
// status change, and the resulting state must survive a storage round trip.
func TestOrder_CancelAssignedDeliveryReleasesRider(t *testing.T) {
	o := newDeliveryOrder(t)
	kitchen := order.KitchenActor()

	_, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	require.NoError(t, o.AssignRider(9, testClock))

	status, err := o.Apply(order.ActionCancel, order.AdminActor(), testClock)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, status)
	assert.Nil(t, o.Rider(), "cancellation returns the rider to the pool")
	assert.Nil(t, o.CompletedAt())

	restored, err := order.RestoreOrder(1, order.Delivery, o.Status(), order.Draft{
		CustomerName:    o.CustomerName(),
		CustomerPhone:   o.CustomerPhone(),
		DeliveryAddress: o.DeliveryAddress(),
		Notes:           o.Notes(),
	}, o.Rider(), o.PaymentStatus(), o.Items(), o.Payments(),
		o.CreatedAt(), o.UpdatedAt(), o.CompletedAt())

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, restored.Status())
	assert.Nil(t, restored.Rider())
}

func TestOrder_CancelOnTheWayDeliveryReleasesRider(t *testing.T) {
	o := newDeliveryOrder(t)
	kitchen := order.KitchenActor()

	_, err := o.Apply(order.ActionStart, kitchen, testClock)
	require.NoError(t, err)
	_, err = o.Apply(order.ActionFinish, kitchen, testClock)
	require.NoError(t, err)
	require.NoError(t, o.AssignRider(9, testClock))
	_, err = o.Apply(order.ActionMarkPickedUp, order.RiderActor(9), testClock)
	require.NoError(t, err)

	status, err := o.Apply(order.ActionCancel, order.AdminActor(), testClock)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, status)
	assert.Nil(t, o.Rider())
}

func TestOrder_ItemEditing(t *testing.T) {
	twoLines := func(t *testing.T) *order.Order {
		t.Helper()
		itemA, err := order.RestoreItem(1, 10, nil, "Pad Thai", 2, kernel.MustMoneyFromCents(500))
		require.NoError(t, err)
		itemB, err := order.RestoreItem(2, 11, nil, "Spring Rolls", 1, kernel.MustMoneyFromCents(300))
		require.NoError(t, err)

		table := 4
		o, restoreErr := order.RestoreOrder(42, order.DineIn, order.Ordered,
			order.Draft{TableNumber: &table, CustomerName: "Walk-in"},
			nil, order.PaymentCompleted,
			[]*order.Item{itemA, itemB}, nil,
			testClock, testClock, nil)
		require.NoError(t, restoreErr)
		return o
	}

	t.Run("quantity_change_recomputes_total", func(t *testing.T) {
		o := twoLines(t)
		require.Equal(t, int64(1300), o.TotalAmount().Cents())

		require.NoError(t, o.ChangeItemQuantity(1, 3, testClock))

		assert.Equal(t, int64(1800), o.TotalAmount().Cents())
	})

	t.Run("quantity_below_one_is_rejected", func(t *testing.T) {
		o := twoLines(t)

		err := o.ChangeItemQuantity(1, 0, testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, int64(1300), o.TotalAmount().Cents())
	})

	t.Run("removal_recomputes_total_from_remaining_items", func(t *testing.T) {
		o := twoLines(t)

		require.NoError(t, o.RemoveItem(1, testClock))

		assert.Len(t, o.Items(), 1)
		assert.Equal(t, int64(300), o.TotalAmount().Cents())
	})

	t.Run("removing_the_last_item_is_rejected", func(t *testing.T) {
		o := twoLines(t)
		require.NoError(t, o.RemoveItem(1, testClock))

		err := o.RemoveItem(2, testClock)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("unknown_item_is_not_found", func(t *testing.T) {
		o := twoLines(t)

		err := o.RemoveItem(99, testClock)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("edits_rejected_on_terminal_orders", func(t *testing.T) {
		o := twoLines(t)
		_, err := o.Apply(order.ActionCancel, order.AdminActor(), testClock)
		require.NoError(t, err)

		require.ErrorIs(t, o.ChangeItemQuantity(1, 3, testClock), errs.ErrTransitionRejected)
		require.ErrorIs(t, o.RemoveItem(1, testClock), errs.ErrTransitionRejected)
	})
}

func TestRestoreOrder_InvariantChecks(t *testing.T) {
	item := func(t *testing.T) []*order.Item {
		t.Helper()
		i, err := order.RestoreItem(1, 10, nil, "Curry", 1, kernel.MustMoneyFromCents(1200))
		require.NoError(t, err)
		return []*order.Item{i}
	}
	draft := order.Draft{CustomerName: "Ada", DeliveryAddress: "1 Infinite Loop"}

	t.Run("round_trip_through_restore", func(t *testing.T) {
		rider := int64(9)
		completed := testClock.Add(time.Hour)

		o, err := order.RestoreOrder(7, order.Delivery, order.Delivered, draft,
			&rider, order.PaymentCompleted, item(t), nil,
			testClock, completed, &completed)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Delivered, o.PersistedStatus())
		assert.Equal(t, int64(1200), o.TotalAmount().Cents())
	})

	t.Run("rejects_done_status_without_completed_at", func(t *testing.T) {
		rider := int64(9)

		_, err := order.RestoreOrder(7, order.Delivery, order.Delivered, draft,
			&rider, order.PaymentCompleted, item(t), nil,
			testClock, testClock, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_completed_at_on_active_status", func(t *testing.T) {
		completed := testClock

		_, err := order.RestoreOrder(7, order.Delivery, order.Ordered, draft,
			nil, order.PaymentPending, item(t), nil,
			testClock, testClock, &completed)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_ready_delivery_without_rider", func(t *testing.T) {
		_, err := order.RestoreOrder(7, order.Delivery, order.ReadyToCollect, draft,
			nil, order.PaymentPending, item(t), nil,
			testClock, testClock, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_rider_on_unprepared_delivery", func(t *testing.T) {
		rider := int64(9)

		_, err := order.RestoreOrder(7, order.Delivery, order.Ordered, draft,
			&rider, order.PaymentPending, item(t), nil,
			testClock, testClock, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order

	require.ErrorIs(t, (&o).Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newDineInOrder(t).Validate())
}

func TestPaymentTransaction(t *testing.T) {
	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		_, err := order.NewPaymentTransaction(order.Cash, kernel.Money{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("assigns_identity", func(t *testing.T) {
		p := mustPayment(t, order.Card, 100)

		assert.NotEqual(t, p.ID().String(), "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, order.Card, p.Method())
	})
}
