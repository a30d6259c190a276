package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Draft carries the actor-entered attributes of a new order: who it is for
// and where it goes. Which fields are required depends on the order type.
type Draft struct {
	TableNumber     *int
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Notes           string
}

// Order is the aggregate root of the fulfillment state machine. It owns its
// items and payment transactions and is the only place order state changes.
//
// Invariants maintained by the aggregate:
//   - completedAt is set exactly when status is a done-terminal state for
//     the order's type (completed, collected, delivered); cancellation does
//     not set it
//   - a rider is attached only to delivery orders at ready_to_collect or
//     later; rider-only actions additionally require the caller to be that
//     rider
//   - there is always at least one item; totalAmount is the sum of the live
//     item subtotals and is recomputed on every item edit
//   - payment transactions are fixed at creation and sum to the creation-time
//     total (enforced by the payment reconciler before construction, and
//     re-checked here)
//
// Orders are created through NewOrder and rehydrated from storage through
// RestoreOrder; both validate all invariants.
type Order struct {
	id              int64
	orderType       OrderType
	status          Status
	tableNumber     *int
	customerName    string
	customerPhone   string
	deliveryAddress string
	notes           string
	riderID         *int64
	totalAmount     kernel.Money
	paymentStatus   PaymentStatus
	items           []*Item
	payments        []*PaymentTransaction
	createdAt       time.Time
	updatedAt       time.Time
	completedAt     *time.Time

	// persistedStatus is the status as last read from storage. The
	// conditional UPDATE guarding concurrent transitions compares against
	// it, not against the in-memory status being written.
	persistedStatus Status

	guard guard.ConstructorGuard
}

// NewOrder creates an order in the ordered status from a draft, its items
// and the payments taken at the POS.
//
// Validation rules:
//   - the order type must be valid; a table number is allowed for dine-in
//     only, a delivery address is required for delivery and rejected otherwise
//   - the customer name is required (from the owning user or entered at POS)
//   - at least one item; the total is computed from the item snapshots
//   - payments must sum exactly to the total (the reconciler in the services
//     package enforces this incrementally; the aggregate re-checks the sum
//     so a mis-assembled creation request cannot slip through)
//
// Dine-in and takeaway orders are settled at the POS, so their payment
// status is completed from the start; delivery orders stay pending until
// the rider marks them delivered.
func NewOrder(orderType OrderType, draft Draft, items []*Item, payments []*PaymentTransaction, now time.Time) (*Order, error) {
	o := &Order{
		status:          Ordered,
		persistedStatus: StatusUnknown,
		createdAt:       now,
		updatedAt:       now,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setOrderType(orderType),
		o.setDraft(orderType, draft),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totalAmount = o.computeTotal()

	if err := o.setPayments(payments); err != nil {
		return nil, err
	}

	if orderType == Delivery {
		o.paymentStatus = PaymentPending
	} else {
		o.paymentStatus = PaymentCompleted
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts any lifecycle status, but it re-validates the
// cross-field invariants so corrupt rows surface here rather than as
// impossible transitions later. The restored status becomes the baseline
// for the optimistic-concurrency guard.
func RestoreOrder(
	id int64,
	orderType OrderType,
	status Status,
	draft Draft,
	riderID *int64,
	paymentStatus PaymentStatus,
	items []*Item,
	payments []*PaymentTransaction,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a valid order id", id))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveRider(orderType, riderID != nil); err != nil {
		return nil, err
	}
	if status.IsDone() != (completedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("completed_at",
			fmt.Errorf("status %s and completed_at presence disagree", status))
	}

	o := &Order{
		status:          status,
		persistedStatus: status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		completedAt:     completedAt,
		riderID:         riderID,
		paymentStatus:   paymentStatus,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setOrderType(orderType),
		o.setDraft(orderType, draft),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.totalAmount = o.computeTotal()
	o.payments = payments
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's storage identifier (0 until persisted).
func (o *Order) ID() int64 { return o.id }

// Type returns the order type.
func (o *Order) Type() OrderType { return o.orderType }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PersistedStatus returns the status as last read from storage, the
// baseline for the conditional write.
func (o *Order) PersistedStatus() Status { return o.persistedStatus }

// TableNumber returns the table for dine-in orders, nil otherwise.
func (o *Order) TableNumber() *int { return o.tableNumber }

// CustomerName returns the customer the order is for.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the customer's phone number, possibly empty.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// DeliveryAddress returns the destination of a delivery order, empty otherwise.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// Notes returns free-form notes entered with the order.
func (o *Order) Notes() string { return o.notes }

// Rider returns the assigned rider's id, nil if none.
func (o *Order) Rider() *int64 { return o.riderID }

// TotalAmount returns the sum of the live item subtotals.
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// PaymentStatus returns the settlement state of the order's payment.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Items returns the order's lines. Callers must not mutate the slice.
func (o *Order) Items() []*Item { return o.items }

// Payments returns the payment transactions taken at creation.
func (o *Order) Payments() []*PaymentTransaction { return o.payments }

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// CompletedAt returns when the order reached a done-terminal state, nil otherwise.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// AttachID records the storage identifier assigned on first insert.
func (o *Order) AttachID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("order already has id %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	return nil
}

// Apply runs one fulfillment action against the order on behalf of an actor
// and returns the new status.
//
// The decision itself is delegated to the pure transition table; Apply adds
// the identity check for rider-only actions (the caller must be the order's
// assigned rider) and commits the decision's side effects: the status, the
// completion timestamp for done-terminal transitions, payment settlement
// for delivered orders, and rider release on cancellation.
//
// A rejected action leaves the order untouched, so applying the same
// illegal action twice yields the same rejection and no state change.
func (o *Order) Apply(action Action, actor Actor, now time.Time) (Status, error) {
	if err := o.Validate(); err != nil {
		return StatusUnknown, err
	}

	decision, err := Decide(o.status, o.orderType, action, actor.Role)
	if err != nil {
		return StatusUnknown, err
	}

	if decision.RiderOnly {
		if actor.RiderID == nil || o.riderID == nil || *actor.RiderID != *o.riderID {
			return StatusUnknown, errs.NewActionNotPermittedError(action.String())
		}
	}

	o.status = decision.Next
	if decision.Completes {
		completed := now
		o.completedAt = &completed
	}
	if decision.SettlesPayment {
		o.paymentStatus = PaymentCompleted
	}
	if decision.ReleasesRider {
		o.riderID = nil
	}
	o.updatedAt = now

	return o.status, nil
}

// AssignRider attaches a rider to a delivery order that has just become
// ready to collect. Assignment happens in the same transaction as the
// finish transition, so storage never shows a ready delivery order without
// its rider.
func (o *Order) AssignRider(riderID int64, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if riderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%d is not a valid rider id", riderID))
	}
	if o.orderType != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%s orders have no rider", o.orderType))
	}
	if o.riderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("order already assigned to rider %d", *o.riderID))
	}
	if o.status != ReadyToCollect {
		return errs.NewTransitionRejectedError("assign_rider", o.status.String())
	}

	o.riderID = &riderID
	o.updatedAt = now
	return nil
}

// ChangeItemQuantity sets a new quantity on one of the order's items and
// recomputes the total. Admin path; rejected once the order is terminal.
func (o *Order) ChangeItemQuantity(itemID int64, quantity int, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewTransitionRejectedError("edit_items", o.status.String())
	}

	item := o.findItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("order_item", itemID)
	}
	if err := item.setQuantity(quantity); err != nil {
		return err
	}

	o.totalAmount = o.computeTotal()
	o.updatedAt = now
	return nil
}

// RemoveItem removes one of the order's items and recomputes the total.
// Removing the last item is rejected: an order cannot exist without items,
// the caller must cancel it instead. Admin path; rejected once terminal.
func (o *Order) RemoveItem(itemID int64, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewTransitionRejectedError("edit_items", o.status.String())
	}
	if len(o.items) == 1 {
		return errs.NewValueIsInvalidErrorWithCause("items",
			errors.New("an order must keep at least one item; cancel the order instead"))
	}

	item := o.findItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("order_item", itemID)
	}

	remaining := make([]*Item, 0, len(o.items)-1)
	for _, candidate := range o.items {
		if candidate != item {
			remaining = append(remaining, candidate)
		}
	}
	o.items = remaining

	o.totalAmount = o.computeTotal()
	o.updatedAt = now
	return nil
}

func (o *Order) findItem(itemID int64) *Item {
	for _, item := range o.items {
		if item.id == itemID {
			return item
		}
	}
	return nil
}

func (o *Order) computeTotal() kernel.Money {
	var total kernel.Money
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setOrderType(orderType OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setDraft(orderType OrderType, draft Draft) error {
	if draft.CustomerName == "" {
		return errs.NewValueIsRequiredError("customer_name")
	}
	if draft.TableNumber != nil && orderType != DineIn {
		return errs.NewValueIsInvalidErrorWithCause("table_number",
			fmt.Errorf("%s orders have no table", orderType))
	}
	if orderType == Delivery && draft.DeliveryAddress == "" {
		return errs.NewValueIsRequiredError("delivery_address")
	}
	if orderType != Delivery && draft.DeliveryAddress != "" {
		return errs.NewValueIsInvalidErrorWithCause("delivery_address",
			fmt.Errorf("%s orders have no delivery address", orderType))
	}

	o.tableNumber = draft.TableNumber
	o.customerName = draft.CustomerName
	o.customerPhone = draft.CustomerPhone
	o.deliveryAddress = draft.DeliveryAddress
	o.notes = draft.Notes
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setPayments(payments []*PaymentTransaction) error {
	if len(payments) == 0 {
		return errs.NewValueIsRequiredError("payments")
	}

	var paid kernel.Money
	for _, payment := range payments {
		if err := payment.Validate(); err != nil {
			return err
		}
		paid = paid.Add(payment.Amount())
	}
	if !paid.Equals(o.totalAmount) {
		return errs.NewValueIsInvalidErrorWithCause("payments",
			fmt.Errorf("paid %s does not equal order total %s", paid, o.totalAmount))
	}

	o.payments = payments
	return nil
}
