// Package order implements the order aggregate and its fulfillment state
// machine. An order moves from creation through preparation, hand-off and
// completion, with the path after "ready" differing by order type: dine-in
// is served in place, takeaway is collected at the counter, and delivery
// adds a rider hand-off leg before it is done.
//
// The package contains:
//   - Status, OrderType, Action, Role: the enumerations of the state machine
//   - Decide and the transition table: the pure decision component mapping
//     (status, order type, action, role) to a new status or a rejection
//   - Order: the aggregate root holding items, payments and lifecycle state
//   - Item, PaymentTransaction: entities owned by the aggregate
//
// All state changes go through the aggregate, which consults the transition
// table and maintains the invariants: completed_at is set exactly when a
// done-terminal status is reached, a rider is attached only to delivery
// orders that have reached ready_to_collect, and an order never drops to
// zero items.
package order
