// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fulfillment system. It
// implements logic that does not naturally belong to a single aggregate root.
//
// The package includes:
//   - PaymentReconciler: validates split payments against an order total at
//     creation time
//   - KitchenBoardProjector: projects the live order set into the kitchen
//     board's display buckets
//   - RiderDispatcher: picks the least-loaded active rider for a delivery
//     order that just became ready to collect
package services
