// Package kernel provides core domain primitives for the fulfillment service.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The central primitive is Money, an integer-cents amount value object.
// Storing cents rather than floating-point currency keeps payment
// reconciliation exact: the "paid equals total" check is plain integer
// equality with no rounding drift.
package kernel
