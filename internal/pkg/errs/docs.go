// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Generic validation errors:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or out of its allowed domain
//   - ObjectNotFoundError: a referenced object does not exist
//
// Fulfillment-specific errors:
//   - TransitionRejectedError: a legal action is not applicable to the order's
//     current status/type; carries the current status so callers can resynchronize
//   - ActionNotPermittedError: the acting role/identity may not perform the
//     action; deliberately generic so it leaks nothing about the order
//   - ConcurrentModificationError: the optimistic-concurrency guard tripped;
//     the caller should refetch the order and retry
//
// Each type follows the same pattern: a sentinel error variable, a struct
// carrying details plus an optional Cause, constructors with and without
// cause, and Error()/Unwrap() methods so errors.Is classification works
// across layer boundaries.
package errs
