package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrObjectNotFound         = errors.New("object not found")
	ErrTransitionRejected     = errors.New("transition rejected")
	ErrActionNotPermitted     = errors.New("action not permitted")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// sanitize strips newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ValueIsRequiredError indicates a required value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value is malformed or violates a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates a referenced object does not exist in storage.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// TransitionRejectedError indicates an action is not applicable to the
// order's current status and type. It carries the current status so the
// caller can render an accurate error and resynchronize its view.
type TransitionRejectedError struct {
	Action        string
	CurrentStatus string
	Cause         error
}

// NewTransitionRejectedError creates a TransitionRejectedError for the
// given action against the given current status.
func NewTransitionRejectedError(action, currentStatus string) *TransitionRejectedError {
	return &TransitionRejectedError{Action: action, CurrentStatus: currentStatus}
}

// NewTransitionRejectedErrorWithCause creates a TransitionRejectedError wrapping a cause.
func NewTransitionRejectedErrorWithCause(action, currentStatus string, cause error) *TransitionRejectedError {
	return &TransitionRejectedError{Action: action, CurrentStatus: currentStatus, Cause: cause}
}

func (e *TransitionRejectedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: action %q is not applicable to status %q (cause: %s)",
			ErrTransitionRejected, e.Action, e.CurrentStatus, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: action %q is not applicable to status %q",
		ErrTransitionRejected, e.Action, e.CurrentStatus))
}

func (e *TransitionRejectedError) Unwrap() error {
	return ErrTransitionRejected
}

// ActionNotPermittedError indicates the acting role or identity may not
// perform the requested action. The message stays generic so a caller
// probing another actor's order learns nothing about it.
type ActionNotPermittedError struct {
	Action string
}

// NewActionNotPermittedError creates an ActionNotPermittedError for the given action.
func NewActionNotPermittedError(action string) *ActionNotPermittedError {
	return &ActionNotPermittedError{Action: action}
}

func (e *ActionNotPermittedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrActionNotPermitted, e.Action))
}

func (e *ActionNotPermittedError) Unwrap() error {
	return ErrActionNotPermitted
}

// ConcurrentModificationError indicates the conditional write guarding a
// transition found the record already changed by a concurrent caller.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for
// the named parameter and id.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v", ErrConcurrentModification, e.ParamName, e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
