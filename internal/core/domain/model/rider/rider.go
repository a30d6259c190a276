package rider

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrNameIsRequired is returned when attempting to create a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a rider without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// Rider is a delivery rider on the restaurant's roster. Riders are assigned
// to delivery orders when the kitchen finishes them; the dispatcher picks the
// least-loaded active rider. Inactive riders are never assigned.
type Rider struct {
	id     int64
	name   string
	phone  string
	active bool

	guard guard.ConstructorGuard
}

// NewRider creates an active rider with no id yet; storage assigns one on
// first insert.
func NewRider(name, phone string) (*Rider, error) {
	r := &Rider{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setName(name),
		r.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider aggregate from persistent storage.
func RestoreRider(id int64, name, phone string, active bool) (*Rider, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%d is not a valid rider id", id))
	}

	r := &Rider{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setName(name),
		r.setPhone(phone),
	); err != nil {
		return nil, err
	}

	r.id = id
	return r, nil
}

// Validate checks that the Rider was created through a constructor; the zero
// value fails.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's storage identifier (0 until persisted).
func (r *Rider) ID() int64 { return r.id }

// Name returns the rider's name.
func (r *Rider) Name() string { return r.name }

// Phone returns the rider's contact phone number.
func (r *Rider) Phone() string { return r.phone }

// IsActive reports whether the rider is available for assignment.
func (r *Rider) IsActive() bool { return r.active }

// Deactivate takes the rider off the assignment roster. Deliveries already
// in progress are unaffected.
func (r *Rider) Deactivate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.active = false
	return nil
}

// Activate puts the rider back on the assignment roster.
func (r *Rider) Activate() error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.active = true
	return nil
}

// AttachID records the storage identifier assigned on first insert.
func (r *Rider) AttachID(id int64) error {
	if r.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("rider already has id %d", r.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("rider_id",
			fmt.Errorf("%d is not a valid rider id", id))
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	r.phone = phone
	return nil
}
