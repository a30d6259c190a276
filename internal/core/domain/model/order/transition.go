package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Action is a fulfillment action an actor submits against an order.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionStart begins preparation of an ordered order.
	ActionStart

	// ActionFinish marks preparation done, moving the order to its
	// per-type "ready" state.
	ActionFinish

	// ActionServed hands the order over from the kitchen: to the table
	// (dine-in), the counter (takeaway), or towards the rider (delivery).
	ActionServed

	// ActionMarkPickedUp is the assigned rider collecting a delivery order.
	ActionMarkPickedUp

	// ActionMarkDelivered is the assigned rider completing a delivery order.
	ActionMarkDelivered

	// ActionCancel abandons a non-terminal order. Admin only.
	ActionCancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:       "unknown",
		ActionStart:         "start",
		ActionFinish:        "finish",
		ActionServed:        "served",
		ActionMarkPickedUp:  "mark_picked_up",
		ActionMarkDelivered: "mark_delivered",
		ActionCancel:        "cancel",
	}
}

func getValidActionStrings() map[Action]string {
	//nolint:exhaustive // ActionUnknown is intentionally excluded as it's invalid
	return map[Action]string{
		ActionStart:         "start",
		ActionFinish:        "finish",
		ActionServed:        "served",
		ActionMarkPickedUp:  "mark_picked_up",
		ActionMarkDelivered: "mark_delivered",
		ActionCancel:        "cancel",
	}
}

// ParseAction converts a wire string to an Action.
func ParseAction(s string) (Action, error) {
	for a, str := range getValidActionStrings() {
		if str == s {
			return a, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid action", s))
}

// Validate checks that the Action is one of the defined actions.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// String returns the snake_case name of the action. Implements fmt.Stringer.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Role is the capability under which an actor submits an action. The
// surrounding session/auth layer asserts the role; the domain only ever
// receives it as an explicit parameter.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCashier creates orders at the POS but never transitions them.
	RoleCashier

	// RoleKitchen prepares orders and hands them over.
	RoleKitchen

	// RoleRider picks up and delivers delivery orders assigned to them.
	RoleRider

	// RoleAdmin can perform any kitchen action, cancel orders, and edit items.
	RoleAdmin
)

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCashier: "cashier",
		RoleKitchen: "kitchen",
		RoleRider:   "rider",
		RoleAdmin:   "admin",
	}
}

// ParseRole converts a wire string to a Role.
func ParseRole(s string) (Role, error) {
	for r, str := range getValidRoleStrings() {
		if str == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the name of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor identifies who submits an action: the asserted role and, for rider
// actors, the rider's id so the aggregate can match it against the order's
// assigned rider.
type Actor struct {
	Role    Role
	RiderID *int64
}

// KitchenActor builds a kitchen-staff actor.
func KitchenActor() Actor { return Actor{Role: RoleKitchen} }

// RiderActor builds an actor for the rider with the given id.
func RiderActor(riderID int64) Actor { return Actor{Role: RoleRider, RiderID: &riderID} }

// AdminActor builds an admin actor.
func AdminActor() Actor { return Actor{Role: RoleAdmin} }

// Decision is the outcome of a legal transition: the next status plus the
// side effects the caller must commit together with it.
type Decision struct {
	// Next is the status the order moves to.
	Next Status

	// Completes indicates the order reached a done-terminal state and its
	// completion timestamp must be set.
	Completes bool

	// SettlesPayment indicates the order's payment moves to completed
	// (cash-on-delivery settling at the door).
	SettlesPayment bool

	// RiderOnly indicates the action additionally requires the caller to be
	// the order's assigned rider. The role admissibility is decided here;
	// the identity match is the aggregate's job.
	RiderOnly bool

	// ReleasesRider indicates the assigned rider, if any, must be detached
	// together with the status change. A cancelled delivery order carries no
	// rider; the rider returns to the dispatch pool.
	ReleasesRider bool
}

type transitionKey struct {
	orderType OrderType
	action    Action
}

type transitionRule struct {
	from           []Status
	to             Status
	roles          []Role
	completes      bool
	settlesPayment bool
	riderOnly      bool
	releasesRider  bool
}

// getTransitionTable returns the full transition table keyed by
// (order type, action). Illegal combinations are simply absent: a lookup
// miss is a rejection, never a fallthrough. The table is the single
// auditable source of the state machine and the unit under exhaustive test.
func getTransitionTable() map[transitionKey]transitionRule {
	kitchen := []Role{RoleKitchen, RoleAdmin}
	rider := []Role{RoleRider}
	admin := []Role{RoleAdmin}

	return map[transitionKey]transitionRule{
		// Preparation phase, shared by all types.
		{DineIn, ActionStart}:   {from: []Status{Ordered}, to: UnderPreparation, roles: kitchen},
		{Takeaway, ActionStart}: {from: []Status{Ordered}, to: UnderPreparation, roles: kitchen},
		{Delivery, ActionStart}: {from: []Status{Ordered}, to: UnderPreparation, roles: kitchen},

		{DineIn, ActionFinish}:   {from: []Status{UnderPreparation}, to: ReadyToServe, roles: kitchen},
		{Takeaway, ActionFinish}: {from: []Status{UnderPreparation}, to: ReadyForPickup, roles: kitchen},
		{Delivery, ActionFinish}: {from: []Status{UnderPreparation}, to: ReadyToCollect, roles: kitchen},

		// Hand-off phase. Dine-in and takeaway end here; a delivery order
		// served by the kitchen is merely on the way and must await its rider.
		{DineIn, ActionServed}:   {from: []Status{ReadyToServe}, to: Completed, roles: kitchen, completes: true},
		{Takeaway, ActionServed}: {from: []Status{ReadyForPickup}, to: Collected, roles: kitchen, completes: true},
		{Delivery, ActionServed}: {from: []Status{ReadyToCollect}, to: OnTheWay, roles: kitchen},

		// Rider leg, delivery only.
		{Delivery, ActionMarkPickedUp}: {
			from: []Status{ReadyToCollect}, to: OnTheWay, roles: rider, riderOnly: true,
		},
		{Delivery, ActionMarkDelivered}: {
			from: []Status{OnTheWay}, to: Delivered, roles: rider, riderOnly: true,
			completes: true, settlesPayment: true,
		},

		// Cancellation from any non-terminal state, admin only.
		{DineIn, ActionCancel}: {
			from: []Status{Ordered, UnderPreparation, ReadyToServe}, to: Cancelled, roles: admin,
		},
		{Takeaway, ActionCancel}: {
			from: []Status{Ordered, UnderPreparation, ReadyForPickup}, to: Cancelled, roles: admin,
		},
		{Delivery, ActionCancel}: {
			from: []Status{Ordered, UnderPreparation, ReadyToCollect, OnTheWay}, to: Cancelled, roles: admin,
			releasesRider: true,
		},
	}
}

// Decide resolves an action against the transition table. It is a pure
// function of (current status, order type, action, role) and performs no I/O.
//
// The checks run in a fixed sequence:
//  1. input validation (unknown status/type/action/role)
//  2. table lookup — a missing (type, action) entry is a rejection
//  3. role admissibility — checked before the status precondition so an
//     unauthorized caller learns nothing about the order's state
//  4. status precondition — a current status outside the rule's from-set
//     yields a TransitionRejectedError carrying the current status, so the
//     caller can resynchronize without guessing
//
// Decide never mutates anything: calling it twice with the same inputs
// yields the same decision or the same rejection.
func Decide(current Status, orderType OrderType, action Action, role Role) (Decision, error) {
	if err := current.Validate(); err != nil {
		return Decision{}, err
	}
	if err := orderType.Validate(); err != nil {
		return Decision{}, err
	}
	if err := action.Validate(); err != nil {
		return Decision{}, err
	}
	if err := role.Validate(); err != nil {
		return Decision{}, err
	}

	rule, ok := getTransitionTable()[transitionKey{orderType, action}]
	if !ok {
		return Decision{}, errs.NewTransitionRejectedError(action.String(), current.String())
	}

	if !roleAllowed(rule.roles, role) {
		return Decision{}, errs.NewActionNotPermittedError(action.String())
	}

	if !statusIn(rule.from, current) {
		return Decision{}, errs.NewTransitionRejectedError(action.String(), current.String())
	}

	return Decision{
		Next:           rule.to,
		Completes:      rule.completes,
		SettlesPayment: rule.settlesPayment,
		RiderOnly:      rule.riderOnly,
		ReleasesRider:  rule.releasesRider,
	}, nil
}

func roleAllowed(allowed []Role, role Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func statusIn(set []Status, s Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
