package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rider"
)

// ErrNoFreeRiders is returned when no active rider is available to take a
// delivery order. The enclosing transition must fail and roll back: storage
// never shows a ready delivery order without its rider.
var ErrNoFreeRiders = errors.New("no free riders available")

// RiderLoad pairs a rider with the number of deliveries they currently have
// in flight (assigned but not yet delivered).
type RiderLoad struct {
	Rider            *rider.Rider
	ActiveDeliveries int
}

// RiderDispatcher is a domain service that assigns a rider to a delivery
// order that has just become ready to collect. It picks the active rider with
// the fewest deliveries in flight, breaking ties by lowest rider id so
// assignment is deterministic.
type RiderDispatcher struct{}

// NewRiderDispatcher creates a RiderDispatcher.
func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// Dispatch selects the best candidate and assigns it to the order. The order
// must be a delivery order in ready_to_collect with no rider yet; those rules
// are enforced by the aggregate's AssignRider.
func (d RiderDispatcher) Dispatch(o *order.Order, candidates []RiderLoad, now time.Time) (*rider.Rider, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findLeastLoaded(candidates)
	if err != nil {
		return nil, err
	}

	if err := o.AssignRider(best.ID(), now); err != nil {
		return nil, err
	}
	return best, nil
}

func (RiderDispatcher) findLeastLoaded(candidates []RiderLoad) (*rider.Rider, error) {
	var (
		best     *rider.Rider
		bestLoad int
	)

	for _, candidate := range candidates {
		if err := candidate.Rider.Validate(); err != nil {
			return nil, err
		}
		if !candidate.Rider.IsActive() {
			continue
		}

		if best == nil ||
			candidate.ActiveDeliveries < bestLoad ||
			(candidate.ActiveDeliveries == bestLoad && candidate.Rider.ID() < best.ID()) {
			best = candidate.Rider
			bestLoad = candidate.ActiveDeliveries
		}
	}

	if best == nil {
		return nil, ErrNoFreeRiders
	}
	return best, nil
}
