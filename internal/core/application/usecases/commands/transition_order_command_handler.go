package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// TransitionOrderCommandHandler handles fulfillment transitions: it re-reads
// the order inside the transaction, lets the aggregate decide, and persists
// the outcome with the optimistic-concurrency guard.
//
// When the kitchen finishes a delivery order, a rider is dispatched in the
// same transaction, so the order never becomes visible as ready to collect
// without its rider. No free rider fails the whole transition.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewRiderDispatcher(),
	}
}

// Handle processes the transition command and returns the order's new status.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusUnknown, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.StatusUnknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.StatusUnknown, err
	}

	newStatus, err := aggregate.Apply(cmd.Action(), cmd.Actor(), now)
	if err != nil {
		return order.StatusUnknown, err
	}

	if aggregate.Type() == order.Delivery && newStatus == order.ReadyToCollect && aggregate.Rider() == nil {
		if err = h.dispatchRider(ctx, uow, aggregate, now); err != nil {
			return order.StatusUnknown, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.StatusUnknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.StatusUnknown, err
	}

	return newStatus, nil
}

func (h *TransitionOrderCommandHandler) dispatchRider(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
	riders, err := uow.RiderRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	deliveries, err := uow.OrderRepository().CountActiveDeliveries(ctx)
	if err != nil {
		return err
	}

	candidates := make([]services.RiderLoad, 0, len(riders))
	for _, r := range riders {
		candidates = append(candidates, services.RiderLoad{
			Rider:            r,
			ActiveDeliveries: deliveries[r.ID()],
		})
	}

	_, err = h.dispatcher.Dispatch(aggregate, candidates, now)
	return err
}
