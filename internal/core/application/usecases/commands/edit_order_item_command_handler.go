package commands

import (
	"context"
	"time"
)

// EditOrderItemCommandHandler handles admin quantity edits. The aggregate
// recomputes the order total from the live item set; the write carries the
// optimistic-concurrency guard like any transition.
type EditOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEditOrderItemCommandHandler creates a handler for item quantity edits.
func NewEditOrderItemCommandHandler(uowFactory OrderUoWFactory) EditOrderItemCommandHandler {
	return EditOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command.
func (h *EditOrderItemCommandHandler) Handle(ctx context.Context, cmd EditOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeItemQuantity(cmd.ItemID(), cmd.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
