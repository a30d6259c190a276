package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// item snapshots, payment reconciliation against the computed total, and the
// atomic persist of the order with its items and payments.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	reconciler services.PaymentReconciler
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewPaymentReconciler(),
	}
}

// Handle processes the order creation command and returns the new order's id.
// The running payment sum is validated against the total computed from the
// item snapshots before anything is persisted; the order starts in the
// ordered status.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, draft := range cmd.Items() {
		item, err := order.NewItem(draft.MenuItemID, draft.VariantID, draft.DisplayName, draft.Quantity, draft.UnitPrice)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
	}

	var total kernel.Money
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	payments, err := h.reconciler.Reconcile(total, cmd.Payments())
	if err != nil {
		return 0, err
	}

	aggregate, err := order.NewOrder(cmd.OrderType(), cmd.Draft(), items, payments, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}
