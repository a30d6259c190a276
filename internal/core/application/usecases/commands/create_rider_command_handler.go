package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/rider"
)

// CreateRiderCommandHandler handles rider registration.
type CreateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewCreateRiderCommandHandler creates a handler for rider registration.
func NewCreateRiderCommandHandler(uowFactory RiderUoWFactory) CreateRiderCommandHandler {
	return CreateRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rider registration command and returns the new
// rider's id.
func (h *CreateRiderCommandHandler) Handle(ctx context.Context, cmd CreateRiderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	aggregate, err := rider.NewRider(cmd.Name(), cmd.Phone())
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

	if err = uow.RiderRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}
