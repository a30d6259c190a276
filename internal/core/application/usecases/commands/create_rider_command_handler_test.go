package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/rider"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRiderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRiderCommand("Sam", "555-0103")
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Add", ctx, mock.AnythingOfType("*rider.Rider")).
			Run(func(args mock.Arguments) {
				aggregate := args.Get(1).(*rider.Rider)
				require.NoError(t, aggregate.AttachID(7))
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRiderCommandHandler(factory)
	id, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	added := riderRepo.Calls[0].Arguments[1].(*rider.Rider)
	assert.True(t, added.IsActive(), "new riders join the roster active")
	riderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewCreateRiderCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateRiderCommand("", "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
