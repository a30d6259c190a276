package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rider"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var storedAt = time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)

func storedOrder(t *testing.T, id int64, orderType order.OrderType, status order.Status, riderID *int64) *order.Order {
	t.Helper()

	item, err := order.RestoreItem(1, 10, nil, "Green Curry", 1, kernel.MustMoneyFromCents(1200))
	require.NoError(t, err)

	draft := order.Draft{CustomerName: "Ada"}
	paymentStatus := order.PaymentCompleted
	if orderType == order.Delivery {
		draft.DeliveryAddress = "1 Infinite Loop"
		if !status.IsDone() {
			paymentStatus = order.PaymentPending
		}
	}

	var completedAt *time.Time
	if status.IsDone() {
		completed := storedAt
		completedAt = &completed
	}

	o, err := order.RestoreOrder(id, orderType, status, draft, riderID, paymentStatus,
		[]*order.Item{item}, nil, storedAt, storedAt, completedAt)
	require.NoError(t, err)
	return o
}

func transitionCommand(t *testing.T, orderID int64, action order.Action, actor order.Actor) commands.TransitionOrderCommand {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(orderID, action, actor)
	require.NoError(t, err)
	return cmd
}

func TestTransitionOrderCommandHandler_Handle_Start(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionStart, order.KitchenActor())
	testOrder := storedOrder(t, 42, order.DineIn, order.Ordered, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	status, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.UnderPreparation, status)
	assert.Equal(t, order.UnderPreparation, testOrder.Status())
	assert.Equal(t, order.Ordered, testOrder.PersistedStatus(), "the concurrency baseline stays at the read status")

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_DeliveryFinishDispatchesRider(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionFinish, order.KitchenActor())
	testOrder := storedOrder(t, 42, order.Delivery, order.UnderPreparation, nil)

	busyRider, err := rider.RestoreRider(1, "Sam", "555-0100", true)
	require.NoError(t, err)
	freeRider, err := rider.RestoreRider(2, "Kim", "555-0101", true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("GetAllActive", ctx).Return([]*rider.Rider{busyRider, freeRider}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountActiveDeliveries", ctx).Return(map[int64]int{1: 2}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	status, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyToCollect, status)
	require.NotNil(t, testOrder.Rider())
	assert.Equal(t, int64(2), *testOrder.Rider(), "the least-loaded rider gets the order")

	orderRepo.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_NoFreeRidersRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionFinish, order.KitchenActor())
	testOrder := storedOrder(t, 42, order.Delivery, order.UnderPreparation, nil)

	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("GetAllActive", ctx).Return([]*rider.Rider{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountActiveDeliveries", ctx).Return(map[int64]int{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoFreeRiders)
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_BusinessRejection(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionServed, order.KitchenActor())
	testOrder := storedOrder(t, 42, order.DineIn, order.Ordered, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionRejected)

	var rejection *errs.TransitionRejectedError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "ordered", rejection.CurrentStatus)
	assert.Equal(t, order.Ordered, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 99, order.ActionStart, order.KitchenActor())

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(99)).Return(nil, errs.NewObjectNotFoundError("order", int64(99))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_Handle_ConflictPassthrough(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionStart, order.KitchenActor())
	testOrder := storedOrder(t, 42, order.DineIn, order.Ordered, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errs.NewConcurrentModificationError("order", 42)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionOrderCommandHandler_Handle_RiderDelivers(t *testing.T) {
	ctx := t.Context()
	riderID := int64(7)
	cmd := transitionCommand(t, 42, order.ActionMarkDelivered, order.RiderActor(riderID))
	testOrder := storedOrder(t, 42, order.Delivery, order.OnTheWay, &riderID)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, int64(42)).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory)
	status, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, status)
	assert.NotNil(t, testOrder.CompletedAt())
	assert.Equal(t, order.PaymentCompleted, testOrder.PaymentStatus())
}

func TestTransitionOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := transitionCommand(t, 42, order.ActionStart, order.KitchenActor())

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestNewTransitionOrderCommand_Validation(t *testing.T) {
	t.Run("rejects_non_positive_order_id", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(0, order.ActionStart, order.KitchenActor())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unknown_action", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(1, order.Action(0), order.KitchenActor())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rider_actor_needs_an_id", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(1, order.ActionMarkPickedUp,
			order.Actor{Role: order.RoleRider})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unconstructed_command_fails_validation", func(t *testing.T) {
		var cmd commands.TransitionOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
