package http

import (
	"errors"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Headers carrying the asserted actor identity. The POS front-end sets them
// after its own sign-in; the rider app additionally sends the rider id.
const (
	actorRoleHeader = "X-Actor-Role"
	actorIDHeader   = "X-Actor-Id"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	editOrderItemHandler   commands.EditOrderItemCommandHandler
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler
	createRiderHandler     commands.CreateRiderCommandHandler

	// Query handlers
	getKitchenBoardHandler queries.GetKitchenBoardQueryHandler
	getBoardCountsHandler  queries.GetBoardCountsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	editOrderItemHandler commands.EditOrderItemCommandHandler,
	removeOrderItemHandler commands.RemoveOrderItemCommandHandler,
	createRiderHandler commands.CreateRiderCommandHandler,
	getKitchenBoardHandler queries.GetKitchenBoardQueryHandler,
	getBoardCountsHandler queries.GetBoardCountsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		editOrderItemHandler:   editOrderItemHandler,
		removeOrderItemHandler: removeOrderItemHandler,
		createRiderHandler:     createRiderHandler,
		getKitchenBoardHandler: getKitchenBoardHandler,
		getBoardCountsHandler:  getBoardCountsHandler,
	}
}

// RegisterRoutes binds all endpoints onto the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.PATCH("/orders/:id/items/:itemId", s.EditOrderItem)
	api.DELETE("/orders/:id/items/:itemId", s.RemoveOrderItem)
	api.POST("/riders", s.CreateRider)
	api.GET("/kitchen/board", s.GetKitchenBoard)
	api.GET("/kitchen/board/counts", s.GetBoardCounts)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order with its
// items and the payments taken at the POS.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.ParseOrderType(req.OrderType)
	if err != nil {
		return domainError(ctx, err)
	}

	items := make([]commands.ItemDraft, 0, len(req.Items))
	for _, it := range req.Items {
		price, priceErr := kernel.NewMoneyFromCents(it.UnitPriceCents)
		if priceErr != nil {
			return domainError(ctx, priceErr)
		}
		items = append(items, commands.ItemDraft{
			MenuItemID:  it.MenuItemID,
			VariantID:   it.VariantID,
			DisplayName: it.DisplayName,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}

	payments, err := paymentDrafts(req, items)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(orderType, order.Draft{
		TableNumber:     req.TableNumber,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}, items, payments)
	if err != nil {
		return domainError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{OrderID: orderID})
}

// paymentDrafts converts the request payments; quick_pay_method is a shortcut
// for one payment covering the whole bill and may not be combined with an
// explicit split.
func paymentDrafts(req CreateOrderRequest, items []commands.ItemDraft) ([]services.PaymentDraft, error) {
	if req.QuickPayMethod != "" {
		if len(req.Payments) > 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("payments",
				errors.New("quick pay excludes an explicit split"))
		}
		method, err := order.ParsePaymentMethod(req.QuickPayMethod)
		if err != nil {
			return nil, err
		}
		total := kernel.Money{}
		for _, it := range items {
			total = total.Add(it.UnitPrice.MulQuantity(it.Quantity))
		}
		return []services.PaymentDraft{{Method: method, Amount: total}}, nil
	}

	drafts := make([]services.PaymentDraft, 0, len(req.Payments))
	for _, p := range req.Payments {
		method, err := order.ParsePaymentMethod(p.Method)
		if err != nil {
			return nil, err
		}
		amount, err := kernel.NewMoneyFromCents(p.AmountCents)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, services.PaymentDraft{Method: method, Amount: amount})
	}
	return drafts, nil
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - applies one
// lifecycle action to the order on behalf of the acting role.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := order.ParseAction(req.Action)
	if err != nil {
		return domainError(ctx, err)
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, action, actor)
	if err != nil {
		return domainError(ctx, err)
	}

	status, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionOrderResponse{
		OrderID: orderID,
		Status:  status.String(),
	})
}

// EditOrderItem handles PATCH /api/v1/orders/:id/items/:itemId - changes the
// quantity of one order line. Admin only.
func (s *Server) EditOrderItem(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	if err = requireAdmin(ctx, "edit_item"); err != nil {
		return domainError(ctx, err)
	}

	var req EditOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEditOrderItemCommand(orderID, itemID, req.Quantity)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.editOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:itemId - removes
// one order line. Admin only.
func (s *Server) RemoveOrderItem(ctx echo.Context) error {
	orderID, err := pathID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	if err = requireAdmin(ctx, "remove_item"); err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewRemoveOrderItemCommand(orderID, itemID)
	if err != nil {
		return domainError(ctx, err)
	}

	if err = s.removeOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateRider handles POST /api/v1/riders - registers a new delivery rider.
func (s *Server) CreateRider(ctx echo.Context) error {
	var req CreateRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateRiderCommand(req.Name, req.Phone)
	if err != nil {
		return domainError(ctx, err)
	}

	riderID, err := s.createRiderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RiderCreatedResponse{RiderID: riderID})
}

// GetKitchenBoard handles GET /api/v1/kitchen/board - the full bucketed board.
func (s *Server) GetKitchenBoard(ctx echo.Context) error {
	query := queries.NewGetKitchenBoardQuery()

	result, err := s.getKitchenBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load kitchen board",
		})
	}

	return ctx.JSON(http.StatusOK, KitchenBoardResponse{
		New:     toBoardTickets(result.Board.New),
		Process: toBoardTickets(result.Board.Process),
		Ready:   toBoardTickets(result.Board.Ready),
		Served:  toBoardTickets(result.Board.Served),
		Counts:  toBoardCounts(result.Counts),
	})
}

// GetBoardCounts handles GET /api/v1/kitchen/board/counts - cheap badge counts.
func (s *Server) GetBoardCounts(ctx echo.Context) error {
	query := queries.NewGetBoardCountsQuery()

	counts, err := s.getBoardCountsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load board counts",
		})
	}

	return ctx.JSON(http.StatusOK, toBoardCounts(counts))
}

// actorFromHeaders resolves the acting role and, for riders, the rider id.
func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	role, err := order.ParseRole(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return order.Actor{}, err
	}

	if role != order.RoleRider {
		return order.Actor{Role: role}, nil
	}

	riderID, err := strconv.ParseInt(ctx.Request().Header.Get(actorIDHeader), 10, 64)
	if err != nil {
		return order.Actor{}, errs.NewValueIsInvalidErrorWithCause("rider id", err)
	}
	return order.RiderActor(riderID), nil
}

func requireAdmin(ctx echo.Context, action string) error {
	role, err := order.ParseRole(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return err
	}
	if role != order.RoleAdmin {
		return errs.NewActionNotPermittedError(action)
	}
	return nil
}

func pathID(ctx echo.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates the error taxonomy into HTTP responses. Business
// rejections carry the order's current status so clients can refresh the
// stale card; authorization failures stay deliberately vague.
func domainError(ctx echo.Context, err error) error {
	var rejected *errs.TransitionRejectedError
	if errors.As(err, &rejected) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:          http.StatusUnprocessableEntity,
			Message:       err.Error(),
			CurrentStatus: rejected.CurrentStatus,
		})
	}

	switch {
	case errors.Is(err, errs.ErrActionNotPermitted):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Action not permitted",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoFreeRiders):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
