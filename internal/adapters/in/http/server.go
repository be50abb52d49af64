package http

import (
	"context"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

type CancelOrderItemHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderItemCommand) error
}

type AddPaymentHistoryHandler interface {
	Handle(ctx context.Context, cmd commands.AddPaymentHistoryCommand) (*order.PaymentHistory, error)
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
}

type ChangeShippingStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeShippingStatusCommand) (*order.Order, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

// Handlers groups the use cases the HTTP surface dispatches to.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	UpdateOrder          UpdateOrderHandler
	DeleteOrder          DeleteOrderHandler
	CancelOrderItem      CancelOrderItemHandler
	AddPaymentHistory    AddPaymentHistoryHandler
	ChangeOrderStatus    ChangeOrderStatusHandler
	ChangeShippingStatus ChangeShippingStatusHandler
	ListOrders           ListOrdersHandler
	GetOrder             GetOrderHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

// ListOrders handles GET /api/v1/orders. Authenticated callers only see their
// own orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(
		valueOrZero(params.Page),
		valueOrZero(params.PerPage),
		valueOrZero(params.WithTrashed),
		UserID(ctx),
	)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	data := make([]OrderResponse, 0, len(page.Data))
	for _, view := range page.Data {
		data = append(data, newOrderViewResponse(view))
	}

	return ctx.JSON(http.StatusOK, OrderPageResponse{
		Data:    data,
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	})
}

// CreateOrder handles POST /api/v1/orders - checks out a cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := s.bind(ctx, &req); err != nil {
		return err
	}

	receiver, err := req.ReceiverInformation.toInformation(order.ReceiverInformation)
	if err != nil {
		return err
	}
	buyer, err := req.BuyerInformation.toInformation(order.BuyerInformation)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(req.Cart, req.Payment, receiver, buyer, UserID(ctx))
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("create_order", err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID, params GetOrderParams) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, valueOrZero(params.WithTrashed))
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderViewResponse(view))
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
func (s *Server) UpdateOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	lines, err := req.itemQuantities()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, req.Payment, req.receiverPatch(), lines)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("update_order", err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}

	err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("delete_order", err)
	if err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderItem handles DELETE /api/v1/orders/{id}/{item_id}.
func (s *Server) CancelOrderItem(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}
	orderItemID, err := toKernelUUID("item_id", itemID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderItemCommand(orderID, orderItemID)
	if err != nil {
		return err
	}

	err = s.handlers.CancelOrderItem.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("cancel_order_item", err)
	if err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddPaymentHistory handles POST /api/v1/orders/{id}/payment-histories.
func (s *Server) AddPaymentHistory(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	var req PaymentHistoryRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	price, err := kernel.NewMoney(req.Price)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddPaymentHistoryCommand(orderID, price, req.Payment, req.Comment)
	if err != nil {
		return err
	}

	entry, err := s.handlers.AddPaymentHistory.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("add_payment_history", err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newPaymentHistoryResponse(entry))
}

// ChangeOrderStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	var req ChangeStatusRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}

	changed, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("change_order_status", err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(changed))
}

// ChangeShippingStatus handles PUT /api/v1/orders/{id}/shipping-status.
func (s *Server) ChangeShippingStatus(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return err
	}

	var req ChangeShippingStatusRequest
	if err = s.bind(ctx, &req); err != nil {
		return err
	}

	shippingStatus, err := order.ParseShippingStatus(req.ShippingStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeShippingStatusCommand(orderID, shippingStatus)
	if err != nil {
		return err
	}

	changed, err := s.handlers.ChangeShippingStatus.Handle(ctx.Request().Context(), cmd)
	s.metrics.Observe("change_shipping_status", err)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(changed))
}

// bind decodes the JSON body and runs the struct validation. Undecodable
// bodies surface as echo's 400.
func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}

func toKernelUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name)
	}
	return converted, nil
}

func valueOrZero[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
