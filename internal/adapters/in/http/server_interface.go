package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ListOrdersParams struct {
	Page        *int
	PerPage     *int
	WithTrashed *bool
}

type GetOrderParams struct {
	WithTrashed *bool
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID, params GetOrderParams) error
	// (PUT /api/v1/orders/{id})
	UpdateOrder(ctx echo.Context, id openapi_types.UUID) error
	// (DELETE /api/v1/orders/{id})
	DeleteOrder(ctx echo.Context, id openapi_types.UUID) error
	// (DELETE /api/v1/orders/{id}/{item_id})
	CancelOrderItem(ctx echo.Context, id openapi_types.UUID, itemID openapi_types.UUID) error
	// (POST /api/v1/orders/{id}/payment-histories)
	AddPaymentHistory(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/v1/orders/{id}/status)
	ChangeOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// (PUT /api/v1/orders/{id}/shipping-status)
	ChangeShippingStatus(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page); err != nil {
		return badParameter("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "per_page", ctx.QueryParams(), &params.PerPage); err != nil {
		return badParameter("per_page", err)
	}
	if err := runtime.BindQueryParameter(
		"form", true, false, "with_trashed", ctx.QueryParams(), &params.WithTrashed,
	); err != nil {
		return badParameter("with_trashed", err)
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}

	var params GetOrderParams
	if err = runtime.BindQueryParameter(
		"form", true, false, "with_trashed", ctx.QueryParams(), &params.WithTrashed,
	); err != nil {
		return badParameter("with_trashed", err)
	}

	return w.Handler.GetOrder(ctx, id, params)
}

func (w *ServerInterfaceWrapper) UpdateOrder(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) CancelOrderItem(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	itemID, err := bindUUIDPathParameter(ctx, "item_id")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrderItem(ctx, id, itemID)
}

func (w *ServerInterfaceWrapper) AddPaymentHistory(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.AddPaymentHistory(ctx, id)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) ChangeShippingStatus(ctx echo.Context) error {
	id, err := bindUUIDPathParameter(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ChangeShippingStatus(ctx, id)
}

func bindUUIDPathParameter(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, badParameter(name, err)
	}
	return id, nil
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:id", wrapper.UpdateOrder)
	router.DELETE(baseURL+"/api/v1/orders/:id", wrapper.DeleteOrder)
	router.DELETE(baseURL+"/api/v1/orders/:id/:item_id", wrapper.CancelOrderItem)
	router.POST(baseURL+"/api/v1/orders/:id/payment-histories", wrapper.AddPaymentHistory)
	router.PUT(baseURL+"/api/v1/orders/:id/status", wrapper.ChangeOrderStatus)
	router.PUT(baseURL+"/api/v1/orders/:id/shipping-status", wrapper.ChangeShippingStatus)
}
