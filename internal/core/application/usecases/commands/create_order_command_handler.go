package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler converts a cart snapshot into a PENDING order.
//
// The serial number strategy is a constructor dependency, so every handler
// instance uses exactly one resolver.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, cartStore, services.NewTimestampSerialNumberResolver(), logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	carts      ports.CartProvider
	serials    ports.SerialNumberResolver
	placer     services.OrderPlacer
	logger     *zap.Logger
	now        func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	carts ports.CartProvider,
	serials ports.SerialNumberResolver,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		serials:    serials,
		placer:     services.NewOrderPlacer(),
		logger:     logger.Named("create_order"),
		now:        time.Now,
	}
}

// Handle places the order and persists it with its items and contact records
// in one transaction. The cart is cleared only after a successful commit; a
// failure to clear it is logged and does not fail the checkout.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.carts.GetCart(ctx, cmd.CartID())
	if err != nil {
		return nil, persistenceError("load cart", err)
	}

	sn, err := h.serials.Resolve(ctx)
	if err != nil {
		return nil, persistenceError("resolve serial number", err)
	}

	placed, err := h.placer.Place(services.PlaceRequest{
		OrderID:      kernel.NewUUID(),
		SerialNumber: sn,
		Payment:      cmd.Payment(),
		Cart:         snapshot,
		Receiver:     cmd.Receiver(),
		Buyer:        cmd.Buyer(),
		UserID:       cmd.UserID(),
		PlacedAt:     h.now(),
	})
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, persistenceError("add order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceError("commit order", err)
	}

	if err = h.carts.Clear(ctx, cmd.CartID()); err != nil {
		h.logger.Warn("cart was not cleared after checkout",
			zap.String("cart_id", cmd.CartID()),
			zap.String("order_id", placed.ID().String()),
			zap.Error(err),
		)
	}

	h.logger.Info("order placed",
		zap.String("order_id", placed.ID().String()),
		zap.String("sn", placed.SerialNumber()),
		zap.String("total_price", placed.TotalPrice().String()),
	)
	return placed, nil
}
