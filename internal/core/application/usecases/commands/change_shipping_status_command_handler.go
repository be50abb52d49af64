package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// ChangeShippingStatusCommandHandler updates the shipping status. It never
// touches the order status.
type ChangeShippingStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewChangeShippingStatusCommandHandler(uowFactory OrderUoWFactory) ChangeShippingStatusCommandHandler {
	return ChangeShippingStatusCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *ChangeShippingStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeShippingStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, persistenceError("load order", err)
	}

	if err = o.ChangeShippingStatus(cmd.ShippingStatus(), h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceError("change shipping status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceError("commit order", err)
	}

	return o, nil
}
