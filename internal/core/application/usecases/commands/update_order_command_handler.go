package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies a partial update to an order under a row
// lock. The item replacement is validated as a whole before anything changes,
// so a bad item id leaves the order untouched.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	at := h.now()
	if payment, ok := cmd.Payment(); ok {
		if err = o.ChangePayment(payment, at); err != nil {
			return nil, err
		}
	}
	if err = o.UpdateReceiverInformation(cmd.Receiver(), at); err != nil {
		return nil, err
	}
	if items, ok := cmd.Items(); ok {
		if err = o.ReplaceItems(items, at); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceError("update order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceError("commit order", err)
	}

	return o, nil
}
