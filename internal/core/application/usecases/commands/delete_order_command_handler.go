package commands

import (
	"context"
	"time"
)

// DeleteOrderCommandHandler soft-deletes orders. Deleting an order that is
// already deleted reports it as not found, since the default lookup skips
// deleted orders.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return persistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return persistenceError("load order", err)
	}

	if err = o.Delete(h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return persistenceError("delete order", err)
	}

	return persistenceError("commit order", uow.Commit(ctx))
}
