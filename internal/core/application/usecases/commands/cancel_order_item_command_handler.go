package commands

import (
	"context"
	"time"
)

// CancelOrderItemCommandHandler cancels one item and recomputes the order
// total. Canceling an item twice succeeds and writes nothing new.
type CancelOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewCancelOrderItemCommandHandler(uowFactory OrderUoWFactory) CancelOrderItemCommandHandler {
	return CancelOrderItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *CancelOrderItemCommandHandler) Handle(ctx context.Context, cmd CancelOrderItemCommand) error {
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

	if err = o.CancelItem(cmd.ItemID(), h.now()); err != nil {
		return err
	}

	if len(o.DomainEvents()) == 0 {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return persistenceError("cancel order item", err)
	}

	return persistenceError("commit order", uow.Commit(ctx))
}
