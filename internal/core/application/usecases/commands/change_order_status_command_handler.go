package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler completes or cancels an order. Transitions
// out of COMPLETED or CANCELED fail with a StatusTransitionIsInvalidError and
// nothing is written.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
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

	if err = o.ChangeStatus(cmd.Status(), h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceError("change order status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceError("commit order", err)
	}

	return o, nil
}
