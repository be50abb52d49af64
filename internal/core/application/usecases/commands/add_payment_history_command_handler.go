package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// AddPaymentHistoryCommandHandler records a payment against an order. It never
// changes the order status or its total.
type AddPaymentHistoryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewAddPaymentHistoryCommandHandler(uowFactory OrderUoWFactory) AddPaymentHistoryCommandHandler {
	return AddPaymentHistoryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *AddPaymentHistoryCommandHandler) Handle(
	ctx context.Context,
	cmd AddPaymentHistoryCommand,
) (*order.PaymentHistory, error) {
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

	entry, err := o.AddPaymentHistory(kernel.NewUUID(), cmd.Price(), cmd.Payment(), cmd.Comment(), h.now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, persistenceError("add payment history", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, persistenceError("commit order", err)
	}

	return entry, nil
}
