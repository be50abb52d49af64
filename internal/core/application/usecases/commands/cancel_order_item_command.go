package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderItemCommandIsNotConstructed = errors.New(
	"CancelOrderItemCommand must be created via NewCancelOrderItemCommand constructor",
)

// CancelOrderItemCommand cancels a single item of an order.
type CancelOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderItemCommand(orderID, itemID kernel.UUID) (CancelOrderItemCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return CancelOrderItemCommand{}, err
	}

	return CancelOrderItemCommand{
		orderID: orderID,
		itemID:  itemID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderItemCommandIsNotConstructed)
}

func (c CancelOrderItemCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderItemCommand) ItemID() kernel.UUID  { return c.itemID }
