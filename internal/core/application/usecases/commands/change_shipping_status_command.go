package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrChangeShippingStatusCommandIsNotConstructed = errors.New(
	"ChangeShippingStatusCommand must be created via NewChangeShippingStatusCommand constructor",
)

// ChangeShippingStatusCommand sets the informational shipping status.
type ChangeShippingStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	shippingStatus order.ShippingStatus

	guard guard.ConstructorGuard
}

func NewChangeShippingStatusCommand(
	orderID kernel.UUID,
	shippingStatus order.ShippingStatus,
) (ChangeShippingStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), shippingStatus.Validate()); err != nil {
		return ChangeShippingStatusCommand{}, err
	}

	return ChangeShippingStatusCommand{
		orderID:        orderID,
		shippingStatus: shippingStatus,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeShippingStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeShippingStatusCommandIsNotConstructed)
}

func (c ChangeShippingStatusCommand) OrderID() kernel.UUID                 { return c.orderID }
func (c ChangeShippingStatusCommand) ShippingStatus() order.ShippingStatus { return c.shippingStatus }
