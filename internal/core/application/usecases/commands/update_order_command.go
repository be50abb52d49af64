package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand carries a partial order update. Every part is optional:
//   - payment: nil or blank leaves the label unchanged
//   - receiver: only non-nil patch fields change
//   - items: nil leaves the items alone, a non-nil list replaces them and
//     cancels every active item it does not mention
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	payment  *string
	receiver order.InformationPatch
	items    []order.ItemQuantity

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand rejects an explicitly empty item list; callers that
// do not touch items pass nil.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	payment *string,
	receiver order.InformationPatch,
	items []order.ItemQuantity,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		receiver: receiver,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	if payment != nil && strings.TrimSpace(*payment) != "" {
		p := strings.TrimSpace(*payment)
		cmd.payment = &p
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c UpdateOrderCommand) Receiver() order.InformationPatch { return c.receiver }

// Payment returns the new payment label and whether one was given.
func (c UpdateOrderCommand) Payment() (string, bool) {
	if c.payment == nil {
		return "", false
	}
	return *c.payment, true
}

// Items returns the requested quantities and whether items are to be replaced.
func (c UpdateOrderCommand) Items() ([]order.ItemQuantity, bool) {
	if c.items == nil {
		return nil, false
	}
	return append([]order.ItemQuantity(nil), c.items...), true
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setItems(items []order.ItemQuantity) error {
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = append(make([]order.ItemQuantity, 0, len(items)), items...)
	return nil
}
