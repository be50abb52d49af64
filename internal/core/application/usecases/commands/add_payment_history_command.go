package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddPaymentHistoryCommandIsNotConstructed = errors.New(
	"AddPaymentHistoryCommand must be created via NewAddPaymentHistoryCommand constructor",
)

// AddPaymentHistoryCommand appends a ledger entry to an order. The price is a
// kernel.Money, so it is non-negative by construction.
type AddPaymentHistoryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	price   kernel.Money
	payment string
	comment string

	guard guard.ConstructorGuard
}

func NewAddPaymentHistoryCommand(
	orderID kernel.UUID,
	price kernel.Money,
	payment string,
	comment string,
) (AddPaymentHistoryCommand, error) {
	cmd := AddPaymentHistoryCommand{
		price:   price,
		comment: strings.TrimSpace(comment),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPayment(payment),
	); err != nil {
		return AddPaymentHistoryCommand{}, err
	}

	return cmd, nil
}

func (c AddPaymentHistoryCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentHistoryCommandIsNotConstructed)
}

func (c AddPaymentHistoryCommand) OrderID() kernel.UUID { return c.orderID }
func (c AddPaymentHistoryCommand) Price() kernel.Money  { return c.price }
func (c AddPaymentHistoryCommand) Payment() string      { return c.payment }
func (c AddPaymentHistoryCommand) Comment() string      { return c.comment }

func (c *AddPaymentHistoryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPaymentHistoryCommand) setPayment(payment string) error {
	payment = strings.TrimSpace(payment)
	if payment == "" {
		return errs.NewValueIsRequiredError("payment")
	}

	c.payment = payment
	return nil
}
