package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout: the cart to convert, the payment
// method label and the two contact records. UserID is nil for anonymous buyers.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("cart-42", "card", receiver, buyer, &userID)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	cartID   string
	payment  string
	receiver order.Information
	buyer    order.Information
	userID   *string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout request. The cart id and the
// payment label are required; both contact records must carry their type.
func NewCreateOrderCommand(
	cartID string,
	payment string,
	receiver order.Information,
	buyer order.Information,
	userID *string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCartID(cartID),
		cmd.setPayment(payment),
		cmd.setInformation(order.ReceiverInformation, receiver),
		cmd.setInformation(order.BuyerInformation, buyer),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if userID != nil && *userID != "" {
		id := *userID
		cmd.userID = &id
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CartID() string              { return c.cartID }
func (c CreateOrderCommand) Payment() string             { return c.payment }
func (c CreateOrderCommand) Receiver() order.Information { return c.receiver }
func (c CreateOrderCommand) Buyer() order.Information    { return c.buyer }

// UserID returns the owning user, or nil for an anonymous checkout.
func (c CreateOrderCommand) UserID() *string {
	if c.userID == nil {
		return nil
	}
	id := *c.userID
	return &id
}

func (c *CreateOrderCommand) setCartID(cartID string) error {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return errs.NewValueIsRequiredError("cart")
	}

	c.cartID = cartID
	return nil
}

func (c *CreateOrderCommand) setPayment(payment string) error {
	payment = strings.TrimSpace(payment)
	if payment == "" {
		return errs.NewValueIsRequiredError("payment")
	}

	c.payment = payment
	return nil
}

func (c *CreateOrderCommand) setInformation(role order.InformationType, info order.Information) error {
	if info.Type() != role {
		return errs.NewValueIsInvalidErrorWithCause(
			string(role)+"_information",
			errors.New("information type must be "+string(role)),
		)
	}

	switch role {
	case order.ReceiverInformation:
		c.receiver = info
	case order.BuyerInformation:
		c.buyer = info
	}
	return nil
}
