package order

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrPaymentHistoryIsNotConstructed = errors.New("PaymentHistory must be created via NewPaymentHistory constructor")

// PaymentHistory is an append-only ledger entry. It has no mutators.
type PaymentHistory struct {
	id        kernel.UUID
	orderID   kernel.UUID
	price     kernel.Money
	payment   string
	comment   string
	createdAt time.Time

	isConstructed bool
}

func NewPaymentHistory(
	id, orderID kernel.UUID,
	price kernel.Money,
	payment, comment string,
	createdAt time.Time,
) (*PaymentHistory, error) {
	entry := &PaymentHistory{
		price:         price,
		comment:       strings.TrimSpace(comment),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	var errID, errOrderID, errPayment error
	if errID = id.Validate(); errID == nil {
		entry.id = id
	}
	if errOrderID = orderID.Validate(); errOrderID == nil {
		entry.orderID = orderID
	}
	if entry.payment = strings.TrimSpace(payment); entry.payment == "" {
		errPayment = errs.NewValueIsRequiredError("payment")
	}

	if err := errors.Join(errID, errOrderID, errPayment); err != nil {
		return nil, err
	}
	return entry, nil
}

func (p *PaymentHistory) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentHistoryIsNotConstructed
	}
	return nil
}

func (p *PaymentHistory) ID() kernel.UUID      { return p.id }
func (p *PaymentHistory) OrderID() kernel.UUID { return p.orderID }
func (p *PaymentHistory) Price() kernel.Money  { return p.price }
func (p *PaymentHistory) Payment() string      { return p.payment }
func (p *PaymentHistory) Comment() string      { return p.comment }
func (p *PaymentHistory) CreatedAt() time.Time { return p.createdAt }
