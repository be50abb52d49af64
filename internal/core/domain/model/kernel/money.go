package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits prices are stored with.
const MoneyScale = 2

// Money is a non-negative amount in the store currency with at most
// MoneyScale fractional digits. Sums and products of such amounts keep that
// scale, so a total always equals the sum of its rendered parts.
//
// Item prices, subtotals, order totals and payment history prices are Money.
// It is stored in numeric(20,2) columns and rendered as a two-place string.
//
// Example usage:
//
//	price, err := kernel.MoneyFromString("12.50")
//	if err != nil {
//	    return err // negative or finer than a cent
//	}
//	subtotal := price.Times(3)                        // 37.50
//	total := subtotal.Add(kernel.MustMoney("2.50"))   // 40.00
//	fmt.Println(total.String())
type Money struct {
	amount decimal.Decimal
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rejects negative amounts and amounts finer than MoneyScale places.
// Trailing zeros do not count, so "12.500" is accepted while "12.345" is not.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", amount.String()))
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s has more than %d decimal places", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "12.50". It applies the
// same rules as NewMoney and reports a malformed string as a
// ValueIsInvalidError for "price".
//
// Example:
//
//	price, err := kernel.MoneyFromString(req.Price)
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return NewMoney(amount)
}

// MustMoney is for tests and constants.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns the sum. Both operands are non-negative, so the result is too.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a quantity. Quantities are validated by callers.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly MoneyScale places, e.g. "15.00".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
