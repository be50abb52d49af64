// Package cart models the read-only cart snapshot an order is placed from.
// The cart itself lives outside this service; only its contents at checkout
// time matter here.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Line is one product in the cart, priced at checkout time.
type Line struct {
	Name      string
	Spec      string
	SKU       string
	UnitPrice kernel.Money
	Quantity  int
	Available bool
}

// Snapshot is an immutable copy of a cart's lines.
type Snapshot struct {
	id    string
	lines []Line
}

func NewSnapshot(id string, lines []Line) (Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("cart")
	}
	return Snapshot{id: id, lines: append([]Line(nil), lines...)}, nil
}

func (s Snapshot) ID() string {
	return s.id
}

func (s Snapshot) Lines() []Line {
	return append([]Line(nil), s.lines...)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.lines) == 0
}

// Total is the sum of line subtotals.
func (s Snapshot) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range s.lines {
		total = total.Add(line.UnitPrice.Times(line.Quantity))
	}
	return total
}

// ValidateForCheckout rejects an empty cart, a quantity below 1 and
// unavailable products. All offending lines are reported.
func (s Snapshot) ValidateForCheckout() error {
	if s.IsEmpty() {
		return errs.NewValueIsRequiredErrorWithCause("cart", fmt.Errorf("cart %s is empty", s.id))
	}

	var problems []error
	for i, line := range s.lines {
		if line.Quantity < 1 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("cart line %d quantity", i),
				fmt.Errorf("%d is less than 1", line.Quantity),
			))
		}
		if !line.Available {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("cart line %d", i),
				fmt.Errorf("product %s is unavailable", line.SKU),
			))
		}
	}
	return errors.Join(problems...)
}
