package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with everything it owns. Soft-deleted orders
// and canceled items are visible only with includeDeleted.
type GetOrderQuery struct {
	orderID        kernel.UUID
	includeDeleted bool

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, includeDeleted bool) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID:        orderID,
		includeDeleted: includeDeleted,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) IncludeDeleted() bool { return q.includeDeleted }
