package queries

import (
	"errors"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(2, 20, false, &userID)
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("%d of %d orders\n", len(page.Data), page.Total)
type ListOrdersQuery struct {
	page           int
	perPage        int
	includeDeleted bool
	userID         *string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery applies the defaults for zero page and perPage. A
// negative page or a perPage outside 1..MaxPerPage is rejected. A non-nil
// userID restricts the list to that user's orders.
func NewListOrdersQuery(page, perPage int, includeDeleted bool, userID *string) (ListOrdersQuery, error) {
	if page == 0 {
		page = DefaultPage
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}

	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("per_page", perPage, 1, MaxPerPage)
	}

	q := ListOrdersQuery{
		page:           page,
		perPage:        perPage,
		includeDeleted: includeDeleted,
		guard:          guard.NewConstructorGuard(),
	}
	if userID != nil {
		id := *userID
		q.userID = &id
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int            { return q.page }
func (q ListOrdersQuery) PerPage() int         { return q.perPage }
func (q ListOrdersQuery) IncludeDeleted() bool { return q.includeDeleted }
func (q ListOrdersQuery) UserID() *string      { return q.userID }

// ListOrdersQueryResponse is one page of orders.
type ListOrdersQueryResponse struct {
	Data    []OrderView
	Total   int64
	Page    int
	PerPage int
}
