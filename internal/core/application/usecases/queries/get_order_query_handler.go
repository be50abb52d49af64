package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError for unknown orders and for deleted
// orders unless the query includes them.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	q := h.db.WithContext(ctx).Table("orders").Where("id = ?", query.OrderID().Bytes())
	if !query.IncludeDeleted() {
		q = q.Where("deleted_at IS NULL")
	}

	var rows []orderRow
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return OrderView{}, errs.NewPersistenceError("get order", err)
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	views, err := loadViews(ctx, h.db, rows, query.IncludeDeleted(), true)
	if err != nil {
		return OrderView{}, errs.NewPersistenceError("get order", err)
	}
	return views[0], nil
}
