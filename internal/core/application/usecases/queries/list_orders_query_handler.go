package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a page of orders with their items and contact
// records. Payment histories are left out of the list.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	base := h.db.WithContext(ctx).Table("orders")
	if !query.IncludeDeleted() {
		base = base.Where("deleted_at IS NULL")
	}
	if userID := query.UserID(); userID != nil {
		base = base.Where("user_id = ?", *userID)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, errs.NewPersistenceError("count orders", err)
	}

	var rows []orderRow
	err := base.
		Order("created_at DESC, id DESC").
		Limit(query.PerPage()).
		Offset((query.Page() - 1) * query.PerPage()).
		Find(&rows).Error
	if err != nil {
		return ListOrdersQueryResponse{}, errs.NewPersistenceError("list orders", err)
	}

	views, err := loadViews(ctx, h.db, rows, query.IncludeDeleted(), false)
	if err != nil {
		return ListOrdersQueryResponse{}, errs.NewPersistenceError("list orders", err)
	}

	return ListOrdersQueryResponse{
		Data:    views,
		Total:   total,
		Page:    query.Page(),
		PerPage: query.PerPage(),
	}, nil
}
