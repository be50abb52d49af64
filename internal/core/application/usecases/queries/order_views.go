// Package queries contains read-only operations over orders. Queries read the
// tables directly through GORM and return flat views; they never load
// aggregates and never open a unit of work.
package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order.
type OrderView struct {
	ID                  kernel.UUID
	SerialNumber        string
	Payment             string
	Status              string
	ShippingStatus      string
	TotalPrice          kernel.Money
	UserID              *string
	Items               []ItemView
	ReceiverInformation InformationView
	BuyerInformation    InformationView
	PaymentHistories    []PaymentHistoryView
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}

type ItemView struct {
	ID        kernel.UUID
	Name      string
	Price     kernel.Money
	Spec      string
	SKU       string
	Quantity  int
	Status    string
	DeletedAt *time.Time
}

type InformationView struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type PaymentHistoryView struct {
	ID        kernel.UUID
	Price     kernel.Money
	Payment   string
	Comment   string
	CreatedAt time.Time
}

type orderRow struct {
	ID             uuid.UUID
	SerialNumber   string `gorm:"column:sn"`
	Payment        string
	Status         int
	ShippingStatus int
	TotalPrice     decimal.Decimal
	UserID         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

type itemRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Name      string
	Price     decimal.Decimal
	Spec      string
	SKU       string `gorm:"column:sku"`
	Quantity  int
	Status    int
	DeletedAt *time.Time
}

type informationRow struct {
	OrderID uuid.UUID
	Type    string
	Name    string
	Address string
	Phone   string
	Email   string
}

type paymentHistoryRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Price     decimal.Decimal
	Payment   string
	Comment   string
	CreatedAt time.Time
}

// loadViews attaches items, contact records and, when withHistories is set,
// payment histories to the given order rows. Canceled items are soft-deleted
// and therefore only listed when includeDeleted is set.
func loadViews(
	ctx context.Context,
	db *gorm.DB,
	orders []orderRow,
	includeDeleted bool,
	withHistories bool,
) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, row := range orders {
		ids = append(ids, row.ID)
	}

	var items []itemRow
	itemQuery := db.WithContext(ctx).Table("order_items").Where("order_id IN ?", ids)
	if !includeDeleted {
		itemQuery = itemQuery.Where("deleted_at IS NULL")
	}
	if err := itemQuery.Order("order_id, position").Find(&items).Error; err != nil {
		return nil, err
	}

	var information []informationRow
	if err := db.WithContext(ctx).Table("information").Where("order_id IN ?", ids).Find(&information).Error; err != nil {
		return nil, err
	}

	var histories []paymentHistoryRow
	if withHistories {
		err := db.WithContext(ctx).Table("payment_histories").
			Where("order_id IN ?", ids).
			Order("created_at, id").
			Find(&histories).Error
		if err != nil {
			return nil, err
		}
	}

	itemsByOrder := make(map[uuid.UUID][]ItemView, len(orders))
	for _, row := range items {
		view, err := toItemView(row)
		if err != nil {
			return nil, err
		}
		itemsByOrder[row.OrderID] = append(itemsByOrder[row.OrderID], view)
	}

	infoByOrder := make(map[uuid.UUID]map[string]InformationView, len(orders))
	for _, row := range information {
		if infoByOrder[row.OrderID] == nil {
			infoByOrder[row.OrderID] = make(map[string]InformationView, 2)
		}
		infoByOrder[row.OrderID][row.Type] = InformationView{
			Name:    row.Name,
			Address: row.Address,
			Phone:   row.Phone,
			Email:   row.Email,
		}
	}

	historiesByOrder := make(map[uuid.UUID][]PaymentHistoryView, len(orders))
	for _, row := range histories {
		view, err := toPaymentHistoryView(row)
		if err != nil {
			return nil, err
		}
		historiesByOrder[row.OrderID] = append(historiesByOrder[row.OrderID], view)
	}

	for _, row := range orders {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		total, err := kernel.NewMoney(row.TotalPrice)
		if err != nil {
			return nil, err
		}

		view := OrderView{
			ID:                  id,
			SerialNumber:        row.SerialNumber,
			Payment:             row.Payment,
			Status:              order.Status(row.Status).String(),
			ShippingStatus:      order.ShippingStatus(row.ShippingStatus).String(),
			TotalPrice:          total,
			UserID:              row.UserID,
			Items:               itemsByOrder[row.ID],
			ReceiverInformation: infoByOrder[row.ID][string(order.ReceiverInformation)],
			BuyerInformation:    infoByOrder[row.ID][string(order.BuyerInformation)],
			PaymentHistories:    historiesByOrder[row.ID],
			CreatedAt:           row.CreatedAt,
			UpdatedAt:           row.UpdatedAt,
			DeletedAt:           row.DeletedAt,
		}
		if view.Items == nil {
			view.Items = []ItemView{}
		}
		if withHistories && view.PaymentHistories == nil {
			view.PaymentHistories = []PaymentHistoryView{}
		}
		views = append(views, view)
	}

	return views, nil
}

func toItemView(row itemRow) (ItemView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return ItemView{}, err
	}
	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return ItemView{}, err
	}
	return ItemView{
		ID:        id,
		Name:      row.Name,
		Price:     price,
		Spec:      row.Spec,
		SKU:       row.SKU,
		Quantity:  row.Quantity,
		Status:    order.ItemStatus(row.Status).String(),
		DeletedAt: row.DeletedAt,
	}, nil
}

func toPaymentHistoryView(row paymentHistoryRow) (PaymentHistoryView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return PaymentHistoryView{}, err
	}
	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return PaymentHistoryView{}, err
	}
	return PaymentHistoryView{
		ID:        id,
		Price:     price,
		Payment:   row.Payment,
		Comment:   row.Comment,
		CreatedAt: row.CreatedAt,
	}, nil
}
