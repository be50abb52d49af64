// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// The order aggregate is spread over four tables: orders, order_items,
// information and payment_histories.
package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDTO is a row of the orders table. Soft deletion uses gorm.DeletedAt,
// so default scopes skip deleted orders.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SerialNumber   string          `gorm:"column:sn;size:64;not null;uniqueIndex"`
	Payment        string          `gorm:"size:64;not null"`
	Status         int             `gorm:"not null;index"`
	ShippingStatus int             `gorm:"not null;default:0"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	UserID         *string         `gorm:"size:64;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of order_items. Position keeps placement order.
type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Spec      string          `gorm:"size:128;not null;default:'default'"`
	SKU       string          `gorm:"column:sku;size:64;not null"`
	Quantity  int             `gorm:"not null"`
	Status    int             `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// InformationDTO is a row of information, keyed by (order_id, type).
type InformationDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type      string    `gorm:"size:16;primaryKey"`
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InformationDTO) TableName() string {
	return "information"
}

// PaymentHistoryDTO is a row of payment_histories. Rows are only ever inserted.
type PaymentHistoryDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Payment   string          `gorm:"size:64;not null"`
	Comment   string
	CreatedAt time.Time
}

func (PaymentHistoryDTO) TableName() string {
	return "payment_histories"
}

// Models lists every table of the aggregate, for AutoMigrate.
func Models() []any {
	return []any{&OrderDTO{}, &OrderItemDTO{}, &InformationDTO{}, &PaymentHistoryDTO{}}
}

// aggregateRows holds all rows of one order.
type aggregateRows struct {
	order            OrderDTO
	items            []OrderItemDTO
	information      []InformationDTO
	paymentHistories []PaymentHistoryDTO
}

func fromDomain(o *order.Order) aggregateRows {
	orderID := o.ID().Bytes()

	rows := aggregateRows{
		order: OrderDTO{
			ID:             orderID,
			SerialNumber:   o.SerialNumber(),
			Payment:        o.Payment(),
			Status:         int(o.Status()),
			ShippingStatus: int(o.ShippingStatus()),
			TotalPrice:     o.TotalPrice().Decimal(),
			UserID:         o.UserID(),
			CreatedAt:      o.CreatedAt(),
			UpdatedAt:      o.UpdatedAt(),
			DeletedAt:      toDeletedAt(o.DeletedAt()),
		},
	}

	for position, item := range o.Items() {
		rows.items = append(rows.items, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			Position:  position,
			Name:      item.Name(),
			Price:     item.Price().Decimal(),
			Spec:      item.Spec(),
			SKU:       item.SKU(),
			Quantity:  item.Quantity(),
			Status:    int(item.Status()),
			CreatedAt: o.CreatedAt(),
			UpdatedAt: o.UpdatedAt(),
			DeletedAt: toDeletedAt(item.DeletedAt()),
		})
	}

	for _, info := range []order.Information{o.Receiver(), o.Buyer()} {
		rows.information = append(rows.information, InformationDTO{
			OrderID:   orderID,
			Type:      string(info.Type()),
			Name:      info.Name(),
			Address:   info.Address(),
			Phone:     info.Phone(),
			Email:     info.Email(),
			CreatedAt: o.CreatedAt(),
			UpdatedAt: o.UpdatedAt(),
		})
	}

	for _, entry := range o.PaymentHistories() {
		rows.paymentHistories = append(rows.paymentHistories, PaymentHistoryDTO{
			ID:        entry.ID().Bytes(),
			OrderID:   orderID,
			Price:     entry.Price().Decimal(),
			Payment:   entry.Payment(),
			Comment:   entry.Comment(),
			CreatedAt: entry.CreatedAt(),
		})
	}

	return rows
}

func toDomain(rows aggregateRows) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(rows.order.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(rows.items))
	for _, dto := range rows.items {
		item, itemErr := itemToDomain(dto)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s item %s: %w", id, dto.ID, itemErr)
		}
		items = append(items, item)
	}

	var receiver, buyer *order.Information
	for _, dto := range rows.information {
		info, infoErr := order.NewInformation(order.InformationType(dto.Type), dto.Name, dto.Address, dto.Phone, dto.Email)
		if infoErr != nil {
			return nil, infoErr
		}
		switch info.Type() {
		case order.ReceiverInformation:
			receiver = &info
		case order.BuyerInformation:
			buyer = &info
		}
	}
	if receiver == nil || buyer == nil {
		return nil, fmt.Errorf("order %s: %w", id, errIncompleteInformation)
	}

	histories := make([]*order.PaymentHistory, 0, len(rows.paymentHistories))
	for _, dto := range rows.paymentHistories {
		entry, entryErr := paymentHistoryToDomain(id, dto)
		if entryErr != nil {
			return nil, entryErr
		}
		histories = append(histories, entry)
	}

	return order.RestoreOrder(order.State{
		ID:               id,
		SerialNumber:     rows.order.SerialNumber,
		Payment:          rows.order.Payment,
		Status:           order.Status(rows.order.Status),
		ShippingStatus:   order.ShippingStatus(rows.order.ShippingStatus),
		UserID:           rows.order.UserID,
		Items:            items,
		Receiver:         *receiver,
		Buyer:            *buyer,
		PaymentHistories: histories,
		CreatedAt:        rows.order.CreatedAt,
		UpdatedAt:        rows.order.UpdatedAt,
		DeletedAt:        fromDeletedAt(rows.order.DeletedAt),
	})
}

var errIncompleteInformation = errors.New("receiver or buyer information is missing")

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(
		id, dto.Name, price, dto.Spec, dto.SKU, dto.Quantity,
		order.ItemStatus(dto.Status), fromDeletedAt(dto.DeletedAt),
	)
}

func paymentHistoryToDomain(orderID kernel.UUID, dto PaymentHistoryDTO) (*order.PaymentHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return order.NewPaymentHistory(id, orderID, price, dto.Payment, dto.Comment, dto.CreatedAt)
}

func toDeletedAt(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}

func fromDeletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time.UTC()
	return &t
}
