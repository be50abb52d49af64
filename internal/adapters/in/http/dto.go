package http

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type InformationRequest struct {
	Name    string `json:"name"    validate:"max=255"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone"   validate:"max=64"`
	Email   string `json:"email"   validate:"omitempty,email,max=255"`
}

func (r InformationRequest) toInformation(infoType order.InformationType) (order.Information, error) {
	return order.NewInformation(infoType, r.Name, r.Address, r.Phone, r.Email)
}

type CreateOrderRequest struct {
	Payment             string             `json:"payment"              validate:"required,max=64"`
	Cart                string             `json:"cart"                 validate:"required,max=128"`
	ReceiverInformation InformationRequest `json:"receiver_information"`
	BuyerInformation    InformationRequest `json:"buyer_information"`
}

type InformationPatchRequest struct {
	Name    *string `json:"name"    validate:"omitempty,max=255"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=64"`
	Email   *string `json:"email"   validate:"omitempty,email,max=255"`
}

type ItemQuantityRequest struct {
	ID       string `json:"id"       validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// UpdateOrderRequest distinguishes an absent items list (nil) from an empty one.
type UpdateOrderRequest struct {
	Payment             *string                  `json:"payment"              validate:"omitempty,max=64"`
	ReceiverInformation *InformationPatchRequest `json:"receiver_information"`
	Items               *[]ItemQuantityRequest   `json:"items"                validate:"omitempty,dive"`
}

func (r UpdateOrderRequest) receiverPatch() order.InformationPatch {
	if r.ReceiverInformation == nil {
		return order.InformationPatch{}
	}
	return order.InformationPatch{
		Name:    r.ReceiverInformation.Name,
		Address: r.ReceiverInformation.Address,
		Phone:   r.ReceiverInformation.Phone,
		Email:   r.ReceiverInformation.Email,
	}
}

func (r UpdateOrderRequest) itemQuantities() ([]order.ItemQuantity, error) {
	if r.Items == nil {
		return nil, nil
	}

	lines := make([]order.ItemQuantity, 0, len(*r.Items))
	for _, item := range *r.Items {
		id, err := kernel.UUIDFromString(item.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.ItemQuantity{ItemID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

type PaymentHistoryRequest struct {
	Price   decimal.Decimal `json:"price"`
	Payment string          `json:"payment" validate:"required,max=64"`
	Comment string          `json:"comment" validate:"max=1000"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ChangeShippingStatusRequest struct {
	ShippingStatus string `json:"shipping_status" validate:"required"`
}

type InformationResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type ItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Spec     string `json:"spec"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

type PaymentHistoryResponse struct {
	ID        string    `json:"id"`
	Price     string    `json:"price"`
	Payment   string    `json:"payment"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID                  string                   `json:"id"`
	SerialNumber        string                   `json:"sn"`
	Payment             string                   `json:"payment"`
	Status              string                   `json:"status"`
	ShippingStatus      string                   `json:"shipping_status"`
	TotalPrice          string                   `json:"total_price"`
	UserID              *string                  `json:"user_id"`
	Items               []ItemResponse           `json:"items"`
	ReceiverInformation InformationResponse      `json:"receiver_information"`
	BuyerInformation    InformationResponse      `json:"buyer_information"`
	PaymentHistories    []PaymentHistoryResponse `json:"payment_histories"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
	DeletedAt           *time.Time               `json:"deleted_at,omitempty"`
}

type OrderPageResponse struct {
	Data    []OrderResponse `json:"data"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// newOrderResponse renders an aggregate returned by a command. Items removed
// from the order are left out unless the order itself is deleted.
func newOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		if item.IsDeleted() && !o.IsDeleted() {
			continue
		}
		items = append(items, ItemResponse{
			ID:       item.ID().String(),
			Name:     item.Name(),
			Price:    item.Price().String(),
			Spec:     item.Spec(),
			SKU:      item.SKU(),
			Quantity: item.Quantity(),
			Status:   item.Status().String(),
		})
	}

	histories := make([]PaymentHistoryResponse, 0, len(o.PaymentHistories()))
	for _, entry := range o.PaymentHistories() {
		histories = append(histories, newPaymentHistoryResponse(entry))
	}

	return OrderResponse{
		ID:                  o.ID().String(),
		SerialNumber:        o.SerialNumber(),
		Payment:             o.Payment(),
		Status:              o.Status().String(),
		ShippingStatus:      o.ShippingStatus().String(),
		TotalPrice:          o.TotalPrice().String(),
		UserID:              o.UserID(),
		Items:               items,
		ReceiverInformation: newInformationResponse(o.Receiver()),
		BuyerInformation:    newInformationResponse(o.Buyer()),
		PaymentHistories:    histories,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		DeletedAt:           o.DeletedAt(),
	}
}

func newInformationResponse(info order.Information) InformationResponse {
	return InformationResponse{
		Name:    info.Name(),
		Address: info.Address(),
		Phone:   info.Phone(),
		Email:   info.Email(),
	}
}

func newPaymentHistoryResponse(entry *order.PaymentHistory) PaymentHistoryResponse {
	return PaymentHistoryResponse{
		ID:        entry.ID().String(),
		Price:     entry.Price().String(),
		Payment:   entry.Payment(),
		Comment:   entry.Comment(),
		CreatedAt: entry.CreatedAt(),
	}
}

func newOrderViewResponse(view queries.OrderView) OrderResponse {
	items := make([]ItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, ItemResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Price:    item.Price.String(),
			Spec:     item.Spec,
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Status:   item.Status,
		})
	}

	histories := make([]PaymentHistoryResponse, 0, len(view.PaymentHistories))
	for _, entry := range view.PaymentHistories {
		histories = append(histories, PaymentHistoryResponse{
			ID:        entry.ID.String(),
			Price:     entry.Price.String(),
			Payment:   entry.Payment,
			Comment:   entry.Comment,
			CreatedAt: entry.CreatedAt,
		})
	}

	return OrderResponse{
		ID:                  view.ID.String(),
		SerialNumber:        view.SerialNumber,
		Payment:             view.Payment,
		Status:              view.Status,
		ShippingStatus:      view.ShippingStatus,
		TotalPrice:          view.TotalPrice.String(),
		UserID:              view.UserID,
		Items:               items,
		ReceiverInformation: InformationResponse(view.ReceiverInformation),
		BuyerInformation:    InformationResponse(view.BuyerInformation),
		PaymentHistories:    histories,
		CreatedAt:           view.CreatedAt,
		UpdatedAt:           view.UpdatedAt,
		DeletedAt:           view.DeletedAt,
	}
}

// requestValidator adapts validator/v10 to echo. Failures are reported as
// ValueIsInvalidError on the first offending field.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: validate}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		if first.Tag() == "required" {
			return errs.NewValueIsRequiredError(first.Field())
		}
		return errs.NewValueIsInvalidErrorWithCause(first.Field(), first)
	}
	return errs.NewValueIsInvalidErrorWithCause("request", err)
}
