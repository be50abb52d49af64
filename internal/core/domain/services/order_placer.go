package services

import (
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderPlacer turns a cart snapshot into a PENDING order.
//
// Business rules:
//   - the cart must pass checkout validation (non-empty, quantities >= 1, products available)
//   - one NORMAL item per cart line, name/price/sku/spec copied as they are now
//   - prices are never re-read after placement
//
// Example:
//
//	o, err := services.NewOrderPlacer().Place(services.PlaceRequest{
//	    OrderID:      kernel.NewUUID(),
//	    SerialNumber: sn,
//	    Payment:      "card",
//	    Cart:         snapshot,
//	    Receiver:     receiver,
//	    Buyer:        buyer,
//	    PlacedAt:     time.Now(),
//	})
type OrderPlacer struct{}

func NewOrderPlacer() OrderPlacer {
	return OrderPlacer{}
}

// PlaceRequest gathers the buyer supplied metadata of a new order.
type PlaceRequest struct {
	OrderID      kernel.UUID
	SerialNumber string
	Payment      string
	Cart         cart.Snapshot
	Receiver     order.Information
	Buyer        order.Information
	UserID       *string
	PlacedAt     time.Time
}

func (p OrderPlacer) Place(req PlaceRequest) (*order.Order, error) {
	if err := req.Cart.ValidateForCheckout(); err != nil {
		return nil, err
	}

	lines := req.Cart.Lines()
	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(kernel.NewUUID(), line.Name, line.UnitPrice, line.Spec, line.SKU, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(
		req.OrderID,
		req.SerialNumber,
		req.Payment,
		items,
		req.Receiver,
		req.Buyer,
		req.UserID,
		req.PlacedAt,
	)
}
