package ports

import (
	"context"

	"ordering/internal/core/domain/model/cart"
)

// CartProvider is the shopping cart collaborator.
type CartProvider interface {
	// GetCart returns the current contents of a cart. An unknown or expired
	// cart is reported like an empty one, as a ValueIsRequiredError.
	GetCart(ctx context.Context, cartID string) (cart.Snapshot, error)

	// Clear empties a cart after it has been turned into an order.
	Clear(ctx context.Context, cartID string) error
}
