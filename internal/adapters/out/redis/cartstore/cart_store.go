// Package cartstore reads checkout carts kept in Redis.
//
// A cart is a JSON document stored under cart:<id>:
//
//	{"lines":[{"name":"Book","spec":"","sku":"B-1","price":"12.50","quantity":2,"available":true}]}
//
// Carts are written by the storefront; this service only reads them and
// deletes them once they have been turned into an order.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const keyPrefix = "cart:"

type document struct {
	Lines []line `json:"lines"`
}

type line struct {
	Name      string          `json:"name"`
	Spec      string          `json:"spec"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Available bool            `json:"available"`
}

// RedisCartStore implements ports.CartProvider.
type RedisCartStore struct {
	client redis.Cmdable
}

func NewRedisCartStore(client redis.Cmdable) *RedisCartStore {
	return &RedisCartStore{client: client}
}

// GetCart treats a missing key like an empty cart: the caller gets a
// ValueIsRequiredError for "cart". A negative or sub-cent price is a
// ValueIsInvalidError.
func (s *RedisCartStore) GetCart(ctx context.Context, cartID string) (cart.Snapshot, error) {
	if cartID == "" {
		return cart.Snapshot{}, errs.NewValueIsRequiredError("cart")
	}

	raw, err := s.client.Get(ctx, Key(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Snapshot{}, errs.NewValueIsRequiredErrorWithCause("cart", errs.NewObjectNotFoundError("cart", cartID))
	}
	if err != nil {
		return cart.Snapshot{}, err
	}

	var doc document
	if err = json.Unmarshal(raw, &doc); err != nil {
		return cart.Snapshot{}, fmt.Errorf("decode cart %s: %w", cartID, err)
	}

	lines := make([]cart.Line, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		price, priceErr := kernel.NewMoney(l.Price)
		if priceErr != nil {
			return cart.Snapshot{}, priceErr
		}
		lines = append(lines, cart.Line{
			Name:      l.Name,
			Spec:      l.Spec,
			SKU:       l.SKU,
			UnitPrice: price,
			Quantity:  l.Quantity,
			Available: l.Available,
		})
	}

	return cart.NewSnapshot(cartID, lines)
}

// Clear deletes the cart. Clearing a missing cart is not an error.
func (s *RedisCartStore) Clear(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, Key(cartID)).Err()
}

// Key returns the Redis key of a cart.
func Key(cartID string) string {
	return keyPrefix + cartID
}
