// Package ports defines the contracts between the ordering core and its
// adapters: persistence, the cart collaborator, serial number strategies and
// event publishing.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Items, information records and payment histories are stored with the order.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its children.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current state of an existing order, including
	// soft-deletion markers and newly appended payment histories.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order that is not soft-deleted.
	// Returns an ObjectNotFoundError otherwise.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends. Mutating commands use it to serialize concurrent
	// changes of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetIncludingDeleted retrieves an order regardless of its deletion marker.
	GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
