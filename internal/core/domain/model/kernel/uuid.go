package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not created through one of
// the constructor functions. It is returned when validating a zero-value UUID,
// e.g. an order id that was never set.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object of the ordering core. Orders, order
// items, payment history entries and outbox messages are all keyed by it.
// It wraps github.com/google/uuid so that the domain never handles the raw
// type directly.
//
// The zero value is invalid: Validate reports ErrUUIDIsNotConstructed for it,
// and UUIDFromString and UUIDFromBytes reject the nil UUID. A UUID is an
// immutable value and is safe to share between goroutines.
//
// Example usage:
//
//	// New aggregate
//	orderID := kernel.NewUUID()
//
//	// Path parameter from the HTTP layer
//	itemID, err := kernel.UUIDFromString(c.Param("item_id"))
//	if err != nil {
//	    return err // ValueIsInvalidError, rendered as 400/422
//	}
//
//	// Column read back by a GORM DTO
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. It is how every new
// order, item and payment history entry gets its id.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), sn, "card", items, receiver, buyer, nil, time.Now())
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from text. It accepts the forms google/uuid
// understands:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// A malformed string is a ValueIsInvalidError; the nil UUID
// ("00000000-0000-0000-0000-000000000000") is ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes rebuilds an identifier from its 16-byte form, which is how
// the repositories read ids back from PostgreSQL.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(row.OrderID[:])
//	if err != nil {
//	    return nil, fmt.Errorf("corrupt order_id column: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

// String returns the canonical lowercase form, e.g.
// "550e8400-e29b-41d4-a716-446655440000". It is used for JSON responses,
// log fields and Kafka message keys.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value, which is what the GORM
// DTOs store.
//
// Example:
//
//	db.Where("order_id = ?", orderID.Bytes()).Find(&items)
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
//
// Example:
//
//	if item.ID().IsEqual(cmd.ItemID()) {
//	    // cancel this one
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate reports ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
