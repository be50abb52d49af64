// Package kernel provides the shared domain primitives of the ordering service.
//
// The package includes:
//   - UUID: identifier value object wrapping google/uuid
//   - Money: non-negative decimal amount backed by shopspring/decimal
//   - DomainEvent: the record aggregates append for the outbox
//
// All primitives are immutable values and safe for concurrent use.
package kernel
