// Package order implements the Order aggregate of the ordering service.
//
// The package includes:
//   - Order: aggregate root holding status, shipping status, total price and serial number
//   - Item: order line with its own NORMAL/CANCELED status and soft-deletion marker
//   - Information: receiver and buyer contact records, merged on partial update
//   - PaymentHistory: append-only ledger entries
//   - Status and ShippingStatus: the lifecycle enums
//
// Key business rules:
//   - total price is always recomputed from scratch over non-canceled items
//   - status moves PENDING -> COMPLETED or PENDING -> CANCELED and never back
//   - items are canceled and soft-deleted, never removed
//   - deleting an order soft-deletes it together with its active items
package order
