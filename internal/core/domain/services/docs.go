// Package services provides domain services of the ordering service: logic
// that spans the cart snapshot and the Order aggregate or does not belong to
// any single entity.
//
// The package includes:
//   - OrderPlacer: converts a cart snapshot into a new Order
//   - TimestampSerialNumberResolver: the default serial number strategy
package services
