// Package guard holds the constructor guard embedded by commands, queries and
// value objects to detect zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as produced by its constructor. The zero
// value is "not constructed".
//
//	type PlaceOrder struct {
//	    cartID string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c PlaceOrder) Validate() error {
//	    return c.guard.Validate(ErrPlaceOrderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded value was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
