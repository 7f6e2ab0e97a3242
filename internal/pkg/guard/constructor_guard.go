// Package guard detects aggregates, commands and queries that were created as
// zero values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be built by their
// constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrSupplyOrderIsNotConstructed = errors.New("SupplyOrder must be created via NewSupplyOrder")
//
//	type SupplyOrder struct {
//	    number string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (o *SupplyOrder) Validate() error {
//	    return o.guard.Validate(ErrSupplyOrderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
