// Package guard provides a lightweight defensive-programming primitive that
// ensures value objects, commands, and entities are only created through their
// designated constructor functions.
//
// By embedding a ConstructorGuard in a struct, zero-value instances can be
// distinguished from properly constructed ones: the guard's internal flag is
// only set when NewConstructorGuard is called inside the constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by Validate when a
// nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as created through its constructor.
// The zero value is invalid and fails Validate.
//
// Example usage:
//
//	type RateSubDeliveryCommand struct {
//	    rating delivery.SubStatus
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewRateSubDeliveryCommand(...) (RateSubDeliveryCommand, error) {
//	    return RateSubDeliveryCommand{
//	        rating: rating,
//	        guard:  guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c RateSubDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of guarded objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object was created through its
// constructor. For zero-value guards it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
