// Package guard implements a defensive construction pattern for commands and
// value objects. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects that bypass their constructor fail
// validation instead of silently carrying unvalidated state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is
// passed as the validation error. Validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures objects are only created through their designated
// constructor functions. The guard maintains an internal flag that is only set
// when the object is created through NewConstructorGuard; a zero-value struct
// fails validation.
//
// Example usage:
//
//	var ErrClaimCommandIsNotConstructed = errors.New("ClaimCommand must be created via NewClaimCommand")
//
//	type ClaimCommand struct {
//	    invoiceNo string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewClaimCommand(invoiceNo string) (ClaimCommand, error) {
//	    if invoiceNo == "" {
//	        return ClaimCommand{}, errors.New("invoice number is required")
//	    }
//	    return ClaimCommand{invoiceNo: invoiceNo, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ClaimCommand) Validate() error {
//	    return c.guard.Validate(ErrClaimCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects, validationError for
// zero-value ones, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
