package commands

import "errors"

// Sentinel errors shared across command handlers. Domain invariant errors
// (actor mismatch, invalid state, duplicate sessions) come from the domain
// packages; the sentinels here cover lookups and authorization at the
// application boundary.
var (
	// ErrInvoiceNotFound is returned when the referenced invoice number does
	// not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrActorNotFound is returned when the acting worker's email cannot be
	// resolved to a canonical identity.
	ErrActorNotFound = errors.New("actor not found")

	// ErrCourierNotFound is returned when no active courier matches the
	// requested courier id.
	ErrCourierNotFound = errors.New("courier not found")

	// ErrStaffNotFound is returned when no staff member matches the
	// requested email.
	ErrStaffNotFound = errors.New("staff not found")

	// ErrNoActiveSession is returned when completing a stage that has no
	// active session.
	ErrNoActiveSession = errors.New("no active session for this invoice and stage")

	// ErrDeliverySessionNotFound is returned when the referenced delivery
	// session does not exist.
	ErrDeliverySessionNotFound = errors.New("delivery session not found")

	// ErrNotPermitted is returned when the capability checker denies the
	// operation for the acting worker. Logged for audit.
	ErrNotPermitted = errors.New("actor is not permitted to perform this operation")

	// ErrDuplicateInvoice is returned when importing an invoice number that
	// already exists.
	ErrDuplicateInvoice = errors.New("invoice number already exists")
)
