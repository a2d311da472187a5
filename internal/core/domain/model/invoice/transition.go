package invoice

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusTransition is one entry of the append-only status log of an invoice.
// The invoice row carries the current status for cheap reads, but every flip
// is recorded as a transition in the same transaction, so the log is the
// authoritative audit trail and the current status is always its head.
type StatusTransition struct {
	invoiceID kernel.UUID
	from      Status
	to        Status
	actorID   *kernel.UUID
	at        time.Time
}

// InvoiceID returns the invoice the transition belongs to.
func (t StatusTransition) InvoiceID() kernel.UUID { return t.invoiceID }

// From returns the status before the transition.
func (t StatusTransition) From() Status { return t.from }

// To returns the status after the transition.
func (t StatusTransition) To() Status { return t.to }

// ActorID returns the worker who triggered the transition, or nil for
// transitions applied by external inputs (import, billing correction).
func (t StatusTransition) ActorID() *kernel.UUID { return t.actorID }

// At returns the time the transition happened.
func (t StatusTransition) At() time.Time { return t.at }
