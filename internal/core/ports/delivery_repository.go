package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository is the session ledger for the delivery stage.
// An invoice holds at most one non-cancelled delivery session.
type DeliveryRepository interface {
	// Add persists a new delivery session. The insert is race-safe: the
	// uniqueness of the active slot is enforced by a database constraint,
	// and the loser of a concurrent dispatch receives
	// delivery.ErrDuplicateDeliverySession.
	Add(ctx context.Context, aggregate *delivery.Session) error

	// Update persists the confirmation or cancellation of a session.
	Update(ctx context.Context, aggregate *delivery.Session) error

	// Get retrieves a delivery session by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Session, error)

	// GetActiveByInvoice retrieves the pending or completed (non-cancelled)
	// delivery session of an invoice. Returns errs.ObjectNotFoundError when
	// none exists.
	GetActiveByInvoice(ctx context.Context, invoiceID kernel.UUID) (*delivery.Session, error)
}
