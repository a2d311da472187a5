package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"
)

// SessionRepository is the session ledger for the worker stages (picking
// and packing). It enforces the at-most-one-active-session-per-invoice-
// per-stage invariant.
type SessionRepository interface {
	// Add persists a new stage session. The insert is race-safe: the
	// uniqueness of the active slot is enforced by a database constraint,
	// and the loser of a concurrent claim receives
	// session.ErrDuplicateActiveSession, never corrupted state.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists the completion or cancellation of a session.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// GetActive retrieves the active session for an invoice and stage.
	// Returns errs.ObjectNotFoundError when none exists.
	GetActive(ctx context.Context, invoiceID kernel.UUID, stage kernel.Stage) (*session.Session, error)

	// GetAllActive retrieves every active worker-stage session of an
	// invoice. Used by the return handler to cancel them as a group.
	GetAllActive(ctx context.Context, invoiceID kernel.UUID) ([]*session.Session, error)
}
