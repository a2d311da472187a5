// Package session models the per-stage work sessions of the fulfillment
// workflow. A session is created when a worker claims an invoice for picking
// or packing, mutated exactly once on completion or cancellation, and then
// retained forever as an immutable history record.
//
// The ledger enforces at most one active session per invoice per stage; the
// aggregate enforces that the worker who claimed a stage is the one who
// completes it.
package session

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session instance was not
	// created through NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

	// ErrActorMismatch is returned when the worker completing a session is
	// not the worker who claimed it. This is a hard invariant: the wrapping
	// error names both identities for the audit log.
	ErrActorMismatch = errors.New("session must be completed by the worker who claimed it")

	// ErrSessionNotActive is returned when completing or cancelling a session
	// that already reached a final state.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrDuplicateActiveSession is returned when a second active session is
	// created for the same invoice and stage. The ledger surfaces it both on
	// its pre-check and from the database uniqueness constraint, so the loser
	// of a claim race sees this error rather than corrupted state.
	ErrDuplicateActiveSession = errors.New("an active session already exists for this invoice and stage")
)

// Session records one worker's claim on one fulfillment stage of an invoice.
//
// Session maintains these invariants:
//   - The stage is a worker stage (picking or packing)
//   - The completing worker equals the claiming worker
//   - Completed and cancelled sessions are never mutated again
type Session struct {
	id          kernel.UUID
	invoiceID   kernel.UUID
	stage       kernel.Stage
	assignedTo  kernel.UUID
	completedBy *kernel.UUID
	state       State
	startedAt   time.Time
	endedAt     *time.Time
	notes       string

	isConstructed bool
}

// NewSession creates an active session for a worker claiming a stage.
func NewSession(id kernel.UUID, invoiceID kernel.UUID, stage kernel.Stage, assignedTo kernel.UUID) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), assignedTo.Validate()); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if !stage.IsWorkerStage() {
		return nil, fmt.Errorf("%w: %s sessions are managed by the delivery dispatcher",
			ErrSessionIsNotConstructed, stage)
	}

	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		stage:         stage,
		assignedTo:    assignedTo,
		state:         StateActive,
		startedAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreSession reconstructs a session from persistence.
func RestoreSession(
	id kernel.UUID,
	invoiceID kernel.UUID,
	stage kernel.Stage,
	assignedTo kernel.UUID,
	completedBy *kernel.UUID,
	state State,
	startedAt time.Time,
	endedAt *time.Time,
	notes string,
) (*Session, error) {
	if err := errors.Join(id.Validate(), invoiceID.Validate(), assignedTo.Validate(), stage.Validate(), state.Validate()); err != nil {
		return nil, err
	}

	return &Session{
		id:            id,
		invoiceID:     invoiceID,
		stage:         stage,
		assignedTo:    assignedTo,
		completedBy:   completedBy,
		state:         state,
		startedAt:     startedAt,
		endedAt:       endedAt,
		notes:         notes,
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// InvoiceID returns the invoice the session belongs to.
func (s *Session) InvoiceID() kernel.UUID { return s.invoiceID }

// Stage returns the fulfillment stage of the session.
func (s *Session) Stage() kernel.Stage { return s.stage }

// AssignedTo returns the worker who claimed the stage.
func (s *Session) AssignedTo() kernel.UUID { return s.assignedTo }

// CompletedBy returns the worker who completed the stage, or nil while the
// session is in progress or cancelled. When set it always equals AssignedTo.
func (s *Session) CompletedBy() *kernel.UUID { return s.completedBy }

// State returns the current session state.
func (s *Session) State() State { return s.state }

// StartedAt returns the claim time.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns the completion or cancellation time, or nil while active.
func (s *Session) EndedAt() *time.Time { return s.endedAt }

// Notes returns the worker's free-text notes.
func (s *Session) Notes() string { return s.notes }

// Complete finishes the session.
//
// Business rules:
//   - The session must still be active (ErrSessionNotActive otherwise)
//   - The completing worker must equal the claiming worker
//     (ErrActorMismatch otherwise — a hard invariant, never a warning)
//
// On success the session becomes an immutable historical record.
func (s *Session) Complete(actorID kernel.UUID, notes string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if s.state != StateActive {
		return fmt.Errorf("%w: session state is %s", ErrSessionNotActive, s.state)
	}
	if !actorID.IsEqual(s.assignedTo) {
		return fmt.Errorf("%w: claimed by %s, completion attempted by %s",
			ErrActorMismatch, s.assignedTo, actorID)
	}

	now := time.Now().UTC()
	s.completedBy = &actorID
	s.endedAt = &now
	s.notes = notes
	s.state = StateCompleted
	return nil
}

// Cancel aborts an active session because the invoice was returned to
// billing. The row is kept for audit; only the return handler cancels
// sessions.
func (s *Session) Cancel() error {
	if s.state != StateActive {
		return fmt.Errorf("%w: session state is %s", ErrSessionNotActive, s.state)
	}

	now := time.Now().UTC()
	s.endedAt = &now
	s.state = StateCancelled
	return nil
}
