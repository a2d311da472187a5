// Package sessionrepo persists the worker-stage session ledger. The
// at-most-one-active-session-per-invoice-per-stage invariant is enforced by
// a partial unique index on active rows, so concurrent claims are decided by
// the database, not by application-level checks.
package sessionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting stage
// sessions. The partial unique index idx_stage_sessions_active covers
// (invoice_id, stage) for rows still in the active state; completed and
// cancelled rows fall out of the index and stay as history.
type SessionDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_stage_sessions_active,where:state = 1"`
	Stage       int        `gorm:"uniqueIndex:idx_stage_sessions_active,where:state = 1"`
	AssignedTo  uuid.UUID  `gorm:"type:uuid"`
	CompletedBy *uuid.UUID `gorm:"type:uuid"`
	State       int        `gorm:"index"`
	StartedAt   time.Time
	EndedAt     *time.Time
	Notes       string
}

// TableName specifies the database table name for stage sessions.
func (SessionDTO) TableName() string {
	return "stage_sessions"
}

// fromDomain converts a session aggregate to its database representation.
func fromDomain(sess *session.Session) SessionDTO {
	var completedBy *uuid.UUID
	if id := sess.CompletedBy(); id != nil {
		raw := id.Bytes()
		completedBy = &raw
	}

	return SessionDTO{
		ID:          sess.ID().Bytes(),
		InvoiceID:   sess.InvoiceID().Bytes(),
		Stage:       int(sess.Stage()),
		AssignedTo:  sess.AssignedTo().Bytes(),
		CompletedBy: completedBy,
		State:       int(sess.State()),
		StartedAt:   sess.StartedAt(),
		EndedAt:     sess.EndedAt(),
		Notes:       sess.Notes(),
	}
}

// toDomain converts a database DTO to a session aggregate.
func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernel.UUIDFromBytes(dto.AssignedTo[:])
	if err != nil {
		return nil, err
	}

	var completedBy *kernel.UUID
	if dto.CompletedBy != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CompletedBy)[:])
		if cErr != nil {
			return nil, cErr
		}
		completedBy = &cID
	}

	return session.RestoreSession(
		id,
		invoiceID,
		kernel.Stage(dto.Stage),
		assignedTo,
		completedBy,
		session.State(dto.State),
		dto.StartedAt,
		dto.EndedAt,
		dto.Notes,
	)
}
