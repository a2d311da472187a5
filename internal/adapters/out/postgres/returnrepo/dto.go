// Package returnrepo persists the append-only return history of invoices.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ReturnDTO represents the database structure for persisting return
// records. Rows are inserted once and never updated.
type ReturnDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index"`
	Stage     int
	ActorID   uuid.UUID `gorm:"type:uuid"`
	Reason    string
	RaisedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for return records.
func (ReturnDTO) TableName() string {
	return "invoice_returns"
}

// fromDomain converts a return record to its database representation.
func fromDomain(record invoice.Return) ReturnDTO {
	return ReturnDTO{
		ID:        record.ID().Bytes(),
		InvoiceID: record.InvoiceID().Bytes(),
		Stage:     int(record.Stage()),
		ActorID:   record.ActorID().Bytes(),
		Reason:    record.Reason(),
		RaisedAt:  record.RaisedAt(),
	}
}

// toDomain converts a database DTO to a return record.
func toDomain(dto ReturnDTO) (invoice.Return, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return invoice.Return{}, err
	}

	invoiceID, err := kernel.UUIDFromBytes(dto.InvoiceID[:])
	if err != nil {
		return invoice.Return{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return invoice.Return{}, err
	}

	return invoice.RestoreReturn(
		id,
		invoiceID,
		kernel.Stage(dto.Stage),
		actorID,
		dto.Reason,
		dto.RaisedAt,
	), nil
}
