// Package invoicerepo provides data transfer objects and mapping functions
// for invoice persistence. The aggregate spans three tables: the invoice
// row with the denormalized current status pair, the line items, and the
// append-only status transition log.
package invoicerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO represents the database structure for persisting invoice
// aggregates. The business invoice number carries a unique index; it is the
// identity external callers use.
type InvoiceDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceNo     string    `gorm:"uniqueIndex"`
	CreatedAt     time.Time
	InvoiceDate   time.Time
	Priority      int `gorm:"index"`
	Remarks       string
	TotalOverride *decimal.Decimal `gorm:"type:numeric"`
	Status        int              `gorm:"index"`
	BillingStatus int

	LineItems []LineItemDTO `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName specifies the database table name for invoice entities.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// LineItemDTO represents one invoice line in the database.
type LineItemDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	InvoiceID     uuid.UUID `gorm:"type:uuid;index"`
	Name          string
	Code          string
	Quantity      int
	UnitPrice     decimal.Decimal `gorm:"type:numeric"`
	BatchNo       string
	Expiry        time.Time
	ShelfLocation string
}

// TableName specifies the database table name for invoice lines.
func (LineItemDTO) TableName() string {
	return "invoice_line_items"
}

// StatusTransitionDTO represents one entry of the append-only status log.
// Rows are only ever inserted.
type StatusTransitionDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time
}

// TableName specifies the database table name for the status log.
func (StatusTransitionDTO) TableName() string {
	return "invoice_status_transitions"
}

// fromDomain converts an invoice aggregate to its database representation,
// line items included.
func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	items := inv.LineItems()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for _, li := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			InvoiceID:     inv.ID().Bytes(),
			Name:          li.Name(),
			Code:          li.Code(),
			Quantity:      li.Quantity(),
			UnitPrice:     li.UnitPrice(),
			BatchNo:       li.BatchNo(),
			Expiry:        li.Expiry(),
			ShelfLocation: li.ShelfLocation(),
		})
	}

	return InvoiceDTO{
		ID:            inv.ID().Bytes(),
		InvoiceNo:     inv.InvoiceNo(),
		CreatedAt:     inv.CreatedAt(),
		InvoiceDate:   inv.InvoiceDate(),
		Priority:      int(inv.Priority()),
		Remarks:       inv.Remarks(),
		TotalOverride: inv.TotalOverride(),
		Status:        int(inv.Status()),
		BillingStatus: int(inv.BillingStatus()),
		LineItems:     itemDTOs,
	}
}

// transitionsFromDomain converts the aggregate's pending status transitions
// to log rows.
func transitionsFromDomain(inv *invoice.Invoice) []StatusTransitionDTO {
	pending := inv.PendingTransitions()
	dtos := make([]StatusTransitionDTO, 0, len(pending))
	for _, tr := range pending {
		var actorID *uuid.UUID
		if id := tr.ActorID(); id != nil {
			raw := id.Bytes()
			actorID = &raw
		}
		dtos = append(dtos, StatusTransitionDTO{
			InvoiceID:  tr.InvoiceID().Bytes(),
			FromStatus: int(tr.From()),
			ToStatus:   int(tr.To()),
			ActorID:    actorID,
			OccurredAt: tr.At(),
		})
	}
	return dtos
}

// toDomain converts a database DTO to an invoice aggregate using
// RestoreInvoice, which re-validates the status pair on load.
func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]invoice.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		item, itemErr := invoice.NewLineItem(
			li.Name, li.Code, li.Quantity, li.UnitPrice, li.BatchNo, li.Expiry, li.ShelfLocation)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return invoice.RestoreInvoice(
		id,
		dto.InvoiceNo,
		dto.CreatedAt,
		dto.InvoiceDate,
		invoice.Priority(dto.Priority),
		dto.Remarks,
		dto.TotalOverride,
		invoice.Status(dto.Status),
		invoice.BillingStatus(dto.BillingStatus),
		items,
	)
}
