package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// ReturnRepository persists the append-only return history of invoices.
// Records are never updated or deleted.
type ReturnRepository interface {
	// Add appends a return record.
	Add(ctx context.Context, record invoice.Return) error

	// ListByInvoice retrieves the full return history of an invoice,
	// oldest first.
	ListByInvoice(ctx context.Context, invoiceID kernel.UUID) ([]invoice.Return, error)
}
