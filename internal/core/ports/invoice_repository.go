package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoice aggregates.
// Implementations persist the invoice row and every pending status
// transition of the aggregate atomically within the ambient transaction.
type InvoiceRepository interface {
	// Add persists a new invoice aggregate. The invoice number is unique;
	// adding a duplicate fails.
	Add(ctx context.Context, aggregate *invoice.Invoice) error

	// Update persists changes to an existing invoice aggregate, including
	// any pending status transitions.
	Update(ctx context.Context, aggregate *invoice.Invoice) error

	// Get retrieves an invoice aggregate by its surrogate identifier.
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// GetByNumber retrieves an invoice aggregate by its business invoice
	// number, the identity external callers use.
	GetByNumber(ctx context.Context, invoiceNo string) (*invoice.Invoice, error)
}
