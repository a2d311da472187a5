package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListInvoicesByStatusQueryHandler retrieves worklists from the invoice
// table. Urgent invoices sort first, then by invoice date, so the worklist
// order is the order workers should process.
type ListInvoicesByStatusQueryHandler struct {
	db *gorm.DB
}

// NewListInvoicesByStatusQueryHandler creates a handler for worklist
// queries. Requires a GORM database connection for query execution.
func NewListInvoicesByStatusQueryHandler(db *gorm.DB) ListInvoicesByStatusQueryHandler {
	return ListInvoicesByStatusQueryHandler{db: db}
}

// Handle executes the query to retrieve all invoices in the given status.
func (h ListInvoicesByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListInvoicesByStatusQuery,
) ([]ListInvoicesByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	invoices := make([]ListInvoicesByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			invoice_no,
			invoice_date,
			priority,
			remarks
		FROM invoices
		WHERE status = ?
		ORDER BY priority DESC, invoice_date, invoice_no
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view     ListInvoicesByStatusQueryResponse
			id       uuid.UUID
			priority int
		)

		err = rows.Scan(&id, &view.InvoiceNo, &view.InvoiceDate, &priority, &view.Remarks)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Priority = invoice.Priority(priority).String()

		invoices = append(invoices, view)
	}

	return invoices, rows.Err()
}
