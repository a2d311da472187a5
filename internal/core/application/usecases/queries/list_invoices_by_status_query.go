package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListInvoicesByStatusQueryIsNotConstructed = errors.New(
		"ListInvoicesByStatusQuery must be created via NewListInvoicesByStatusQuery constructor",
	)
)

// ListInvoicesByStatusQuery retrieves the invoices currently in one
// fulfillment status. This is the worklist query: pickers list Invoiced,
// packers list Picked, dispatchers list Packed.
type ListInvoicesByStatusQuery struct {
	status invoice.Status

	guard guard.ConstructorGuard
}

// NewListInvoicesByStatusQuery creates a query for invoices in the given
// status.
func NewListInvoicesByStatusQuery(status invoice.Status) (ListInvoicesByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return ListInvoicesByStatusQuery{}, err
	}

	return ListInvoicesByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Status returns the fulfillment status to filter on.
func (q ListInvoicesByStatusQuery) Status() invoice.Status { return q.status }

// Validate ensures the query was created through the constructor.
// Returns ErrListInvoicesByStatusQueryIsNotConstructed if validation fails.
func (q ListInvoicesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesByStatusQueryIsNotConstructed)
}

// ListInvoicesByStatusQueryResponse represents one invoice in a worklist.
type ListInvoicesByStatusQueryResponse struct {
	ID          kernel.UUID
	InvoiceNo   string
	InvoiceDate time.Time
	Priority    string
	Remarks     string
}
