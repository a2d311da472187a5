package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListReturnsQueryIsNotConstructed = errors.New(
		"ListReturnsQuery must be created via NewListReturnsQuery constructor",
	)
)

// ListReturnsQuery retrieves the return-to-billing history of one invoice,
// oldest first. Used by the billing team to see why an invoice keeps coming
// back.
type ListReturnsQuery struct {
	invoiceNo string

	guard guard.ConstructorGuard
}

// NewListReturnsQuery creates a query for the return history of an invoice.
func NewListReturnsQuery(invoiceNo string) (ListReturnsQuery, error) {
	if invoiceNo == "" {
		return ListReturnsQuery{}, errs.NewValueIsRequiredError("invoiceNo")
	}

	return ListReturnsQuery{
		invoiceNo: invoiceNo,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business invoice number to look up.
func (q ListReturnsQuery) InvoiceNo() string { return q.invoiceNo }

// Validate ensures the query was created through the constructor.
// Returns ErrListReturnsQueryIsNotConstructed if validation fails.
func (q ListReturnsQuery) Validate() error {
	return q.guard.Validate(ErrListReturnsQueryIsNotConstructed)
}
