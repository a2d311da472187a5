// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and bypass the
// aggregates entirely.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetInvoiceQueryIsNotConstructed = errors.New(
		"GetInvoiceQuery must be created via NewGetInvoiceQuery constructor",
	)
)

// GetInvoiceQuery retrieves the full fulfillment view of one invoice: the
// invoice row, its line items, its stage session history and its return
// history.
//
// Example:
//
//	query, err := NewGetInvoiceQuery("INV-2024-00731")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetInvoiceQuery struct {
	invoiceNo string

	guard guard.ConstructorGuard
}

// NewGetInvoiceQuery creates a query for one invoice by business number.
func NewGetInvoiceQuery(invoiceNo string) (GetInvoiceQuery, error) {
	if invoiceNo == "" {
		return GetInvoiceQuery{}, errs.NewValueIsRequiredError("invoiceNo")
	}

	return GetInvoiceQuery{
		invoiceNo: invoiceNo,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business invoice number to look up.
func (q GetInvoiceQuery) InvoiceNo() string { return q.invoiceNo }

// Validate ensures the query was created through the constructor.
// Returns ErrGetInvoiceQueryIsNotConstructed if validation fails.
func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

// GetInvoiceQueryResponse is the full read model of one invoice.
type GetInvoiceQueryResponse struct {
	ID            kernel.UUID
	InvoiceNo     string
	InvoiceDate   time.Time
	Priority      string
	Remarks       string
	Status        string
	BillingStatus string
	TotalOverride *decimal.Decimal
	LineItems     []InvoiceLineView
	Sessions      []StageSessionView
	Returns       []ReturnView
}

// InvoiceLineView represents one invoice line in the read model.
type InvoiceLineView struct {
	Name          string
	Code          string
	Quantity      int
	UnitPrice     decimal.Decimal
	BatchNo       string
	ShelfLocation string
}

// StageSessionView represents one worker-stage session in the read model,
// active or historical.
type StageSessionView struct {
	ID         kernel.UUID
	Stage      string
	AssignedTo kernel.UUID
	State      string
	StartedAt  time.Time
	EndedAt    *time.Time
	Notes      string
}

// ReturnView represents one return-to-billing record in the read model.
type ReturnView struct {
	ID       kernel.UUID
	Stage    string
	ActorID  kernel.UUID
	Reason   string
	RaisedAt time.Time
}
