package commands

import (
	"errors"

	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// CreateInvoiceCommand imports a billed invoice into the fulfillment flow.
// Invoices originate in the billing system; this command is the ingestion
// point and creates them in INVOICED/BILLED state.
type CreateInvoiceCommand struct {
	invoiceNo   string
	invoiceDate time.Time
	priority    invoice.Priority
	remarks     string
	lineItems   []invoice.LineItem

	guard guard.ConstructorGuard
}

// NewCreateInvoiceCommand creates a validated command. At least one line
// item is required; line items are validated at construction by the domain.
func NewCreateInvoiceCommand(
	invoiceNo string,
	invoiceDate time.Time,
	priority invoice.Priority,
	remarks string,
	lineItems []invoice.LineItem,
) (CreateInvoiceCommand, error) {
	if invoiceNo == "" {
		return CreateInvoiceCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if err := priority.Validate(); err != nil {
		return CreateInvoiceCommand{}, err
	}
	if len(lineItems) == 0 {
		return CreateInvoiceCommand{}, errs.NewValueIsRequiredError("lineItems")
	}

	return CreateInvoiceCommand{
		invoiceNo:   invoiceNo,
		invoiceDate: invoiceDate,
		priority:    priority,
		remarks:     remarks,
		lineItems:   append([]invoice.LineItem(nil), lineItems...),

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number assigned by billing.
func (c CreateInvoiceCommand) InvoiceNo() string { return c.invoiceNo }

// InvoiceDate returns the billing invoice date.
func (c CreateInvoiceCommand) InvoiceDate() time.Time { return c.invoiceDate }

// Priority returns the picking priority.
func (c CreateInvoiceCommand) Priority() invoice.Priority { return c.priority }

// Remarks returns the free-text remarks.
func (c CreateInvoiceCommand) Remarks() string { return c.remarks }

// LineItems returns a copy of the invoice line items.
func (c CreateInvoiceCommand) LineItems() []invoice.LineItem {
	return append([]invoice.LineItem(nil), c.lineItems...)
}

// Validate checks that the command was built through the constructor.
func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}
