package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrResubmitInvoiceCommandIsNotConstructed = errors.New(
	"ResubmitInvoiceCommand must be created via NewResubmitInvoiceCommand constructor",
)

// ResubmitInvoiceCommand re-enters a corrected invoice into fulfillment.
// Valid only for invoices in REVIEW whose billing status is RE_INVOICED;
// the invoice starts over from INVOICED.
type ResubmitInvoiceCommand struct {
	invoiceNo  string
	actorEmail string

	guard guard.ConstructorGuard
}

// NewResubmitInvoiceCommand creates a validated command.
func NewResubmitInvoiceCommand(invoiceNo string, actorEmail string) (ResubmitInvoiceCommand, error) {
	if invoiceNo == "" {
		return ResubmitInvoiceCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return ResubmitInvoiceCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}

	return ResubmitInvoiceCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being resubmitted.
func (c ResubmitInvoiceCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the worker resubmitting the invoice.
func (c ResubmitInvoiceCommand) ActorEmail() string { return c.actorEmail }

// Validate checks that the command was built through the constructor.
func (c ResubmitInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrResubmitInvoiceCommandIsNotConstructed)
}
