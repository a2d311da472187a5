package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkReInvoicedCommandIsNotConstructed = errors.New(
	"MarkReInvoicedCommand must be created via NewMarkReInvoicedCommand constructor",
)

// MarkReInvoicedCommand records a billing correction. It is part of the
// billing import contract: when billing issues a corrected invoice for one
// under review, it reports the correction here, which flips the billing
// status from REVIEW to RE_INVOICED and makes the invoice resubmittable.
type MarkReInvoicedCommand struct {
	invoiceNo string

	guard guard.ConstructorGuard
}

// NewMarkReInvoicedCommand creates a validated command.
func NewMarkReInvoicedCommand(invoiceNo string) (MarkReInvoicedCommand, error) {
	if invoiceNo == "" {
		return MarkReInvoicedCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}

	return MarkReInvoicedCommand{
		invoiceNo: invoiceNo,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the corrected invoice.
func (c MarkReInvoicedCommand) InvoiceNo() string { return c.invoiceNo }

// Validate checks that the command was built through the constructor.
func (c MarkReInvoicedCommand) Validate() error {
	return c.guard.Validate(ErrMarkReInvoicedCommandIsNotConstructed)
}
