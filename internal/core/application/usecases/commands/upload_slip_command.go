package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUploadSlipCommandIsNotConstructed = errors.New(
	"UploadSlipCommand must be created via NewUploadSlipCommand constructor",
)

// UploadSlipCommand confirms a courier delivery with the courier's signed
// proof-of-delivery slip. The slip reference points at the stored document
// (object storage key or document id); this service records the reference,
// it does not store the bytes.
type UploadSlipCommand struct {
	invoiceNo  string
	actorEmail string
	slipRef    string

	guard guard.ConstructorGuard
}

// NewUploadSlipCommand creates a validated command.
func NewUploadSlipCommand(invoiceNo string, actorEmail string, slipRef string) (UploadSlipCommand, error) {
	if invoiceNo == "" {
		return UploadSlipCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return UploadSlipCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}
	if slipRef == "" {
		return UploadSlipCommand{}, errs.NewValueIsRequiredError("slipRef")
	}

	return UploadSlipCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,
		slipRef:    slipRef,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the delivered invoice.
func (c UploadSlipCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the worker uploading the slip.
func (c UploadSlipCommand) ActorEmail() string { return c.actorEmail }

// SlipRef returns the reference to the stored slip document.
func (c UploadSlipCommand) SlipRef() string { return c.slipRef }

// Validate checks that the command was built through the constructor.
func (c UploadSlipCommand) Validate() error {
	return c.guard.Validate(ErrUploadSlipCommandIsNotConstructed)
}
