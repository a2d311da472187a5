package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmInternalCommandIsNotConstructed = errors.New(
	"ConfirmInternalCommand must be created via NewConfirmInternalCommand constructor",
)

// ConfirmInternalCommand confirms an internal staff delivery. The confirming
// actor must be the staff member the delivery was assigned to.
type ConfirmInternalCommand struct {
	invoiceNo  string
	actorEmail string

	guard guard.ConstructorGuard
}

// NewConfirmInternalCommand creates a validated command.
func NewConfirmInternalCommand(invoiceNo string, actorEmail string) (ConfirmInternalCommand, error) {
	if invoiceNo == "" {
		return ConfirmInternalCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return ConfirmInternalCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}

	return ConfirmInternalCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the delivered invoice.
func (c ConfirmInternalCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the confirming staff member.
func (c ConfirmInternalCommand) ActorEmail() string { return c.actorEmail }

// Validate checks that the command was built through the constructor.
func (c ConfirmInternalCommand) Validate() error {
	return c.guard.Validate(ErrConfirmInternalCommandIsNotConstructed)
}
