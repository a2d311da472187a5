package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReturnToBillingCommandIsNotConstructed = errors.New(
	"ReturnToBillingCommand must be created via NewReturnToBillingCommand constructor",
)

// ReturnToBillingCommand pulls an invoice out of the fulfillment flow and
// hands it back to the billing team for review. The stage names where the
// problem was found (picking, packing or delivery) and the reason is
// mandatory free text for the billing team.
type ReturnToBillingCommand struct {
	invoiceNo  string
	stage      kernel.Stage
	actorEmail string
	reason     string

	guard guard.ConstructorGuard
}

// NewReturnToBillingCommand creates a validated command.
func NewReturnToBillingCommand(invoiceNo string, stage kernel.Stage, actorEmail string, reason string) (
	ReturnToBillingCommand, error) {
	if invoiceNo == "" {
		return ReturnToBillingCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if err := stage.Validate(); err != nil {
		return ReturnToBillingCommand{}, err
	}
	if actorEmail == "" {
		return ReturnToBillingCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}
	if reason == "" {
		return ReturnToBillingCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return ReturnToBillingCommand{
		invoiceNo:  invoiceNo,
		stage:      stage,
		actorEmail: actorEmail,
		reason:     reason,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being returned.
func (c ReturnToBillingCommand) InvoiceNo() string { return c.invoiceNo }

// Stage returns the fulfillment stage the return is raised from.
func (c ReturnToBillingCommand) Stage() kernel.Stage { return c.stage }

// ActorEmail returns the identity of the worker raising the return.
func (c ReturnToBillingCommand) ActorEmail() string { return c.actorEmail }

// Reason returns the mandatory explanation for the billing team.
func (c ReturnToBillingCommand) Reason() string { return c.reason }

// Validate checks that the command was built through the constructor.
func (c ReturnToBillingCommand) Validate() error {
	return c.guard.Validate(ErrReturnToBillingCommandIsNotConstructed)
}
