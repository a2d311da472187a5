package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchInternalCommandIsNotConstructed = errors.New(
	"DispatchInternalCommand must be created via NewDispatchInternalCommand constructor",
)

// DispatchInternalCommand hands a packed invoice to a staff member for
// personal delivery (ward stock, in-house departments). The session lands on
// the consider list; only the assigned staff member may confirm it.
type DispatchInternalCommand struct {
	invoiceNo  string
	actorEmail string
	staffEmail string

	guard guard.ConstructorGuard
}

// NewDispatchInternalCommand creates a validated command.
func NewDispatchInternalCommand(invoiceNo string, actorEmail string, staffEmail string) (
	DispatchInternalCommand, error) {
	if invoiceNo == "" {
		return DispatchInternalCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return DispatchInternalCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}
	if staffEmail == "" {
		return DispatchInternalCommand{}, errs.NewValueIsRequiredError("staffEmail")
	}

	return DispatchInternalCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,
		staffEmail: staffEmail,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being dispatched.
func (c DispatchInternalCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the dispatching worker.
func (c DispatchInternalCommand) ActorEmail() string { return c.actorEmail }

// StaffEmail returns the staff member carrying the delivery.
func (c DispatchInternalCommand) StaffEmail() string { return c.staffEmail }

// Validate checks that the command was built through the constructor.
func (c DispatchInternalCommand) Validate() error {
	return c.guard.Validate(ErrDispatchInternalCommandIsNotConstructed)
}
