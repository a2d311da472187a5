package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchDirectCommandIsNotConstructed = errors.New(
	"DispatchDirectCommand must be created via NewDispatchDirectCommand constructor",
)

// DispatchDirectCommand hands a packed invoice over the counter. Direct
// handover completes synchronously: the person collecting the goods is
// standing in front of the dispatcher, so the delivery session is born
// delivered and the invoice is marked delivered in the same transaction.
//
// The patient sub-mode records who collected; the company sub-mode
// additionally records the collecting company.
type DispatchDirectCommand struct {
	invoiceNo  string
	actorEmail string
	subMode    delivery.SubMode
	pickup     delivery.Pickup
	company    *delivery.Company

	guard guard.ConstructorGuard
}

// NewDispatchDirectCommand creates a validated command. The company is
// required for the company sub-mode and must be nil otherwise; pickup
// details are validated by the delivery aggregate.
func NewDispatchDirectCommand(
	invoiceNo string,
	actorEmail string,
	subMode delivery.SubMode,
	pickup delivery.Pickup,
	company *delivery.Company,
) (DispatchDirectCommand, error) {
	if invoiceNo == "" {
		return DispatchDirectCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return DispatchDirectCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}
	if subMode != delivery.SubModePatient && subMode != delivery.SubModeCompany {
		return DispatchDirectCommand{}, errs.NewValueIsInvalidError("subMode")
	}

	return DispatchDirectCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,
		subMode:    subMode,
		pickup:     pickup,
		company:    company,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being dispatched.
func (c DispatchDirectCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the dispatching worker.
func (c DispatchDirectCommand) ActorEmail() string { return c.actorEmail }

// SubMode returns the handover sub-mode (patient or company).
func (c DispatchDirectCommand) SubMode() delivery.SubMode { return c.subMode }

// Pickup returns the identity of the person collecting the goods.
func (c DispatchDirectCommand) Pickup() delivery.Pickup { return c.pickup }

// Company returns the collecting company, or nil for the patient sub-mode.
func (c DispatchDirectCommand) Company() *delivery.Company { return c.company }

// Validate checks that the command was built through the constructor.
func (c DispatchDirectCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDirectCommandIsNotConstructed)
}
