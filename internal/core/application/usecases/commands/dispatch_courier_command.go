package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchCourierCommandIsNotConstructed = errors.New(
	"DispatchCourierCommand must be created via NewDispatchCourierCommand constructor",
)

// DispatchCourierCommand hands a packed invoice to an external courier.
// The session lands on the consider list and stays there until the courier's
// proof-of-delivery slip is uploaded; the invoice itself stays PACKED.
type DispatchCourierCommand struct {
	invoiceNo  string
	actorEmail string
	courierID  kernel.UUID
	trackingNo string

	guard guard.ConstructorGuard
}

// NewDispatchCourierCommand creates a validated command. The tracking number
// is optional; some local couriers do not issue one.
func NewDispatchCourierCommand(invoiceNo string, actorEmail string, courierID kernel.UUID, trackingNo string) (
	DispatchCourierCommand, error) {
	if invoiceNo == "" {
		return DispatchCourierCommand{}, errs.NewValueIsRequiredError("invoiceNo")
	}
	if actorEmail == "" {
		return DispatchCourierCommand{}, errs.NewValueIsRequiredError("actorEmail")
	}
	if err := courierID.Validate(); err != nil {
		return DispatchCourierCommand{}, err
	}

	return DispatchCourierCommand{
		invoiceNo:  invoiceNo,
		actorEmail: actorEmail,
		courierID:  courierID,
		trackingNo: trackingNo,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// InvoiceNo returns the business number of the invoice being dispatched.
func (c DispatchCourierCommand) InvoiceNo() string { return c.invoiceNo }

// ActorEmail returns the identity of the dispatching worker.
func (c DispatchCourierCommand) ActorEmail() string { return c.actorEmail }

// CourierID returns the courier carrying the consignment.
func (c DispatchCourierCommand) CourierID() kernel.UUID { return c.courierID }

// TrackingNo returns the courier's tracking number, possibly empty.
func (c DispatchCourierCommand) TrackingNo() string { return c.trackingNo }

// Validate checks that the command was built through the constructor.
func (c DispatchCourierCommand) Validate() error {
	return c.guard.Validate(ErrDispatchCourierCommandIsNotConstructed)
}
