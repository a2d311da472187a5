package invoice

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Return is the immutable audit record of one return-to-billing.
// An invoice keeps its full return history; records are appended by the
// return handler and never modified or deleted.
type Return struct {
	id        kernel.UUID
	invoiceID kernel.UUID
	stage     kernel.Stage
	actorID   kernel.UUID
	reason    string
	raisedAt  time.Time
}

// NewReturn creates a validated return record.
// The reason is mandatory: a return without an explanation is useless to the
// billing team and to the audit trail.
func NewReturn(
	id kernel.UUID,
	invoiceID kernel.UUID,
	stage kernel.Stage,
	actorID kernel.UUID,
	reason string,
	raisedAt time.Time,
) (Return, error) {
	if err := id.Validate(); err != nil {
		return Return{}, err
	}
	if err := invoiceID.Validate(); err != nil {
		return Return{}, err
	}
	if err := stage.Validate(); err != nil {
		return Return{}, err
	}
	if err := actorID.Validate(); err != nil {
		return Return{}, err
	}
	if reason == "" {
		return Return{}, errs.NewValueIsRequiredError("return reason")
	}

	return Return{
		id:        id,
		invoiceID: invoiceID,
		stage:     stage,
		actorID:   actorID,
		reason:    reason,
		raisedAt:  raisedAt,
	}, nil
}

// RestoreReturn reconstructs a return record from persistence without
// re-validating business rules.
func RestoreReturn(
	id kernel.UUID,
	invoiceID kernel.UUID,
	stage kernel.Stage,
	actorID kernel.UUID,
	reason string,
	raisedAt time.Time,
) Return {
	return Return{
		id:        id,
		invoiceID: invoiceID,
		stage:     stage,
		actorID:   actorID,
		reason:    reason,
		raisedAt:  raisedAt,
	}
}

// ID returns the record identifier.
func (r Return) ID() kernel.UUID { return r.id }

// InvoiceID returns the returned invoice.
func (r Return) InvoiceID() kernel.UUID { return r.invoiceID }

// Stage returns the fulfillment stage the invoice was returned from.
func (r Return) Stage() kernel.Stage { return r.stage }

// ActorID returns the worker who raised the return.
func (r Return) ActorID() kernel.UUID { return r.actorID }

// Reason returns the free-text explanation of the return.
func (r Return) Reason() string { return r.reason }

// RaisedAt returns the time the return was raised.
func (r Return) RaisedAt() time.Time { return r.raisedAt }
