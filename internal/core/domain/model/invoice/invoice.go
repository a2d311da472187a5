package invoice

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice instance was not
	// created through NewInvoice or RestoreInvoice. This ensures all invoices
	// are properly validated.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

	// ErrStatusPairConflict is returned when a mutation would leave the
	// fulfillment status and the billing status in a combination the
	// workflow does not allow.
	ErrStatusPairConflict = errors.New("fulfillment status and billing status conflict")
)

// Invoice is the central aggregate of the fulfillment domain. It owns the
// invoice's line items, its fulfillment status and billing status, and the
// append-only log of status transitions applied since it was loaded.
//
// Invoice maintains these invariants:
//   - The invoice number is unique and immutable once created
//   - Status transitions follow the warehouse workflow (see Status)
//   - The fulfillment status and billing status always form a valid pair
//   - Every status flip is recorded as a StatusTransition
//   - Can only be created through NewInvoice or RestoreInvoice
//
// Only the stage engine, the return handler and the delivery dispatcher
// mutate an invoice; they do so exclusively through the methods below.
type Invoice struct {
	id            kernel.UUID
	invoiceNo     string
	createdAt     time.Time
	invoiceDate   time.Time
	priority      Priority
	remarks       string
	totalOverride *decimal.Decimal
	status        Status
	billingStatus BillingStatus
	lineItems     []LineItem

	// transitions accumulated since construction or load; persisted by the
	// repository in the same transaction as the invoice row.
	pendingTransitions []StatusTransition

	isConstructed bool
}

// NewInvoice creates a new invoice in Invoiced/Billed state with the given
// line items. This is the invoice import entry point; at least one line item
// is required. The creation is recorded as the first entry of the status log.
func NewInvoice(
	id kernel.UUID,
	invoiceNo string,
	invoiceDate time.Time,
	priority Priority,
	remarks string,
	lineItems []LineItem,
) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if invoiceNo == "" {
		return nil, errs.NewValueIsRequiredError("invoice number")
	}
	if err := priority.Validate(); err != nil {
		return nil, err
	}
	if len(lineItems) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}

	now := time.Now().UTC()
	inv := &Invoice{
		id:            id,
		invoiceNo:     invoiceNo,
		createdAt:     now,
		invoiceDate:   invoiceDate,
		priority:      priority,
		remarks:       remarks,
		status:        StatusInvoiced,
		billingStatus: BillingBilled,
		lineItems:     append([]LineItem(nil), lineItems...),
		isConstructed: true,
	}
	inv.recordTransition(StatusUnknown, StatusInvoiced, nil)
	return inv, nil
}

// RestoreInvoice reconstructs an invoice aggregate from persistence.
// The status pair is re-checked so corrupted rows are caught on load.
func RestoreInvoice(
	id kernel.UUID,
	invoiceNo string,
	createdAt time.Time,
	invoiceDate time.Time,
	priority Priority,
	remarks string,
	totalOverride *decimal.Decimal,
	status Status,
	billingStatus BillingStatus,
	lineItems []LineItem,
) (*Invoice, error) {
	if err := errors.Join(id.Validate(), status.Validate(), billingStatus.Validate()); err != nil {
		return nil, err
	}
	if invoiceNo == "" {
		return nil, errs.NewValueIsRequiredError("invoice number")
	}
	if !ValidStatusPair(status, billingStatus) {
		return nil, fmt.Errorf("%w: status %s with billing status %s", ErrStatusPairConflict, status, billingStatus)
	}

	return &Invoice{
		id:            id,
		invoiceNo:     invoiceNo,
		createdAt:     createdAt,
		invoiceDate:   invoiceDate,
		priority:      priority,
		remarks:       remarks,
		totalOverride: totalOverride,
		status:        status,
		billingStatus: billingStatus,
		lineItems:     lineItems,
		isConstructed: true,
	}, nil
}

// Validate ensures the Invoice instance was properly constructed.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

// IsEqual compares two invoices by their unique identifiers.
func (i *Invoice) IsEqual(other *Invoice) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the invoice's surrogate identifier.
func (i *Invoice) ID() kernel.UUID { return i.id }

// InvoiceNo returns the business invoice number.
func (i *Invoice) InvoiceNo() string { return i.invoiceNo }

// CreatedAt returns the import timestamp.
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }

// InvoiceDate returns the billing invoice date.
func (i *Invoice) InvoiceDate() time.Time { return i.invoiceDate }

// Priority returns the picking priority.
func (i *Invoice) Priority() Priority { return i.priority }

// Remarks returns the free-text remarks.
func (i *Invoice) Remarks() string { return i.remarks }

// TotalOverride returns the manually overridden total, or nil when the total
// is derived from the line items.
func (i *Invoice) TotalOverride() *decimal.Decimal { return i.totalOverride }

// Status returns the current fulfillment status.
func (i *Invoice) Status() Status { return i.status }

// BillingStatus returns the current billing status.
func (i *Invoice) BillingStatus() BillingStatus { return i.billingStatus }

// LineItems returns a copy of the invoice's line items.
func (i *Invoice) LineItems() []LineItem {
	return append([]LineItem(nil), i.lineItems...)
}

// Total returns the overridden total when set, otherwise the sum of the
// line item totals.
func (i *Invoice) Total() decimal.Decimal {
	if i.totalOverride != nil {
		return *i.totalOverride
	}
	total := decimal.Zero
	for _, li := range i.lineItems {
		total = total.Add(li.Total())
	}
	return total
}

// OverrideTotal sets a manual total on the invoice.
func (i *Invoice) OverrideTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("invoice total", errors.New("total must not be negative"))
	}
	i.totalOverride = &total
	return nil
}

// PendingTransitions returns the status transitions applied to the aggregate
// since it was constructed or loaded. The repository appends them to the
// status log in the same transaction as the invoice row.
func (i *Invoice) PendingTransitions() []StatusTransition {
	return append([]StatusTransition(nil), i.pendingTransitions...)
}

// ClaimStage flips the invoice into the in-progress status of a worker
// stage (Invoiced -> Picking, Picked -> Packing).
// Returns ErrInvalidStateForStage when the current status does not satisfy
// the stage's precondition.
func (i *Invoice) ClaimStage(stage kernel.Stage, actorID kernel.UUID) error {
	newStatus, err := i.status.Claim(stage)
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, i.billingStatus, &actorID)
}

// CompleteStage flips the invoice into the completed status of a worker
// stage (Picking -> Picked, Packing -> Packed).
func (i *Invoice) CompleteStage(stage kernel.Stage, actorID kernel.UUID) error {
	newStatus, err := i.status.Complete(stage)
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, i.billingStatus, &actorID)
}

// EnsureDispatchable verifies the invoice may enter a delivery protocol
// without changing its status. Courier and internal dispatch keep the
// invoice Packed until delivery is confirmed.
func (i *Invoice) EnsureDispatchable() error {
	if !i.status.IsDispatchable() {
		return fmt.Errorf("%w: dispatching requires status %s, current status is %s",
			ErrInvalidStateForStage, StatusPacked, i.status)
	}
	return nil
}

// MarkDispatched moves a packed invoice to Dispatched. Accepted as an
// external input only; the delivery dispatcher does not call it.
func (i *Invoice) MarkDispatched(actorID kernel.UUID) error {
	newStatus, err := i.status.Dispatch()
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, i.billingStatus, &actorID)
}

// MarkDelivered moves the invoice to its terminal Delivered status.
func (i *Invoice) MarkDelivered(actorID kernel.UUID) error {
	newStatus, err := i.status.Deliver()
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, i.billingStatus, &actorID)
}

// ReturnToBilling reverts the invoice to Review on both the fulfillment and
// billing side. Session cancellation and the Return record are handled by
// the return handler; the aggregate only owns the status flip.
func (i *Invoice) ReturnToBilling(actorID kernel.UUID) error {
	newStatus, err := i.status.Return()
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, BillingReview, &actorID)
}

// MarkReInvoiced records that billing has issued the corrected invoice.
// Part of the billing import contract; valid only while under review.
func (i *Invoice) MarkReInvoiced() error {
	if i.billingStatus != BillingReview {
		return fmt.Errorf("%w: billing status is %s", ErrNotResubmittable, i.billingStatus)
	}
	return i.applyStatus(i.status, BillingReInvoiced, nil)
}

// Resubmit re-enters a corrected invoice into fulfillment.
// Requires status Review and billing status ReInvoiced; the invoice starts
// over from Invoiced and runs the full pick, pack and deliver sequence again.
func (i *Invoice) Resubmit() error {
	if i.billingStatus != BillingReInvoiced {
		return fmt.Errorf("%w: billing status is %s", ErrNotResubmittable, i.billingStatus)
	}
	newStatus, err := i.status.Resubmit()
	if err != nil {
		return err
	}
	return i.applyStatus(newStatus, BillingReInvoiced, nil)
}

// applyStatus flips the status pair after checking the combination is legal,
// and appends the transition to the pending log.
func (i *Invoice) applyStatus(status Status, billing BillingStatus, actorID *kernel.UUID) error {
	if !ValidStatusPair(status, billing) {
		return fmt.Errorf("%w: status %s with billing status %s", ErrStatusPairConflict, status, billing)
	}
	if i.status != status {
		i.recordTransition(i.status, status, actorID)
	}
	i.status = status
	i.billingStatus = billing
	return nil
}

func (i *Invoice) recordTransition(from, to Status, actorID *kernel.UUID) {
	i.pendingTransitions = append(i.pendingTransitions, StatusTransition{
		invoiceID: i.id,
		from:      from,
		to:        to,
		actorID:   actorID,
		at:        time.Now().UTC(),
	})
}
