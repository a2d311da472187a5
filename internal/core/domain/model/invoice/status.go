package invoice

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidStateForStage is returned when a stage operation is attempted
	// on an invoice whose current status does not satisfy the stage's
	// precondition, e.g. claiming packing on an invoice that is not picked.
	// The wrapping error always names the current status so callers can
	// reconcile their view of the invoice.
	ErrInvalidStateForStage = errors.New("invoice status does not allow this stage operation")

	// ErrInvalidReturnState is returned when a return-to-billing is raised on
	// an invoice that is not in a returnable status (e.g. already delivered
	// or not yet claimed).
	ErrInvalidReturnState = errors.New("invoice status does not allow return to billing")

	// ErrAlreadyReturned is returned when a return-to-billing is raised on an
	// invoice that is already under review and has not been resubmitted.
	ErrAlreadyReturned = errors.New("invoice is already returned for review")

	// ErrNotResubmittable is returned when a resubmission is attempted on an
	// invoice that is not under review or whose billing side has not been
	// re-invoiced yet.
	ErrNotResubmittable = errors.New("invoice is not eligible for resubmission")
)

// Status represents the fulfillment lifecycle state of an invoice.
// It implements a state machine with defined transitions to ensure invoices
// follow the warehouse workflow.
//
// State transitions:
//
//	Invoiced ──> Picking ──> Picked ──> Packing ──> Packed ──┬──> Dispatched ──> Delivered
//	                │           │          │          │      │         │
//	                │           │          │          ├──────┼─────────┘──> Delivered
//	                └───────────┴──────────┴──────────┴──────┴──> Review ──> Invoiced
//
// Direct counter delivery completes synchronously, which is why Packed may
// jump straight to Delivered. A return to billing moves any in-progress
// status to Review; billing correction resubmits the invoice back to
// Invoiced.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusInvoiced is the initial status of an imported invoice.
	// Invoices in this status are waiting to be claimed by a picker.
	StatusInvoiced

	// StatusPicking indicates a picker has claimed the invoice and is
	// collecting its line items.
	StatusPicking

	// StatusPicked indicates picking is complete and the invoice is waiting
	// to be claimed by a packer.
	StatusPicked

	// StatusPacking indicates a packer has claimed the invoice.
	StatusPacking

	// StatusPacked indicates packing is complete and the invoice is eligible
	// for delivery dispatch.
	StatusPacked

	// StatusDispatched indicates the invoice has physically left the
	// warehouse but delivery is not yet confirmed. The dispatcher itself
	// keeps courier and internal deliveries in Packed until proof arrives;
	// Dispatched is accepted as an external input and remains returnable.
	StatusDispatched

	// StatusDelivered indicates delivery is confirmed. This is a final state
	// with no further transitions.
	StatusDelivered

	// StatusReview indicates the invoice was returned to billing because of
	// a fulfillment problem and awaits correction.
	StatusReview
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusInvoiced:   "Invoiced",
		StatusPicking:    "Picking",
		StatusPicked:     "Picked",
		StatusPacking:    "Packing",
		StatusPacked:     "Packed",
		StatusDispatched: "Dispatched",
		StatusDelivered:  "Delivered",
		StatusReview:     "Review",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusInvoiced:   "Invoiced",
		StatusPicking:    "Picking",
		StatusPicked:     "Picked",
		StatusPacking:    "Packing",
		StatusPacked:     "Packed",
		StatusDispatched: "Dispatched",
		StatusDelivered:  "Delivered",
		StatusReview:     "Review",
	}
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidStateForStage, s)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
// Returns StatusUnknown and an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q is not a valid status", ErrInvalidStateForStage, s)
}

// claimPrecondition returns the status an invoice must hold before the given
// worker stage may be claimed.
func claimPrecondition(stage kernel.Stage) (Status, error) {
	switch stage {
	case kernel.StagePicking:
		return StatusInvoiced, nil
	case kernel.StagePacking:
		return StatusPicked, nil
	default:
		return StatusUnknown, fmt.Errorf("%w: %s is not a claimable stage", ErrInvalidStateForStage, stage)
	}
}

// stageStatuses returns the in-progress and completed statuses of a worker
// stage.
func stageStatuses(stage kernel.Stage) (inProgress, completed Status, err error) {
	switch stage {
	case kernel.StagePicking:
		return StatusPicking, StatusPicked, nil
	case kernel.StagePacking:
		return StatusPacking, StatusPacked, nil
	default:
		return StatusUnknown, StatusUnknown, fmt.Errorf("%w: %s is not a worker stage", ErrInvalidStateForStage, stage)
	}
}

// Claim transitions the status to the in-progress value of the given stage.
//
// Valid transitions:
//   - Invoiced -> Picking
//   - Picked   -> Packing
//
// Returns ErrInvalidStateForStage (naming the current status) for any other
// starting point.
func (s Status) Claim(stage kernel.Stage) (Status, error) {
	required, err := claimPrecondition(stage)
	if err != nil {
		return StatusUnknown, err
	}
	if s != required {
		return StatusUnknown, fmt.Errorf("%w: claiming %s requires status %s, current status is %s",
			ErrInvalidStateForStage, stage, required, s)
	}

	inProgress, _, err := stageStatuses(stage)
	if err != nil {
		return StatusUnknown, err
	}
	return inProgress, nil
}

// Complete transitions the status to the completed value of the given stage.
//
// Valid transitions:
//   - Picking -> Picked
//   - Packing -> Packed
//
// Returns ErrInvalidStateForStage for any other starting point.
func (s Status) Complete(stage kernel.Stage) (Status, error) {
	inProgress, completed, err := stageStatuses(stage)
	if err != nil {
		return StatusUnknown, err
	}
	if s != inProgress {
		return StatusUnknown, fmt.Errorf("%w: completing %s requires status %s, current status is %s",
			ErrInvalidStateForStage, stage, inProgress, s)
	}
	return completed, nil
}

// IsDispatchable reports whether the invoice may enter a delivery protocol.
// Only packed invoices are dispatchable.
func (s Status) IsDispatchable() bool {
	return s == StatusPacked
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Packed -> Dispatched
//
// The delivery dispatcher itself does not use this transition for courier and
// internal deliveries (those stay Packed until confirmed), but the status is
// a legal external input and must remain reachable.
func (s Status) Dispatch() (Status, error) {
	if s != StatusPacked {
		return StatusUnknown, fmt.Errorf("%w: dispatching requires status %s, current status is %s",
			ErrInvalidStateForStage, StatusPacked, s)
	}
	return StatusDispatched, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Packed     -> Delivered (direct counter delivery, confirmed courier/internal delivery)
//   - Dispatched -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != StatusPacked && s != StatusDispatched {
		return StatusUnknown, fmt.Errorf("%w: delivering requires status %s or %s, current status is %s",
			ErrInvalidStateForStage, StatusPacked, StatusDispatched, s)
	}
	return StatusDelivered, nil
}

// Return transitions the status to Review.
//
// Valid transitions:
//   - Picking, Picked, Packing, Packed, Dispatched -> Review
//
// Returns ErrAlreadyReturned when the invoice is already under review, and
// ErrInvalidReturnState for invoiced or delivered invoices.
func (s Status) Return() (Status, error) {
	switch s {
	case StatusPicking, StatusPicked, StatusPacking, StatusPacked, StatusDispatched:
		return StatusReview, nil
	case StatusReview:
		return StatusUnknown, fmt.Errorf("%w: current status is %s", ErrAlreadyReturned, s)
	default:
		return StatusUnknown, fmt.Errorf("%w: current status is %s", ErrInvalidReturnState, s)
	}
}

// Resubmit transitions the status back to Invoiced after billing correction.
//
// Valid transitions:
//   - Review -> Invoiced
func (s Status) Resubmit() (Status, error) {
	if s != StatusReview {
		return StatusUnknown, fmt.Errorf("%w: current status is %s", ErrNotResubmittable, s)
	}
	return StatusInvoiced, nil
}
