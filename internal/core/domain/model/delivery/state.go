package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// State represents the lifecycle state of a delivery session.
//
// State transitions:
//
//	ToConsider ──┬──> Delivered
//	             └──> Cancelled
//
// Direct deliveries are created in Delivered; courier and internal
// deliveries start in ToConsider (the consider list) and jump straight to
// Delivered once the slip is uploaded or the staff member confirms. There is
// no in-transit sub-state.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	StateUnknown State = iota

	// StateToConsider is the pending state of an asynchronous delivery
	// awaiting independent confirmation.
	StateToConsider

	// StateDelivered is the final state of a confirmed delivery.
	StateDelivered

	// StateCancelled indicates the session was cancelled because the invoice
	// was returned to billing before delivery completed.
	StateCancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:    "Unknown",
		StateToConsider: "ToConsider",
		StateDelivered:  "Delivered",
		StateCancelled:  "Cancelled",
	}
}

// Validate checks if the State value is valid.
func (s State) Validate() error {
	switch s {
	case StateToConsider, StateDelivered, StateCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery state", fmt.Errorf("%d is not a valid state", s))
	}
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
