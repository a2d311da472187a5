package session

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// State represents the lifecycle state of a stage session.
//
// State transitions:
//
//	Active ──┬──> Completed
//	         └──> Cancelled
//
// Completed and Cancelled are final; a session is never reopened. Cancelled
// sessions are kept as audit records of returns to billing.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	StateUnknown State = iota

	// StateActive is the initial state of a claimed session.
	StateActive

	// StateCompleted indicates the stage was finished by the worker who
	// claimed it.
	StateCompleted

	// StateCancelled indicates the session was cancelled because the invoice
	// was returned to billing.
	StateCancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:   "Unknown",
		StateActive:    "Active",
		StateCompleted: "Completed",
		StateCancelled: "Cancelled",
	}
}

// Validate checks if the State value is valid.
func (s State) Validate() error {
	switch s {
	case StateActive, StateCompleted, StateCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("session state", fmt.Errorf("%d is not a valid state", s))
	}
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
