package invoice

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Priority orders invoices in the pickers' work queue.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityMedium
	PriorityHigh
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityLow:     "Low",
		PriorityMedium:  "Medium",
		PriorityHigh:    "High",
	}
}

// PriorityFromString parses a priority from its string representation.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getPriorityStrings() {
		if p != PriorityUnknown && str == s {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
}

// String returns the human-readable name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
