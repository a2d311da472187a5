package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Stage identifies a discrete fulfillment phase of an invoice.
// Each stage owns its own session type: a worker claims an invoice for a
// stage, works it, and completes it. Stage is shared by the invoice status
// machine, the session ledger and the capability checker.
//
// Stage is a value object that validates itself and provides string
// representations for persistence and display.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// StagePicking is the phase in which a picker collects the invoice's
	// line items from their shelf locations.
	StagePicking

	// StagePacking is the phase in which a packer boxes the picked items.
	StagePacking

	// StageDelivery is the phase in which the packed invoice leaves the
	// warehouse through one of the delivery protocols.
	StageDelivery
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown:  "Unknown",
		StagePicking:  "Picking",
		StagePacking:  "Packing",
		StageDelivery: "Delivery",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		StagePicking:  "Picking",
		StagePacking:  "Packing",
		StageDelivery: "Delivery",
	}
}

// StageFromString parses a stage from its string representation.
// The match is exact ("Picking", "Packing", "Delivery").
// Returns an error for any other input.
func StageFromString(s string) (Stage, error) {
	for stage, str := range getValidStageStrings() {
		if str == s {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", s))
}

// Validate checks if the Stage value is valid.
// Valid stages are: Picking, Packing, Delivery.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// IsWorkerStage reports whether the stage is claimed and completed by a
// warehouse worker through the session ledger. Delivery has its own
// protocols and is excluded.
func (s Stage) IsWorkerStage() bool {
	return s == StagePicking || s == StagePacking
}

// String returns the human-readable name of the stage.
// Implements the fmt.Stringer interface and is safe to call on any Stage
// value, including invalid ones.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
