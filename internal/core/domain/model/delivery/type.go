package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type selects one of the three mutually exclusive delivery protocols.
// It is set once at session creation and never changes.
type Type int

const (
	// TypeUnknown represents an invalid or undefined delivery type.
	TypeUnknown Type = iota

	// TypeDirect is a counter pickup in the physical presence of the
	// customer. Direct deliveries complete synchronously with creation.
	TypeDirect

	// TypeCourier hands the parcel to an external courier. Completion is
	// asynchronous and requires an uploaded proof-of-delivery slip.
	TypeCourier

	// TypeInternal assigns the parcel to a staff member for delivery.
	// Completion is asynchronous and requires the assigned staff member's
	// attestation.
	TypeInternal
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "Unknown",
		TypeDirect:   "Direct",
		TypeCourier:  "Courier",
		TypeInternal: "Internal",
	}
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	switch t {
	case TypeDirect, TypeCourier, TypeInternal:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%d is not a valid delivery type", t))
	}
}

// String returns the human-readable name of the delivery type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// SubMode refines a direct delivery: a patient picking up their own order,
// or a company representative collecting on a company account.
type SubMode int

const (
	// SubModeNone applies to courier and internal deliveries.
	SubModeNone SubMode = iota

	// SubModePatient is a pickup by the patient themselves.
	SubModePatient

	// SubModeCompany is a pickup by a company representative and
	// additionally requires the company identity.
	SubModeCompany
)

func getSubModeStrings() map[SubMode]string {
	return map[SubMode]string{
		SubModeNone:    "None",
		SubModePatient: "Patient",
		SubModeCompany: "Company",
	}
}

// Validate checks if the SubMode is a valid direct-delivery sub-mode.
func (m SubMode) Validate() error {
	switch m {
	case SubModePatient, SubModeCompany:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery sub-mode", fmt.Errorf("%d is not a valid sub-mode", m))
	}
}

// String returns the human-readable name of the sub-mode.
func (m SubMode) String() string {
	if str, ok := getSubModeStrings()[m]; ok {
		return str
	}
	return "None"
}
