package invoice

import (
	"fmt"
)

// BillingStatus tracks the billing-side correction workflow of an invoice,
// decoupled from the fulfillment Status. An invoice is Billed while the
// warehouse works it; a return to billing moves it to BillingReview; the
// billing import marks it ReInvoiced when the corrected invoice is ready to
// be resubmitted.
type BillingStatus int

const (
	// BillingUnknown represents an invalid or undefined billing status.
	BillingUnknown BillingStatus = iota

	// BillingBilled is the normal billing state of an invoice in fulfillment.
	BillingBilled

	// BillingReview indicates the billing side is correcting the invoice
	// after a return from fulfillment.
	BillingReview

	// BillingReInvoiced indicates billing has issued the corrected invoice
	// and it may be resubmitted to fulfillment.
	BillingReInvoiced
)

func getBillingStatusStrings() map[BillingStatus]string {
	return map[BillingStatus]string{
		BillingUnknown:    "Unknown",
		BillingBilled:     "Billed",
		BillingReview:     "Review",
		BillingReInvoiced: "ReInvoiced",
	}
}

// Validate checks if the BillingStatus value is valid.
func (b BillingStatus) Validate() error {
	switch b {
	case BillingBilled, BillingReview, BillingReInvoiced:
		return nil
	default:
		return fmt.Errorf("%w: %d is not a valid billing status", ErrInvalidStateForStage, b)
	}
}

// String returns the human-readable name of the billing status.
func (b BillingStatus) String() string {
	if str, ok := getBillingStatusStrings()[b]; ok {
		return str
	}
	return "Unknown"
}

// ValidStatusPair reports whether a fulfillment status and a billing status
// may coexist on one invoice. The combinations were implicit in the legacy
// workflow; they are enforced centrally here so callers cannot drift:
//
//   - Review fulfillment status requires the billing side to be correcting
//     (Review) or done correcting (ReInvoiced).
//   - Every other fulfillment status requires a billed invoice: Billed, or
//     ReInvoiced for invoices that re-entered fulfillment after correction.
func ValidStatusPair(s Status, b BillingStatus) bool {
	if s == StatusReview {
		return b == BillingReview || b == BillingReInvoiced
	}
	return b == BillingBilled || b == BillingReInvoiced
}
