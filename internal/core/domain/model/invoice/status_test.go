package invoice_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Claim(t *testing.T) {
	t.Run("should enter the in-progress status from the stage precondition", func(t *testing.T) {
		testCases := []struct {
			name     string
			from     invoice.Status
			stage    kernel.Stage
			expected invoice.Status
		}{
			{"invoiced to picking", invoice.StatusInvoiced, kernel.StagePicking, invoice.StatusPicking},
			{"picked to packing", invoice.StatusPicked, kernel.StagePacking, invoice.StatusPacking},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := tc.from.Claim(tc.stage)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			})
		}
	})

	t.Run("should reject claiming from any other status", func(t *testing.T) {
		testCases := []struct {
			name  string
			from  invoice.Status
			stage kernel.Stage
		}{
			{"picking while already picking", invoice.StatusPicking, kernel.StagePicking},
			{"packing before picking completed", invoice.StatusInvoiced, kernel.StagePacking},
			{"picking after picking completed", invoice.StatusPicked, kernel.StagePicking},
			{"packing on a packed invoice", invoice.StatusPacked, kernel.StagePacking},
			{"picking on a delivered invoice", invoice.StatusDelivered, kernel.StagePicking},
			{"picking on a returned invoice", invoice.StatusReview, kernel.StagePicking},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := tc.from.Claim(tc.stage)

				require.Error(t, err)
				require.ErrorIs(t, err, invoice.ErrInvalidStateForStage)
				assert.Equal(t, invoice.StatusUnknown, got)
			})
		}
	})

	t.Run("should reject delivery as a claimable stage", func(t *testing.T) {
		_, err := invoice.StatusPacked.Claim(kernel.StageDelivery)

		require.ErrorIs(t, err, invoice.ErrInvalidStateForStage)
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should enter the completed status from the in-progress status", func(t *testing.T) {
		got, err := invoice.StatusPicking.Complete(kernel.StagePicking)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPicked, got)

		got, err = invoice.StatusPacking.Complete(kernel.StagePacking)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPacked, got)
	})

	t.Run("should reject completing a stage that is not in progress", func(t *testing.T) {
		testCases := []struct {
			name  string
			from  invoice.Status
			stage kernel.Stage
		}{
			{"picking before claiming", invoice.StatusInvoiced, kernel.StagePicking},
			{"packing while picking", invoice.StatusPicking, kernel.StagePacking},
			{"picking after completion", invoice.StatusPicked, kernel.StagePicking},
			{"packing after completion", invoice.StatusPacked, kernel.StagePacking},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.from.Complete(tc.stage)

				require.ErrorIs(t, err, invoice.ErrInvalidStateForStage)
			})
		}
	})
}

func TestStatus_Dispatch(t *testing.T) {
	t.Run("should move packed to dispatched", func(t *testing.T) {
		got, err := invoice.StatusPacked.Dispatch()

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDispatched, got)
	})

	t.Run("should reject dispatching from any other status", func(t *testing.T) {
		for _, from := range []invoice.Status{
			invoice.StatusInvoiced, invoice.StatusPicking, invoice.StatusPicked,
			invoice.StatusPacking, invoice.StatusDispatched, invoice.StatusDelivered,
			invoice.StatusReview,
		} {
			_, err := from.Dispatch()

			require.ErrorIs(t, err, invoice.ErrInvalidStateForStage, from.String())
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("should move packed straight to delivered", func(t *testing.T) {
		got, err := invoice.StatusPacked.Deliver()

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDelivered, got)
	})

	t.Run("should move dispatched to delivered", func(t *testing.T) {
		got, err := invoice.StatusDispatched.Deliver()

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusDelivered, got)
	})

	t.Run("should reject delivering from any other status", func(t *testing.T) {
		for _, from := range []invoice.Status{
			invoice.StatusInvoiced, invoice.StatusPicking, invoice.StatusPicked,
			invoice.StatusPacking, invoice.StatusDelivered, invoice.StatusReview,
		} {
			_, err := from.Deliver()

			require.ErrorIs(t, err, invoice.ErrInvalidStateForStage, from.String())
		}
	})
}

func TestStatus_Return(t *testing.T) {
	t.Run("should move every in-progress status to review", func(t *testing.T) {
		for _, from := range []invoice.Status{
			invoice.StatusPicking, invoice.StatusPicked, invoice.StatusPacking,
			invoice.StatusPacked, invoice.StatusDispatched,
		} {
			got, err := from.Return()

			require.NoError(t, err, from.String())
			assert.Equal(t, invoice.StatusReview, got)
		}
	})

	t.Run("should reject a second return while under review", func(t *testing.T) {
		_, err := invoice.StatusReview.Return()

		require.ErrorIs(t, err, invoice.ErrAlreadyReturned)
	})

	t.Run("should reject returning unclaimed and delivered invoices", func(t *testing.T) {
		for _, from := range []invoice.Status{invoice.StatusInvoiced, invoice.StatusDelivered} {
			_, err := from.Return()

			require.ErrorIs(t, err, invoice.ErrInvalidReturnState, from.String())
		}
	})
}

func TestStatus_Resubmit(t *testing.T) {
	t.Run("should move review back to invoiced", func(t *testing.T) {
		got, err := invoice.StatusReview.Resubmit()

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusInvoiced, got)
	})

	t.Run("should reject resubmitting from any other status", func(t *testing.T) {
		for _, from := range []invoice.Status{
			invoice.StatusInvoiced, invoice.StatusPicking, invoice.StatusPacked,
			invoice.StatusDispatched, invoice.StatusDelivered,
		} {
			_, err := from.Resubmit()

			require.ErrorIs(t, err, invoice.ErrNotResubmittable, from.String())
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all valid status names", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected invoice.Status
		}{
			{"Invoiced", invoice.StatusInvoiced},
			{"Picking", invoice.StatusPicking},
			{"Picked", invoice.StatusPicked},
			{"Packing", invoice.StatusPacking},
			{"Packed", invoice.StatusPacked},
			{"Dispatched", invoice.StatusDispatched},
			{"Delivered", invoice.StatusDelivered},
			{"Review", invoice.StatusReview},
		}

		for _, tc := range testCases {
			got, err := invoice.StatusFromString(tc.input)

			require.NoError(t, err, tc.input)
			assert.Equal(t, tc.expected, got)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, input := range []string{"", "Unknown", "invoiced", "Shipped"} {
			got, err := invoice.StatusFromString(input)

			require.Error(t, err, input)
			assert.Equal(t, invoice.StatusUnknown, got)
		}
	})
}

func TestValidStatusPair(t *testing.T) {
	t.Run("review requires a correcting billing side", func(t *testing.T) {
		assert.True(t, invoice.ValidStatusPair(invoice.StatusReview, invoice.BillingReview))
		assert.True(t, invoice.ValidStatusPair(invoice.StatusReview, invoice.BillingReInvoiced))
		assert.False(t, invoice.ValidStatusPair(invoice.StatusReview, invoice.BillingBilled))
	})

	t.Run("fulfillment statuses require a billed invoice", func(t *testing.T) {
		for _, s := range []invoice.Status{
			invoice.StatusInvoiced, invoice.StatusPicking, invoice.StatusPicked,
			invoice.StatusPacking, invoice.StatusPacked, invoice.StatusDispatched,
			invoice.StatusDelivered,
		} {
			assert.True(t, invoice.ValidStatusPair(s, invoice.BillingBilled), s.String())
			assert.True(t, invoice.ValidStatusPair(s, invoice.BillingReInvoiced), s.String())
			assert.False(t, invoice.ValidStatusPair(s, invoice.BillingReview), s.String())
		}
	})
}
