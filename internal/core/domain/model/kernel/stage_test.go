package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageFromString(t *testing.T) {
	t.Run("should parse valid stage names", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected kernel.Stage
		}{
			{"Picking", kernel.StagePicking},
			{"Packing", kernel.StagePacking},
			{"Delivery", kernel.StageDelivery},
		}

		for _, tc := range testCases {
			stage, err := kernel.StageFromString(tc.input)

			require.NoError(t, err, tc.input)
			assert.Equal(t, tc.expected, stage)
		}
	})

	t.Run("should reject unknown stage names", func(t *testing.T) {
		testCases := []string{"", "Unknown", "picking", "PICKING", "Shipping"}

		for _, input := range testCases {
			stage, err := kernel.StageFromString(input)

			require.Error(t, err, input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, kernel.StageUnknown, stage)
		}
	})
}

func TestStage_Validate(t *testing.T) {
	t.Run("should accept the defined stages", func(t *testing.T) {
		for _, stage := range []kernel.Stage{kernel.StagePicking, kernel.StagePacking, kernel.StageDelivery} {
			assert.NoError(t, stage.Validate(), stage.String())
		}
	})

	t.Run("should reject unknown and out-of-range values", func(t *testing.T) {
		for _, stage := range []kernel.Stage{kernel.StageUnknown, kernel.Stage(42), kernel.Stage(-1)} {
			err := stage.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStage_IsWorkerStage(t *testing.T) {
	assert.True(t, kernel.StagePicking.IsWorkerStage())
	assert.True(t, kernel.StagePacking.IsWorkerStage())
	assert.False(t, kernel.StageDelivery.IsWorkerStage())
	assert.False(t, kernel.StageUnknown.IsWorkerStage())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "Picking", kernel.StagePicking.String())
	assert.Equal(t, "Packing", kernel.StagePacking.String())
	assert.Equal(t, "Delivery", kernel.StageDelivery.String())
	assert.Equal(t, "Unknown", kernel.StageUnknown.String())
	assert.Equal(t, "Unknown", kernel.Stage(99).String())
}
