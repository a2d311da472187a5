package invoice_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/invoice"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	expiry := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("should create a validated line item", func(t *testing.T) {
		li, err := invoice.NewLineItem(
			"Paracetamol 500mg", "PARA-500", 20, decimal.NewFromFloat(1.50),
			"B-2026-001", expiry, "A-01-03")

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol 500mg", li.Name())
		assert.Equal(t, "PARA-500", li.Code())
		assert.Equal(t, 20, li.Quantity())
		assert.Equal(t, "B-2026-001", li.BatchNo())
		assert.Equal(t, "A-01-03", li.ShelfLocation())
		assert.True(t, decimal.NewFromFloat(30.00).Equal(li.Total()))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		testCases := []struct {
			name      string
			itemName  string
			code      string
			quantity  int
			unitPrice decimal.Decimal
			batchNo   string
		}{
			{"empty name", "", "PARA-500", 20, decimal.NewFromFloat(1.50), "B-2026-001"},
			{"empty code", "Paracetamol 500mg", "", 20, decimal.NewFromFloat(1.50), "B-2026-001"},
			{"empty batch number", "Paracetamol 500mg", "PARA-500", 20, decimal.NewFromFloat(1.50), ""},
			{"zero quantity", "Paracetamol 500mg", "PARA-500", 0, decimal.NewFromFloat(1.50), "B-2026-001"},
			{"negative quantity", "Paracetamol 500mg", "PARA-500", -3, decimal.NewFromFloat(1.50), "B-2026-001"},
			{"negative unit price", "Paracetamol 500mg", "PARA-500", 20, decimal.NewFromFloat(-0.01), "B-2026-001"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				li, err := invoice.NewLineItem(
					tc.itemName, tc.code, tc.quantity, tc.unitPrice, tc.batchNo, expiry, "A-01-03")

				require.Error(t, err)
				assert.Zero(t, li)
			})
		}
	})

	t.Run("zero unit price is allowed for free goods", func(t *testing.T) {
		li, err := invoice.NewLineItem(
			"Sample sachet", "SAMP-01", 2, decimal.Zero, "B-2026-099", expiry, "C-05-01")

		require.NoError(t, err)
		assert.True(t, decimal.Zero.Equal(li.Total()))
	})
}
