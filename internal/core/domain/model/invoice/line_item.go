package invoice

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// LineItem is a value object describing one product line of an invoice.
// Line items are immutable after picking begins; the aggregate exposes them
// as copies only.
type LineItem struct {
	name          string
	code          string
	quantity      int
	unitPrice     decimal.Decimal
	batchNo       string
	expiry        time.Time
	shelfLocation string
}

// NewLineItem creates a validated line item.
// Name, code and batch number are required; quantity must be positive and
// the unit price must not be negative.
func NewLineItem(
	name string,
	code string,
	quantity int,
	unitPrice decimal.Decimal,
	batchNo string,
	expiry time.Time,
	shelfLocation string,
) (LineItem, error) {
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item name")
	}
	if code == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item code")
	}
	if batchNo == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item batch number")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("line item unit price",
			errors.New("unit price must not be negative"))
	}

	return LineItem{
		name:          name,
		code:          code,
		quantity:      quantity,
		unitPrice:     unitPrice,
		batchNo:       batchNo,
		expiry:        expiry,
		shelfLocation: shelfLocation,
	}, nil
}

// Name returns the product name.
func (li LineItem) Name() string { return li.name }

// Code returns the product code.
func (li LineItem) Code() string { return li.code }

// Quantity returns the ordered quantity.
func (li LineItem) Quantity() int { return li.quantity }

// UnitPrice returns the price per unit.
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }

// BatchNo returns the pharmaceutical batch number.
func (li LineItem) BatchNo() string { return li.batchNo }

// Expiry returns the batch expiry date.
func (li LineItem) Expiry() time.Time { return li.expiry }

// ShelfLocation returns the warehouse shelf location of the item.
func (li LineItem) ShelfLocation() string { return li.shelfLocation }

// Total returns quantity times unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}
