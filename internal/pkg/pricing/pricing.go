package pricing

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Line is one pricing input tuple.
type Line struct {
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
}

// Result carries per-line and order-level totals, all rounded to 2 decimal
// places.
type Result struct {
	// LineTotals holds each line's net amount after discount, index-aligned
	// with the input.
	LineTotals []decimal.Decimal
	NetTotal   decimal.Decimal
	GrossTotal decimal.Decimal
}

// LineNet returns quantity x unit price rounded to 2 decimal places.
func LineNet(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// LineNetAfterDiscount applies the discount percentage to the rounded line net
// and rounds again.
func LineNetAfterDiscount(unitPrice decimal.Decimal, quantity int, discountPercent decimal.Decimal) decimal.Decimal {
	factor := one.Sub(discountPercent.Div(hundred))
	return LineNet(unitPrice, quantity).Mul(factor).Round(2)
}

// Calculate derives order totals from the given lines and a single flat tax
// rate. Each line amount is rounded before summation; tax is applied to the
// summed net total, not per line, and the gross total is rounded last.
func Calculate(lines []Line, taxRate decimal.Decimal) (*Result, error) {
	if taxRate.IsNegative() {
		return nil, domainErrors.ErrInvalidTaxRate
	}

	result := &Result{
		LineTotals: make([]decimal.Decimal, 0, len(lines)),
		NetTotal:   decimal.Zero,
	}

	for _, line := range lines {
		if line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domainErrors.ErrInvalidLineItem
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
			return nil, domainErrors.ErrInvalidDiscount
		}

		total := LineNetAfterDiscount(line.UnitPrice, line.Quantity, line.DiscountPercent)
		result.LineTotals = append(result.LineTotals, total)
		result.NetTotal = result.NetTotal.Add(total)
	}

	result.NetTotal = result.NetTotal.Round(2)
	result.GrossTotal = result.NetTotal.Mul(one.Add(taxRate.Div(hundred))).Round(2)
	return result, nil
}
