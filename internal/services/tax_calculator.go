package services

import (
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// LineTax holds the computed amounts for a single invoice line. All values
// are exact decimals; rounding happens only at presentation boundaries.
type LineTax struct {
	TaxableAmount decimal.Decimal
	CGSTAmount    decimal.Decimal
	SGSTAmount    decimal.Decimal
	IGSTAmount    decimal.Decimal
	LineTotal     decimal.Decimal
}

// IsInterstate reports whether a supply crosses state lines. GST splits
// into CGST+SGST within a state and becomes IGST across states.
func IsInterstate(sellerStateCode, buyerStateCode string) bool {
	return sellerStateCode != buyerStateCode
}

// ComputeLineTax applies the GST rate to quantity * rate. Intrastate
// supplies split the tax evenly between CGST and SGST; interstate supplies
// levy the full rate as IGST. Exactly one of the two legs is non-zero.
func ComputeLineTax(quantity, rate, gstRate decimal.Decimal, interstate bool) LineTax {
	taxable := quantity.Mul(rate)
	tax := taxable.Mul(gstRate).Div(hundred)

	line := LineTax{TaxableAmount: taxable}
	if interstate {
		line.IGSTAmount = tax
	} else {
		half := tax.Div(two)
		line.CGSTAmount = half
		line.SGSTAmount = half
	}
	line.LineTotal = taxable.Add(line.CGSTAmount).Add(line.SGSTAmount).Add(line.IGSTAmount)
	return line
}

// InvoiceTotals sums line amounts into header totals.
type InvoiceTotals struct {
	TaxableTotal decimal.Decimal
	CGSTTotal    decimal.Decimal
	SGSTTotal    decimal.Decimal
	IGSTTotal    decimal.Decimal
	GrandTotal   decimal.Decimal
}

func SumLines(lines []LineTax) InvoiceTotals {
	totals := InvoiceTotals{
		TaxableTotal: decimal.Zero,
		CGSTTotal:    decimal.Zero,
		SGSTTotal:    decimal.Zero,
		IGSTTotal:    decimal.Zero,
		GrandTotal:   decimal.Zero,
	}
	for _, line := range lines {
		totals.TaxableTotal = totals.TaxableTotal.Add(line.TaxableAmount)
		totals.CGSTTotal = totals.CGSTTotal.Add(line.CGSTAmount)
		totals.SGSTTotal = totals.SGSTTotal.Add(line.SGSTAmount)
		totals.IGSTTotal = totals.IGSTTotal.Add(line.IGSTAmount)
		totals.GrandTotal = totals.GrandTotal.Add(line.LineTotal)
	}
	return totals
}
