package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestIsInterstate(t *testing.T) {
	assert.False(t, IsInterstate("27", "27"))
	assert.True(t, IsInterstate("27", "29"))
	assert.True(t, IsInterstate("07", "27"))
}

func TestComputeLineTax_Intrastate(t *testing.T) {
	line := ComputeLineTax(d("10"), d("100"), d("18"), false)

	assert.True(t, line.TaxableAmount.Equal(d("1000")), "taxable = %s", line.TaxableAmount)
	assert.True(t, line.CGSTAmount.Equal(d("90")), "cgst = %s", line.CGSTAmount)
	assert.True(t, line.SGSTAmount.Equal(d("90")), "sgst = %s", line.SGSTAmount)
	assert.True(t, line.IGSTAmount.IsZero(), "igst = %s", line.IGSTAmount)
	assert.True(t, line.LineTotal.Equal(d("1180")), "total = %s", line.LineTotal)
}

func TestComputeLineTax_Interstate(t *testing.T) {
	line := ComputeLineTax(d("10"), d("100"), d("18"), true)

	assert.True(t, line.TaxableAmount.Equal(d("1000")))
	assert.True(t, line.CGSTAmount.IsZero())
	assert.True(t, line.SGSTAmount.IsZero())
	assert.True(t, line.IGSTAmount.Equal(d("180")))
	assert.True(t, line.LineTotal.Equal(d("1180")))
}

func TestComputeLineTax_ZeroRated(t *testing.T) {
	line := ComputeLineTax(d("5"), d("40"), d("0"), false)

	assert.True(t, line.TaxableAmount.Equal(d("200")))
	assert.True(t, line.CGSTAmount.IsZero())
	assert.True(t, line.SGSTAmount.IsZero())
	assert.True(t, line.IGSTAmount.IsZero())
	assert.True(t, line.LineTotal.Equal(d("200")))
}

func TestComputeLineTax_SplitIsExactHalf(t *testing.T) {
	rates := []string{"5", "12", "18", "28"}
	for _, rate := range rates {
		line := ComputeLineTax(d("3"), d("99.99"), d(rate), false)
		assert.True(t, line.CGSTAmount.Equal(line.SGSTAmount), "rate %s: cgst %s != sgst %s", rate, line.CGSTAmount, line.SGSTAmount)

		tax := line.LineTotal.Sub(line.TaxableAmount)
		assert.True(t, line.CGSTAmount.Add(line.SGSTAmount).Equal(tax), "rate %s: halves do not sum to tax", rate)
	}
}

func TestComputeLineTax_ExactlyOneLegNonZero(t *testing.T) {
	intra := ComputeLineTax(d("1"), d("500"), d("12"), false)
	assert.False(t, intra.CGSTAmount.IsZero())
	assert.True(t, intra.IGSTAmount.IsZero())

	inter := ComputeLineTax(d("1"), d("500"), d("12"), true)
	assert.True(t, inter.CGSTAmount.IsZero())
	assert.True(t, inter.SGSTAmount.IsZero())
	assert.False(t, inter.IGSTAmount.IsZero())
}

func TestComputeLineTax_FractionalQuantity(t *testing.T) {
	line := ComputeLineTax(d("2.5"), d("33.33"), d("18"), true)

	assert.True(t, line.TaxableAmount.Equal(d("83.325")))
	assert.True(t, line.IGSTAmount.Equal(d("14.9985")))
	assert.True(t, line.LineTotal.Equal(d("98.3235")))
}

func TestSumLines(t *testing.T) {
	lines := []LineTax{
		ComputeLineTax(d("10"), d("100"), d("18"), false),
		ComputeLineTax(d("2"), d("250"), d("5"), false),
	}

	totals := SumLines(lines)
	assert.True(t, totals.TaxableTotal.Equal(d("1500")), "taxable = %s", totals.TaxableTotal)
	assert.True(t, totals.CGSTTotal.Equal(d("102.5")), "cgst = %s", totals.CGSTTotal)
	assert.True(t, totals.SGSTTotal.Equal(d("102.5")), "sgst = %s", totals.SGSTTotal)
	assert.True(t, totals.IGSTTotal.IsZero())
	assert.True(t, totals.GrandTotal.Equal(d("1705")), "grand = %s", totals.GrandTotal)
}

func TestSumLines_Empty(t *testing.T) {
	totals := SumLines(nil)
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.TaxableTotal.IsZero())
}
