package taxmath

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateTaxInclusive(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		rate      string
		wantNet   string
		wantTax   string
		wantTotal string
	}{
		{"standard 5% on 105", "105", "5", "100", "5", "105"},
		{"zero rate identity", "200", "0", "200", "0", "200"},
		{"zero total", "0", "5", "0", "0", "0"},
		{"refund stays linear", "-105", "5", "-100", "-5", "-105"},
		{"rounded tax", "100", "5", "95.24", "4.76", "100"},
		{"items scenario total", "130", "5", "123.81", "6.19", "130"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CalculateTaxInclusive(dec(tt.total), dec(tt.rate))
			assert.True(t, b.TotalAmount.Equal(dec(tt.wantTotal)), "total = %s", b.TotalAmount)
			assert.True(t, b.NetAmount.Equal(dec(tt.wantNet)), "net = %s", b.NetAmount)
			assert.True(t, b.TaxAmount.Equal(dec(tt.wantTax)), "tax = %s", b.TaxAmount)
			assert.True(t, b.TaxRate.Equal(dec(tt.rate)))
		})
	}
}

func TestCalculateTaxInclusive_Decomposition(t *testing.T) {
	// net + tax must reassemble the rounded total exactly
	totals := []string{"105", "99.99", "0.01", "1234567.89", "33.33", "-42.07"}
	rates := []string{"0", "5", "12.5", "20", "100"}

	for _, total := range totals {
		for _, rate := range rates {
			b := CalculateTaxInclusive(dec(total), dec(rate))
			assert.True(t, b.NetAmount.Add(b.TaxAmount).Equal(b.TotalAmount),
				"total=%s rate=%s: %s + %s != %s", total, rate, b.NetAmount, b.TaxAmount, b.TotalAmount)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tolerance := dec("0.01")
	totals := []string{"0", "1", "105", "99.99", "375000", "0.05"}
	rates := []string{"0", "5", "7.5", "50", "100"}

	for _, total := range totals {
		for _, rate := range rates {
			net := CalculateTaxInclusive(dec(total), dec(rate)).NetAmount
			back := CalculateTotalFromNet(net, dec(rate))
			diff := back.Sub(dec(total)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance),
				"total=%s rate=%s: round-trip drift %s", total, rate, diff)
		}
	}
}

func TestCalculateTotalFromNet(t *testing.T) {
	assert.True(t, CalculateTotalFromNet(dec("100"), dec("5")).Equal(dec("105")))
	assert.True(t, CalculateTotalFromNet(dec("100"), dec("0")).Equal(dec("100")))
	assert.True(t, CalculateTotalFromNet(dec("95.24"), dec("5")).Equal(dec("100")))
}

func TestCalculateNetVAT(t *testing.T) {
	v := CalculateNetVAT(dec("1250.505"), dec("430.25"))
	assert.True(t, v.VATCollected.Equal(dec("1250.51")), "collected = %s", v.VATCollected)
	assert.True(t, v.VATPaid.Equal(dec("430.25")))
	assert.True(t, v.NetVATPayable.Equal(dec("820.26")), "payable = %s", v.NetVATPayable)

	// Each field rounds from its own raw value: the payable can land a cent
	// away from the difference of the rounded fields.
	v = CalculateNetVAT(dec("10.004"), dec("5.004"))
	assert.True(t, v.VATCollected.Equal(dec("10.00")))
	assert.True(t, v.VATPaid.Equal(dec("5.00")))
	assert.True(t, v.NetVATPayable.Equal(dec("5.00")))

	v = CalculateNetVAT(dec("10.006"), dec("5.003"))
	assert.True(t, v.VATCollected.Equal(dec("10.01")))
	assert.True(t, v.VATPaid.Equal(dec("5.00")))
	// raw difference 5.003 rounds to 5.00, not 10.01 - 5.00 = 5.01
	assert.True(t, v.NetVATPayable.Equal(dec("5.00")), "payable = %s", v.NetVATPayable)
}

func TestCalculateItemsTax(t *testing.T) {
	items := []LineItem{
		{Price: dec("50"), Quantity: 2},
		{Price: dec("30")}, // zero quantity counts as 1
	}
	b := CalculateItemsTax(items, dec("5"))
	require.True(t, b.TotalAmount.Equal(dec("130")), "total = %s", b.TotalAmount)
	assert.True(t, b.NetAmount.Equal(dec("123.81")), "net = %s", b.NetAmount)
	assert.True(t, b.TaxAmount.Equal(dec("6.19")), "tax = %s", b.TaxAmount)
}

func TestCalculateItemsTax_Empty(t *testing.T) {
	b := CalculateItemsTax(nil, dec("5"))
	assert.True(t, b.TotalAmount.IsZero())
	assert.True(t, b.NetAmount.IsZero())
	assert.True(t, b.TaxAmount.IsZero())
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "AED 123.45", FormatCurrency(dec("123.45"), ""))
	assert.Equal(t, "AED 5.00", FormatCurrency(dec("5"), "AED"))
	assert.Equal(t, "USD -10.50", FormatCurrency(dec("-10.5"), "USD"))
}
