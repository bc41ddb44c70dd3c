package taxmath

import "github.com/shopspring/decimal"

// DefaultCurrency is used when no currency code is supplied.
const DefaultCurrency = "AED"

var hundred = decimal.NewFromInt(100)

// Breakdown splits a tax-inclusive amount into its net and tax components.
// All monetary fields are rounded to 2 decimal places.
type Breakdown struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // percentage, e.g. 5 = 5%
}

// NetVAT is the collected-vs-paid position for a filing period.
type NetVAT struct {
	VATCollected  decimal.Decimal `json:"vat_collected"`
	VATPaid       decimal.Decimal `json:"vat_paid"`
	NetVATPayable decimal.Decimal `json:"net_vat_payable"`
}

// LineItem is one priced line fed into CalculateItemsTax. A zero or negative
// Quantity counts as 1.
type LineItem struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CalculateTaxInclusive derives the tax embedded in a price that already
// includes it: tax = total * rate / (100 + rate). The rate is not validated;
// negative totals (refunds) are linear and well-defined. Rounding is 2dp
// half-away-from-zero.
func CalculateTaxInclusive(totalPrice, taxRate decimal.Decimal) Breakdown {
	total := totalPrice.Round(2)
	tax := totalPrice.Mul(taxRate).Div(hundred.Add(taxRate)).Round(2)
	return Breakdown{
		TotalAmount: total,
		NetAmount:   total.Sub(tax),
		TaxAmount:   tax,
		TaxRate:     taxRate,
	}
}

// CalculateTotalFromNet is the inverse direction: total = net * (1 + rate/100),
// rounded to 2dp. Round-trips with CalculateTaxInclusive within 0.01.
func CalculateTotalFromNet(netAmount, taxRate decimal.Decimal) decimal.Decimal {
	return netAmount.Mul(hundred.Add(taxRate)).Div(hundred).Round(2)
}

// CalculateNetVAT computes the VAT payable for a period. Each of the three
// fields is rounded independently from its raw input, so NetVATPayable can
// differ from VATCollected - VATPaid of the rounded fields by 0.01 in edge
// cases. That matches how each figure appears on the filing.
func CalculateNetVAT(vatCollected, vatPaid decimal.Decimal) NetVAT {
	return NetVAT{
		VATCollected:  vatCollected.Round(2),
		VATPaid:       vatPaid.Round(2),
		NetVATPayable: vatCollected.Sub(vatPaid).Round(2),
	}
}

// CalculateItemsTax sums price * quantity over the items and splits the total
// with CalculateTaxInclusive. Order-independent; an empty slice yields a zero
// breakdown at the given rate.
func CalculateItemsTax(items []LineItem, taxRate decimal.Decimal) Breakdown {
	sum := decimal.Zero
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return CalculateTaxInclusive(sum, taxRate)
}

// FormatCurrency renders an amount as "AED 123.45". An empty currency code
// falls back to DefaultCurrency.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + amount.StringFixed(2)
}
