package model

import "github.com/shopspring/decimal"

// UAE VAT tax code constants
const (
	TaxCodeStandard   = "SR" // standard-rated, 5%
	TaxCodeZeroRated  = "ZR"
	TaxCodeExempt     = "ES"
	TaxCodeOutOfScope = "OP"
)

// TaxCodes is the closed set of recognised codes, in reporting order.
var TaxCodes = []string{TaxCodeStandard, TaxCodeZeroRated, TaxCodeExempt, TaxCodeOutOfScope}

var standardRate = decimal.NewFromInt(5)

// RateForTaxCode returns the VAT percentage applied to a tax code.
// Only SR carries a non-zero rate; ZR, ES and OP all resolve to 0.
func RateForTaxCode(code string) decimal.Decimal {
	if code == TaxCodeStandard {
		return standardRate
	}
	return decimal.Zero
}

// IsValidTaxCode reports whether code belongs to the closed tax code set.
func IsValidTaxCode(code string) bool {
	for _, c := range TaxCodes {
		if c == code {
			return true
		}
	}
	return false
}
