package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ComputeLineItemAmount returns quantity * rate. No rounding is applied here;
// rounding happens when amounts are aggregated.
func ComputeLineItemAmount(quantity, rate float64) float64 {
	return quantity * rate
}

// ComputeInvoiceSummary derives the invoice totals from the line items and the two
// GST rates (percent). The taxable value is the raw total; there is no discount step.
// Rates are not validated: zero yields no tax and negative rates pass straight through.
func ComputeInvoiceSummary(items []LineItem, cgstRatePercent, sgstRatePercent float64) Summary {
	var total float64
	for _, it := range items {
		total += it.Amount
	}

	taxable := total
	cgst := Round2(taxable * cgstRatePercent / 100)
	sgst := Round2(taxable * sgstRatePercent / 100)
	grand := Round2(taxable + cgst + sgst)

	return Summary{
		Total:        total,
		TaxableValue: taxable,
		CGST:         cgst,
		SGST:         sgst,
		GrandTotal:   grand,
		AmountWords:  AmountToWords(grand),
	}
}

// Round2 rounds x to two decimal places as math.Round(x*100)/100, i.e. half away
// from zero on the scaled value. The scaling happens in binary floating point, so
// a value like 1.005 (stored as 1.00499...) rounds down to 1.00.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseAmount parses the longest numeric prefix of text ("12.5kg" -> 12.5, "12." -> 12).
// Blank, unparsable or non-finite input yields 0 so a half-typed value never blocks
// the form.
func ParseAmount(text string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(text))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount formats x with exactly two decimals.
func FormatAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatQuantity formats x in its shortest decimal form: 2 -> "2", 1.5 -> "1.5".
func FormatQuantity(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
