package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/core"
)

func TestComputeLineItemAmount_NoRounding(t *testing.T) {
	cases := []struct{ qty, rate float64 }{
		{2, 500},
		{0.1, 3},
		{1.5, 33.333},
		{0, 99.99},
		{7, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.qty*c.rate, core.ComputeLineItemAmount(c.qty, c.rate))
	}
}

func TestComputeInvoiceSummary_EndToEnd(t *testing.T) {
	items := []core.LineItem{
		{Quantity: 2, Rate: 500, Amount: core.ComputeLineItemAmount(2, 500)},
		{Quantity: 1, Rate: 1000, Amount: core.ComputeLineItemAmount(1, 1000)},
	}

	s := core.ComputeInvoiceSummary(items, 9, 9)

	fields := s.Fields()
	assert.Equal(t, "2000.00", fields["total"])
	assert.Equal(t, "2000.00", fields["taxableValue"])
	assert.Equal(t, "180.00", fields["cgst"])
	assert.Equal(t, "180.00", fields["sgst"])
	assert.Equal(t, "2360.00", fields["grandTotal"])
	assert.Equal(t, "Two Thousand Three Hundred and Sixty Rupees Only", s.AmountWords)
}

func TestComputeInvoiceSummary_Properties(t *testing.T) {
	tests := []struct {
		name       string
		amounts    []float64
		cgst, sgst float64
	}{
		{"single item", []float64{1234.56}, 9, 9},
		{"zero rates", []float64{10, 20.5}, 0, 0},
		{"uneven rates", []float64{99.99, 0.01, 333.333}, 2.5, 6},
		{"fractional tax", []float64{0.07}, 14, 14},
		{"no items", nil, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []core.LineItem
			var sum float64
			for _, a := range tt.amounts {
				items = append(items, core.LineItem{Amount: a})
				sum += a
			}

			s := core.ComputeInvoiceSummary(items, tt.cgst, tt.sgst)

			assert.Equal(t, sum, s.Total)
			assert.Equal(t, s.Total, s.TaxableValue)
			assert.Equal(t, core.Round2(s.TaxableValue*tt.cgst/100), s.CGST)
			assert.Equal(t, core.Round2(s.TaxableValue*tt.sgst/100), s.SGST)
			assert.Equal(t, core.Round2(s.TaxableValue+s.CGST+s.SGST), s.GrandTotal)
			assert.Equal(t, core.AmountToWords(s.GrandTotal), s.AmountWords)
		})
	}
}

func TestComputeInvoiceSummary_Deterministic(t *testing.T) {
	items := []core.LineItem{{Amount: 17.35}, {Amount: 0.65}}
	require.Equal(t, core.ComputeInvoiceSummary(items, 9, 9), core.ComputeInvoiceSummary(items, 9, 9))
}

func TestComputeInvoiceSummary_ZeroRates(t *testing.T) {
	s := core.ComputeInvoiceSummary([]core.LineItem{{Amount: 500}}, 0, 0)
	assert.Zero(t, s.CGST)
	assert.Zero(t, s.SGST)
	assert.Equal(t, 500.0, s.GrandTotal)
}

// Round2 scales by 100 in binary floating point and then rounds half away from zero.
func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.13},
		{-0.125, -0.13},
		{2.5, 2.5},
		{180, 180},
		{1.005, 1.00}, // 1.005 is stored as 1.00499999...
		{1.2349, 1.23},
		{1.235001, 1.24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, core.Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"500", 500},
		{"12.", 12},
		{"12.5kg", 12.5},
		{" 7 ", 7},
		{".5", 0.5},
		{"-3", -3},
		{"1e3", 1000},
		{"", 0},
		{"abc", 0},
		{".", 0},
		{"1e400", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, core.ParseAmount(tt.in), "ParseAmount(%q)", tt.in)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "500.00", core.FormatAmount(500))
	assert.Equal(t, "0.10", core.FormatAmount(0.1))
	assert.Equal(t, "2", core.FormatQuantity(2))
	assert.Equal(t, "1.5", core.FormatQuantity(1.5))
}
