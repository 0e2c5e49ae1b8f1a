package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/core"
)

func messages(t *testing.T, err error) []string {
	t.Helper()
	var verrs core.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	out := make([]string, len(verrs))
	for i, e := range verrs {
		out[i] = e.Message
	}
	return out
}

func TestValidate_EmptyInvoice(t *testing.T) {
	f := newInvoiceForm(t)

	got := messages(t, f.Validate())

	assert.Equal(t, []string{
		"Please fill in the Billed To field.",
		"Please fill in the Place of Supply field.",
		"Please fill in the Invoice No field.",
		"Please fill in the Date field.",
		"Please fill in all details for item #1.",
	}, got)
}

func TestValidate_LineItemNumbers(t *testing.T) {
	f := newInvoiceForm(t)
	for _, kv := range [][2]string{
		{"billTo", "X"}, {"place", "Y"}, {"invoiceNo", "1"}, {"invoiceDate", "01012025"},
	} {
		require.NoError(t, f.SetField(kv[0], kv[1]))
	}
	fillItem(t, f, f.LineItems()[0].ID, "Router", "1", "10")
	second := f.AddLineItem()
	fillItem(t, f, second.ID, "Cable", "0", "10")

	got := messages(t, f.Validate())

	assert.Equal(t, []string{"Quantity and rate must be greater than zero for item #2."}, got)

	var verrs core.ValidationErrors
	require.True(t, errors.As(f.Validate(), &verrs))
	assert.Equal(t, "lineItems[1]", verrs[0].Field)
}

func TestValidate_BlankTaxRate(t *testing.T) {
	f := newInvoiceForm(t)
	require.NoError(t, f.SetField("cgstRate", "  "))

	assert.Contains(t, messages(t, f.Validate()), "Please fill in the CGST Rate (%) field.")
}

func TestValidate_ReceiptSelect(t *testing.T) {
	f := newReceiptForm(t)
	require.NoError(t, f.SetField("receivedFrom", "A"))
	require.NoError(t, f.SetField("receiptNo", "R-1"))
	require.NoError(t, f.SetField("receiptDate", "01012025"))
	require.NoError(t, f.SetField("amount", "250"))

	assert.Equal(t, []string{"Please fill in the Payment Mode field."}, messages(t, f.Validate()))

	require.NoError(t, f.SetField("paymentMode", "Barter"))
	assert.Equal(t, []string{"Please choose a valid Payment Mode."}, messages(t, f.Validate()))

	require.NoError(t, f.SetField("paymentMode", "UPI"))
	assert.NoError(t, f.Validate())
}

func TestValidationErrors_Error(t *testing.T) {
	err := core.ValidationErrors{{Field: "a", Message: "first"}, {Field: "b", Message: "second"}}
	assert.Equal(t, "first; second", err.Error())
}
