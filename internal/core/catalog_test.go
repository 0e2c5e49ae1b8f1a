package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/core"
)

func TestDefaultCatalog_List(t *testing.T) {
	list := core.DefaultCatalog().List()

	require.Len(t, list, 2)
	assert.Equal(t, "invoice", list[0].ID)
	assert.True(t, list[0].SupportLineItems)
	assert.Equal(t, "receipt", list[1].ID)
	assert.False(t, list[1].SupportLineItems)
	for _, tpl := range list {
		assert.NotEmpty(t, tpl.HTML, tpl.ID)
	}
}

func TestCatalog_GetNotFound(t *testing.T) {
	_, err := core.DefaultCatalog().Get("quotation")

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTemplateNotFound))
	assert.Contains(t, err.Error(), "quotation")
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	cat := core.DefaultCatalog()
	tpl, err := cat.Get("receipt")
	require.NoError(t, err)

	tpl.Name = "changed"
	tpl.Fields[5].Options[0] = "Gold"

	again, err := cat.Get("receipt")
	require.NoError(t, err)
	assert.Equal(t, "Payment Receipt", again.Name)
	assert.Equal(t, "Cash", again.Fields[5].Options[0])
}

func TestInvoiceTemplate_Placeholders(t *testing.T) {
	tpl, err := core.DefaultCatalog().Get("invoice")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"amountWords", "billTo", "cgst", "cgstRate", "grandTotal", "invoiceDate", "invoiceNo",
		"lineItems", "place", "sgst", "sgstRate", "taxableValue", "total",
	}, core.Placeholders(tpl.HTML))
}

func TestTemplateField_Derived(t *testing.T) {
	tpl, err := core.DefaultCatalog().Get("invoice")
	require.NoError(t, err)

	grand, ok := tpl.Field("grandTotal")
	require.True(t, ok)
	assert.True(t, grand.Derived())

	billTo, ok := tpl.Field("billTo")
	require.True(t, ok)
	assert.False(t, billTo.Derived())

	_, ok = tpl.Field("missing")
	assert.False(t, ok)
}
