package repl

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
	"invoice-generator/internal/export"
	"invoice-generator/internal/store"
)

func newService(t *testing.T) (app.ApplicationService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := app.NewAppService(core.DefaultCatalog(), store.NewMemoryFileStore(), export.NewOutput(dir), nil, nil, nil, app.Options{})
	return svc, dir
}

func script(t *testing.T, svc app.ApplicationService, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	run(context.Background(), svc, reader, &out)
	return out.String()
}

func TestRun_InvoiceWizardAndExport(t *testing.T) {
	svc, dir := newService(t)

	out := script(t, svc,
		"/new invoice",
		"XYZ Enterprises",
		"Pune",
		"INV-1",
		"01042025",
		"",
		"",
		"Router | 8517 | 2 | pcs | 500",
		"not an item",
		"Switch | 8517 | 1 | pcs | 1000",
		"done",
		"/export pdf march",
		"/files",
		"/exit",
	)

	assert.Contains(t, out, "CGST Rate (%) [9]: ")
	assert.Contains(t, out, "invalid format")
	assert.Contains(t, out, "Router")
	assert.Contains(t, out, "2360.00")
	assert.Contains(t, out, "Two Thousand Three Hundred and Sixty Rupees Only")
	assert.Contains(t, out, "01-04-2025")
	assert.NotContains(t, out, "Still needed:")
	assert.Contains(t, out, "march.pdf")
	assert.Contains(t, out, "Goodbye!")

	_, err := os.Stat(dir + "/march.pdf")
	assert.NoError(t, err)
}

func TestRun_EditRecalculates(t *testing.T) {
	svc, _ := newService(t)

	out := script(t, svc,
		"/new invoice",
		"", "", "", "", "", "",
		"Router | 8517 | 1 | pcs | 1000",
		"done",
		"/set cgstRate 0",
		"/add Cable | 8544 | 2 | m | 50",
		"/rm 1",
		"/exit",
	)

	assert.Contains(t, out, "1180.00")
	assert.Contains(t, out, "1090.00")
	// Cable only: 100 + 0% + 9%.
	assert.Contains(t, out, "109.00")
	assert.Contains(t, out, "Please fill in the Billed To field.")
}

func TestRun_Errors(t *testing.T) {
	svc, _ := newService(t)

	out := script(t, svc,
		"/show",
		"two routers please",
		"/new quotation",
		"/new receipt",
		"A. Customer", "R-1", "01042025", "1500", "Barter",
		"/set amountWords One",
		"/set colour red",
		"/rm 1",
		"/export",
		"hello",
		"/bogus",
	)

	assert.Contains(t, out, "Error: no document open")
	assert.Contains(t, out, "template not found")
	assert.Contains(t, out, "One Thousand Five Hundred Rupees Only")
	assert.Contains(t, out, "field is calculated and cannot be set: Amount in Words")
	assert.Contains(t, out, "unknown field")
	assert.Contains(t, out, "line item not found")
	assert.Contains(t, out, "Please choose a valid Payment Mode.")
	assert.Contains(t, out, "AI assistant is not configured")
	assert.Contains(t, out, "Unknown command: /bogus")
	// End of input exits the loop.
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_CancelKeepsPreviousDocument(t *testing.T) {
	svc, _ := newService(t)

	out := script(t, svc,
		"/new receipt",
		"", "", "", "250", "",
		"/new invoice",
		"cancel",
		"/show",
		"/exit",
	)

	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, out, "PAYMENT RECEIPT")
	assert.Contains(t, out, "receipt> ")
}

func TestRun_WordsAndLint(t *testing.T) {
	svc, _ := newService(t)

	out := script(t, svc, "/words 100000", "/lint", "/templates", "/help", "/q")

	assert.Contains(t, out, "One Lakh Rupees Only")
	assert.Contains(t, out, "invoice    ok")
	assert.Contains(t, out, "Tax Invoice")
	assert.Contains(t, out, "/export [pdf|xlsx|html] [name]")
}

func TestParseItem(t *testing.T) {
	it, err := parseItem(" Router | 8517 | 2 | pcs | 12. ")
	require.NoError(t, err)
	assert.Equal(t, "Router", it.Description)
	assert.Equal(t, 2.0, it.Quantity)
	assert.Equal(t, 12.0, it.Rate)
	assert.Equal(t, "12.", it.RateInput)

	_, err = parseItem("Router | 8517")
	assert.Error(t, err)
}
