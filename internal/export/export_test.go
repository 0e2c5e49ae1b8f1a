package export_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoice-generator/internal/core"
	"invoice-generator/internal/export"
)

func invoiceDocument(t *testing.T) export.Document {
	t.Helper()
	tpl, err := core.DefaultCatalog().Get("invoice")
	require.NoError(t, err)
	f := core.NewForm(tpl)
	require.NoError(t, f.Apply(core.FormDraft{
		Fields: map[string]string{"billTo": "XYZ Enterprises", "place": "Pune", "invoiceNo": "INV-1", "invoiceDate": "01042025"},
		LineItems: []core.LineItem{
			{Description: "Router", HSNCode: "8517", Quantity: 2, Units: "pcs", Rate: 500},
			{Description: "Switch", HSNCode: "8517", Quantity: 1, Units: "pcs", Rate: 1000},
		},
	}))
	return export.DocumentFromForm(f, core.RenderOptions{})
}

func receiptDocument(t *testing.T) export.Document {
	t.Helper()
	tpl, err := core.DefaultCatalog().Get("receipt")
	require.NoError(t, err)
	f := core.NewForm(tpl)
	require.NoError(t, f.SetField("receivedFrom", "A. Customer"))
	require.NoError(t, f.SetField("amount", "1500"))
	require.NoError(t, f.SetField("paymentMode", "UPI"))
	return export.DocumentFromForm(f, core.RenderOptions{})
}

func TestPDFExporter(t *testing.T) {
	for name, doc := range map[string]export.Document{
		"invoice": invoiceDocument(t),
		"receipt": receiptDocument(t),
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, export.NewPDFExporter().Export(&buf, doc))
			require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output does not start with %PDF header")
		})
	}
}

func TestPDFExporter_NoTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, export.NewPDFExporter().Export(&buf, export.Document{}))
}

func TestXLSXExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Export(&buf, invoiceDocument(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Document", "A1")
	require.NoError(t, err)
	require.Equal(t, "Tax Invoice", title)

	rows, err := f.GetRows("Document")
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) >= 6 && r[0] == "Router" {
			found = true
			require.Equal(t, "8517", r[1])
		}
		if len(r) >= 6 && r[4] == "Grand Total" {
			v, err := strconv.ParseFloat(r[5], 64)
			require.NoError(t, err)
			require.Equal(t, 2360.0, v)
		}
	}
	require.True(t, found, "line item row missing")
}

func TestDefaultFileName(t *testing.T) {
	tpl := &core.Template{Name: "Tax Invoice"}
	now := time.UnixMilli(1712000000123)
	require.Equal(t, "Tax Invoice_1712000000123", export.DefaultFileName(tpl, now))
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, export.FormatPDF, f)

	f, err = export.ParseFormat("xlsx")
	require.NoError(t, err)
	require.Equal(t, export.FormatXLSX, f)

	f, err = export.ParseFormat("html")
	require.NoError(t, err)
	require.Equal(t, export.FormatHTML, f)
	require.Equal(t, "text/html; charset=utf-8", f.ContentType())

	_, err = export.ParseFormat("docx")
	require.Error(t, err)
}

func TestOutput_WriteRenameRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out := export.NewOutput(dir)

	path, err := out.Write("Tax Invoice_1", export.NewPDFExporter(), invoiceDocument(t))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Tax Invoice_1.pdf"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	renamed, err := out.Rename(path, "April")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "April.pdf"), renamed)
	_, err = os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, out.Remove(renamed))
	require.NoError(t, out.Remove(renamed))
}

func TestOutput_RejectsBadNames(t *testing.T) {
	out := export.NewOutput(t.TempDir())
	for _, name := range []string{"", "  ", "../escape", `a\b`, ".."} {
		_, err := out.Write(name, export.NewPDFExporter(), invoiceDocument(t))
		require.True(t, errors.Is(err, export.ErrInvalidFileName), "name %q", name)
	}
}

func TestHTMLExporter_WritesRenderedBody(t *testing.T) {
	doc := invoiceDocument(t)

	var buf bytes.Buffer
	require.NoError(t, export.NewHTMLExporter().Export(&buf, doc))

	require.Equal(t, doc.HTML, buf.String())
	require.Contains(t, buf.String(), "<td>Router</td>")
	require.Contains(t, buf.String(), "XYZ Enterprises")
	require.Contains(t, buf.String(), "2360.00")
	require.Contains(t, buf.String(), "Two Thousand Three Hundred and Sixty Rupees Only")
	require.Empty(t, core.UnresolvedPlaceholders(buf.String()))
}

func TestHTMLExporter_NoBody(t *testing.T) {
	tpl, err := core.DefaultCatalog().Get("receipt")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, export.NewHTMLExporter().Export(&buf, export.Document{Template: tpl}))
	require.Error(t, export.NewHTMLExporter().Export(&buf, export.Document{}))
}

func TestDocumentFromForm_EscapesWhenAsked(t *testing.T) {
	tpl, err := core.DefaultCatalog().Get("receipt")
	require.NoError(t, err)
	f := core.NewForm(tpl)
	require.NoError(t, f.SetField("receivedFrom", "<b>Acme</b>"))

	raw := export.DocumentFromForm(f, core.RenderOptions{})
	escaped := export.DocumentFromForm(f, core.RenderOptions{EscapeHTML: true})

	require.Contains(t, raw.HTML, "<b>Acme</b>")
	require.Contains(t, escaped.HTML, "&lt;b&gt;Acme&lt;/b&gt;")
}

func TestOutput_WriteRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	out := export.NewOutput(dir)

	path, err := out.Write("same", export.NewHTMLExporter(), invoiceDocument(t))
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = out.Write("same", export.NewHTMLExporter(), receiptDocument(t))
	require.True(t, errors.Is(err, export.ErrInvalidFileName), "got %v", err)
	require.Contains(t, err.Error(), "already exists")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	_, err = out.Write("same", export.NewPDFExporter(), receiptDocument(t))
	require.NoError(t, err, "a different extension is a different file")
}
