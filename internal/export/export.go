package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"invoice-generator/internal/core"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// ParseFormat accepts "pdf", "xlsx" or "html"; an empty string means PDF.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	htmlContentType = "text/html; charset=utf-8"
)

// ContentType is the MIME type files of this format are served with.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return pdfContentType
	case FormatXLSX:
		return xlsxContentType
	case FormatHTML:
		return htmlContentType
	default:
		return "application/octet-stream"
	}
}

// Document is a filled form ready for export. HTML is the template body
// rendered from the same state, exactly as a preview shows it.
type Document struct {
	Template  *core.Template
	Fields    map[string]string
	LineItems []core.LineItem
	Summary   *core.Summary
	HTML      string
}

// DocumentFromForm snapshots a form for export and renders its template body.
func DocumentFromForm(f *core.Form, opts core.RenderOptions) Document {
	st := f.State()
	return Document{
		Template:  f.Template(),
		Fields:    st.Fields,
		LineItems: st.LineItems,
		Summary:   st.Summary,
		HTML:      f.Render(opts),
	}
}

// Exporter writes a Document in one file format.
type Exporter interface {
	Format() Format
	ContentType() string
	Export(w io.Writer, doc Document) error
}

// DefaultFileName names a generated file after its template and creation time,
// "<Template Name>_<unix millis>".
func DefaultFileName(tpl *core.Template, now time.Time) string {
	return tpl.Name + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

// scalarRows lists the label/value pairs shown above the line-item table. Invoice
// summary fields are left out; they are shown as totals instead.
func scalarRows(doc Document) [][2]string {
	var summary map[string]string
	if doc.Summary != nil {
		summary = doc.Summary.Fields()
	}
	var rows [][2]string
	for _, f := range doc.Template.Fields {
		if f.Type == core.FieldLineItems {
			continue
		}
		if _, ok := summary[f.ID]; ok && f.Derived() {
			continue
		}
		rows = append(rows, [2]string{f.Label, doc.Fields[f.ID]})
	}
	return rows
}

type totalRow struct {
	label string
	value float64
}

func totalRows(doc Document) []totalRow {
	s := doc.Summary
	if s == nil {
		return nil
	}
	return []totalRow{
		{"Total", s.Total},
		{"Taxable Value", s.TaxableValue},
		{fmt.Sprintf("CGST (%s%%)", doc.Fields["cgstRate"]), s.CGST},
		{fmt.Sprintf("SGST (%s%%)", doc.Fields["sgstRate"]), s.SGST},
		{"Grand Total", s.GrandTotal},
	}
}
