package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"invoice-generator/internal/core"
)

var lineItemColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"Description", 60, "L"},
	{"HSN/SAC", 22, "C"},
	{"Qty", 16, "R"},
	{"Units", 18, "C"},
	{"Rate", 27, "R"},
	{"Amount", 27, "R"},
}

// PDFExporter lays a document out as an A4 PDF: title, field table, line items,
// totals and the amount in words.
type PDFExporter struct {
	PageSize string
	Author   string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{PageSize: "A4"}
}

func (e *PDFExporter) Format() Format { return FormatPDF }

func (e *PDFExporter) ContentType() string { return pdfContentType }

func (e *PDFExporter) Export(w io.Writer, doc Document) error {
	if doc.Template == nil {
		return fmt.Errorf("export: document has no template")
	}
	pageSize := e.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}

	pdf := gofpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Template.Name, true)
	if e.Author != "" {
		pdf.SetAuthor(e.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	lm, _, rm, _ := pdf.GetMargins()
	contentW := pageW - lm - rm

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(contentW, 9, tr(doc.Template.Name), "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	labelW := contentW * 0.35
	for _, row := range scalarRows(doc) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelW, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(contentW-labelW, 7, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	if doc.Template.SupportLineItems {
		pdf.Ln(6)
		renderLineItems(pdf, tr, doc.LineItems)
		renderTotals(pdf, doc, contentW)
	}

	if words := amountWords(doc); words != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(contentW, 6, tr("Amount in words: "+words), "", "L", false)
	}

	if pdf.Err() {
		return fmt.Errorf("export: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func renderLineItems(pdf *gofpdf.Fpdf, tr func(string) string, items []core.LineItem) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range lineItemColumns {
		pdf.CellFormat(c.width, 8, c.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 245)
	for i, it := range items {
		cells := []string{
			tr(it.Description), tr(it.HSNCode), core.FormatQuantity(it.Quantity), tr(it.Units),
			core.FormatAmount(it.Rate), core.FormatAmount(it.Amount),
		}
		for j, c := range lineItemColumns {
			pdf.CellFormat(c.width, 7, cells[j], "1", 0, c.align, i%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}
}

func renderTotals(pdf *gofpdf.Fpdf, doc Document, contentW float64) {
	valueW := 40.0
	for _, row := range totalRows(doc) {
		style := ""
		if row.label == "Grand Total" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW-valueW, 7, row.label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 7, "Rs. "+core.FormatAmount(row.value), "1", 1, "R", false, 0, "")
	}
}

// amountWords returns the words line for documents that carry one outside the
// field table (invoices); receipts show it as a regular field.
func amountWords(doc Document) string {
	if doc.Summary == nil {
		return ""
	}
	return doc.Summary.AmountWords
}
