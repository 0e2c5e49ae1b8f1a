package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Document"

// XLSXExporter writes the form fields, line items and totals to a single sheet.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Format() Format { return FormatXLSX }

func (e *XLSXExporter) ContentType() string { return xlsxContentType }

func (e *XLSXExporter) Export(w io.Writer, doc Document) error {
	if doc.Template == nil {
		return fmt.Errorf("export: document has no template")
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	sw := sheetWriter{f: f}
	sw.set(1, 1, doc.Template.Name)
	sw.style(1, 1, bold)

	row := 3
	for _, r := range scalarRows(doc) {
		sw.set(1, row, r[0])
		sw.style(1, row, bold)
		sw.set(2, row, r[1])
		row++
	}

	if doc.Template.SupportLineItems {
		row++
		for i, c := range lineItemColumns {
			sw.set(i+1, row, c.header)
			sw.style(i+1, row, bold)
		}
		row++
		for _, it := range doc.LineItems {
			sw.set(1, row, it.Description)
			sw.set(2, row, it.HSNCode)
			sw.set(3, row, it.Quantity)
			sw.set(4, row, it.Units)
			sw.set(5, row, it.Rate)
			sw.set(6, row, it.Amount)
			sw.style(5, row, money)
			sw.style(6, row, money)
			row++
		}
		row++
		for _, t := range totalRows(doc) {
			sw.set(5, row, t.label)
			sw.style(5, row, bold)
			sw.set(6, row, t.value)
			sw.style(6, row, money)
			row++
		}
		if doc.Summary != nil {
			sw.set(1, row+1, "Amount in words")
			sw.style(1, row+1, bold)
			sw.set(2, row+1, doc.Summary.AmountWords)
		}
	}

	if sw.err != nil {
		return fmt.Errorf("failed to fill sheet: %w", sw.err)
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 30); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "B", "F", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return f.Write(w)
}

// sheetWriter keeps the first error from a run of cell writes.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (s *sheetWriter) set(col, row int, v any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(xlsxSheet, cell, v)
}

func (s *sheetWriter) style(col, row, styleID int) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellStyle(xlsxSheet, cell, cell, styleID)
}
