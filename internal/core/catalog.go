package core

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Catalog supplies the document templates a form can be started from.
type Catalog interface {
	// List returns all templates in display order.
	List() []Template
	// Get returns the template with the given id, or an error wrapping
	// ErrTemplateNotFound.
	Get(id string) (*Template, error)
}

type staticCatalog struct {
	templates []Template
}

// NewCatalog builds a catalog over a fixed template list.
func NewCatalog(templates ...Template) Catalog {
	return &staticCatalog{templates: templates}
}

// DefaultCatalog returns the built-in Tax Invoice and Payment Receipt templates.
func DefaultCatalog() Catalog {
	return NewCatalog(invoiceTemplate(), receiptTemplate())
}

func (c *staticCatalog) List() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = cloneTemplate(t)
	}
	return out
}

func (c *staticCatalog) Get(id string) (*Template, error) {
	for _, t := range c.templates {
		if t.ID == id {
			cp := cloneTemplate(t)
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
}

func cloneTemplate(t Template) Template {
	fields := make([]TemplateField, len(t.Fields))
	for i, f := range t.Fields {
		f.Options = append([]string(nil), f.Options...)
		f.CalculateFrom = append([]string(nil), f.CalculateFrom...)
		fields[i] = f
	}
	t.Fields = fields
	return t
}

func mustTemplateHTML(name string) string {
	b, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		panic("core: missing embedded template " + name + ": " + err.Error())
	}
	return string(b)
}

var invoiceSummaryDeps = []string{LineItemsField, "cgstRate", "sgstRate"}

func invoiceTemplate() Template {
	derived := func(id, label string, typ FieldType) TemplateField {
		return TemplateField{ID: id, Label: label, Type: typ, Required: true, CalculateFrom: invoiceSummaryDeps}
	}
	return Template{
		ID:          "invoice",
		Name:        "Tax Invoice",
		Description: "Standard tax invoice template",
		Fields: []TemplateField{
			{ID: "billTo", Label: "Billed To", Type: FieldText, Required: true},
			{ID: "place", Label: "Place of Supply", Type: FieldText, Required: true},
			{ID: "invoiceNo", Label: "Invoice No", Type: FieldText, Required: true},
			{ID: "invoiceDate", Label: "Date", Type: FieldDate, Required: true},
			{ID: "cgstRate", Label: "CGST Rate (%)", Type: FieldNumber, Required: true},
			{ID: "sgstRate", Label: "SGST Rate (%)", Type: FieldNumber, Required: true},
			{ID: LineItemsField, Label: "Items", Type: FieldLineItems, Required: true},
			derived("total", "Total", FieldNumber),
			derived("taxableValue", "Taxable Value", FieldNumber),
			derived("cgst", "CGST Amount", FieldNumber),
			derived("sgst", "SGST Amount", FieldNumber),
			derived("grandTotal", "Grand Total", FieldNumber),
			derived("amountWords", "Amount in Words", FieldText),
		},
		HTML:             mustTemplateHTML("invoice.html"),
		SupportLineItems: true,
	}
}

func receiptTemplate() Template {
	return Template{
		ID:          "receipt",
		Name:        "Payment Receipt",
		Description: "Simple payment receipt template",
		Fields: []TemplateField{
			{ID: "receivedFrom", Label: "Received From", Type: FieldText, Required: true},
			{ID: "receiptNo", Label: "Receipt No", Type: FieldText, Required: true},
			{ID: "receiptDate", Label: "Date", Type: FieldDate, Required: true},
			{ID: "amount", Label: "Amount", Type: FieldNumber, Required: true},
			{ID: "amountWords", Label: "Amount in Words", Type: FieldText, Required: true, CalculateFrom: []string{"amount"}},
			{ID: "paymentMode", Label: "Payment Mode", Type: FieldSelect, Required: true,
				Options: []string{"Cash", "Cheque", "UPI", "Bank Transfer", "Card"}},
		},
		HTML: mustTemplateHTML("receipt.html"),
	}
}
