package core

import "errors"

type FieldType string

const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldSelect    FieldType = "select"
	FieldLineItems FieldType = "line-items"
)

// LineItemsField is the field id (and placeholder) carrying the rendered line-item rows.
const LineItemsField = "lineItems"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrLastLineItem     = errors.New("at least one line item is required")
	ErrLineItemNotFound = errors.New("line item not found")
)

// LineItem is one row of a line-item-capable document.
// Amount is always Quantity * Rate as of the last edit; only Form writes it.
// RateInput keeps the raw text the user typed for Rate (e.g. "12.") so partial
// decimal entry survives a round trip to the UI.
type LineItem struct {
	ID          string  `json:"id" jsonschema_description:"Sequential item number as a string, starting at \"1\""`
	Description string  `json:"description" validate:"required" jsonschema_description:"Description of the product or service"`
	HSNCode     string  `json:"hsnCode" validate:"required" jsonschema_description:"HSN or SAC classification code"`
	Quantity    float64 `json:"quantity" validate:"gt=0" jsonschema_description:"Quantity as a number"`
	Units       string  `json:"units" validate:"required" jsonschema_description:"Unit type such as pcs or kg"`
	Rate        float64 `json:"rate" validate:"gt=0" jsonschema_description:"Rate per unit as a number, without currency symbols"`
	Amount      float64 `json:"amount" jsonschema_description:"quantity multiplied by rate"`
	RateInput   string  `json:"_rateInput" jsonschema_description:"The rate exactly as spoken, as a string"`
}

// TemplateField describes one form field. Fields with CalculateFrom are derived:
// they are recomputed whenever one of the listed field ids changes.
type TemplateField struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Type          FieldType `json:"type"`
	Required      bool      `json:"required"`
	Options       []string  `json:"options,omitempty"`
	CalculateFrom []string  `json:"calculateFrom,omitempty"`
}

// Derived reports whether the field value is computed rather than typed.
func (f TemplateField) Derived() bool {
	return len(f.CalculateFrom) > 0
}

type Template struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Fields           []TemplateField `json:"fields"`
	HTML             string          `json:"html"`
	SupportLineItems bool            `json:"supportLineItems"`
}

// Field returns the field with the given id.
func (t *Template) Field(id string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return TemplateField{}, false
}

// Summary holds the document-level derived fields of an invoice.
type Summary struct {
	Total        float64 `json:"total"`
	TaxableValue float64 `json:"taxableValue"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	GrandTotal   float64 `json:"grandTotal"`
	AmountWords  string  `json:"amountWords"`
}

// Fields returns the summary as template values, amounts formatted to two decimals.
func (s Summary) Fields() map[string]string {
	return map[string]string{
		"total":        FormatAmount(s.Total),
		"taxableValue": FormatAmount(s.TaxableValue),
		"cgst":         FormatAmount(s.CGST),
		"sgst":         FormatAmount(s.SGST),
		"grandTotal":   FormatAmount(s.GrandTotal),
		"amountWords":  s.AmountWords,
	}
}
