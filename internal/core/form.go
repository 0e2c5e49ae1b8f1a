package core

import (
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrDerivedField = errors.New("field is calculated and cannot be set")
)

// Default GST rates a fresh invoice form starts with.
const defaultGSTRate = "9"

// FormState is a serialisable snapshot of a form session.
type FormState struct {
	TemplateID string            `json:"templateId"`
	Fields     map[string]string `json:"fields"`
	LineItems  []LineItem        `json:"lineItems,omitempty"`
	Summary    *Summary          `json:"summary,omitempty"`
}

// Form is one in-progress document. Every write that touches a field some derived
// field is calculated from recomputes those derived fields before returning, so
// reads never observe a stale total. A Form is not safe for concurrent use.
type Form struct {
	tpl     *Template
	values  map[string]string
	items   []LineItem
	summary Summary
}

// NewForm starts an empty form for tpl. Invoice-style templates get the default
// GST rates and a single empty line item.
func NewForm(tpl *Template) *Form {
	f := &Form{tpl: tpl, values: make(map[string]string)}
	for _, field := range tpl.Fields {
		if field.Type != FieldLineItems {
			f.values[field.ID] = ""
		}
	}
	for _, id := range []string{"cgstRate", "sgstRate"} {
		if _, ok := tpl.Field(id); ok {
			f.values[id] = defaultGSTRate
		}
	}
	if tpl.SupportLineItems {
		f.items = []LineItem{newLineItem()}
	}
	f.recompute("")
	return f
}

func newLineItem() LineItem {
	return LineItem{ID: uuid.NewString()}
}

// Template returns the template the form was started from.
func (f *Form) Template() *Template {
	return f.tpl
}

// Value returns the current string value of a scalar field.
func (f *Form) Value(id string) string {
	return f.values[id]
}

// Summary returns the invoice totals as of the last edit.
func (f *Form) Summary() Summary {
	return f.summary
}

// LineItems returns a copy of the line items in insertion order.
func (f *Form) LineItems() []LineItem {
	return slices.Clone(f.items)
}

// SetField stores a scalar field value. Date fields are normalised to DD-MM-YYYY
// as they are typed.
func (f *Form) SetField(id, value string) error {
	field, ok := f.tpl.Field(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	if field.Derived() {
		return fmt.Errorf("%w: %q", ErrDerivedField, id)
	}
	if field.Type == FieldLineItems {
		return fmt.Errorf("%w: %q holds line items", ErrUnknownField, id)
	}
	if field.Type == FieldDate {
		value = FormatDateInput(value)
	}
	f.values[id] = value
	f.recompute(id)
	return nil
}

// AddLineItem appends an empty line item and returns it.
func (f *Form) AddLineItem() LineItem {
	it := newLineItem()
	f.items = append(f.items, it)
	f.recompute(LineItemsField)
	return it
}

// UpdateLineItem edits one property of a line item. Quantity and rate are parsed
// leniently and negative values are clamped to zero; the raw rate text is kept in
// RateInput. Amount is recomputed on every quantity or rate edit.
func (f *Form) UpdateLineItem(id, property, value string) error {
	idx := f.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrLineItemNotFound, id)
	}
	it := f.items[idx]
	switch property {
	case "description":
		it.Description = value
	case "hsnCode":
		it.HSNCode = value
	case "units":
		it.Units = value
	case "quantity":
		it.Quantity = clampZero(ParseAmount(value))
	case "rate":
		it.RateInput = value
		it.Rate = clampZero(ParseAmount(value))
	case "amount":
		return fmt.Errorf("%w: line item amount", ErrDerivedField)
	default:
		return fmt.Errorf("%w: line item property %q", ErrUnknownField, property)
	}
	it.Amount = ComputeLineItemAmount(it.Quantity, it.Rate)
	f.items[idx] = it
	f.recompute(LineItemsField)
	return nil
}

// RemoveLineItem deletes a line item. Removing the last remaining item is rejected.
func (f *Form) RemoveLineItem(id string) error {
	idx := f.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrLineItemNotFound, id)
	}
	if len(f.items) <= 1 {
		return ErrLastLineItem
	}
	f.items = slices.Delete(f.items, idx, idx+1)
	f.recompute(LineItemsField)
	return nil
}

// SetLineItems replaces all line items. Incoming amounts are ignored and
// recomputed; items without an id get a fresh one.
func (f *Form) SetLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrLastLineItem
	}
	next := make([]LineItem, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			it.ID = uuid.NewString()
		}
		it.Quantity = clampZero(it.Quantity)
		it.Rate = clampZero(it.Rate)
		if it.RateInput == "" && it.Rate != 0 {
			it.RateInput = FormatQuantity(it.Rate)
		}
		it.Amount = ComputeLineItemAmount(it.Quantity, it.Rate)
		next[i] = it
	}
	f.items = next
	f.recompute(LineItemsField)
	return nil
}

func (f *Form) indexOf(id string) int {
	return slices.IndexFunc(f.items, func(it LineItem) bool { return it.ID == id })
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// recompute refreshes the derived fields that depend on changed. An empty changed
// refreshes every derived field.
func (f *Form) recompute(changed string) {
	if f.tpl.SupportLineItems && (changed == "" || slices.Contains(invoiceSummaryDeps, changed)) {
		f.summary = ComputeInvoiceSummary(f.items, ParseAmount(f.values["cgstRate"]), ParseAmount(f.values["sgstRate"]))
	}
	summaryFields := f.summary.Fields()
	for _, field := range f.tpl.Fields {
		if !field.Derived() || (changed != "" && !slices.Contains(field.CalculateFrom, changed)) {
			continue
		}
		if slices.Contains(field.CalculateFrom, LineItemsField) {
			if v, ok := summaryFields[field.ID]; ok {
				f.values[field.ID] = v
			}
			continue
		}
		if field.ID == "amountWords" && len(field.CalculateFrom) == 1 {
			f.values[field.ID] = AmountToWords(ParseAmount(f.values[field.CalculateFrom[0]]))
		}
	}
}

// Values returns the merged field map used for rendering: scalar fields, derived
// fields and, for line-item templates, the rendered rows under LineItemsField.
func (f *Form) Values(opts RenderOptions) map[string]any {
	out := make(map[string]any, len(f.values)+1)
	for k, v := range f.values {
		if opts.EscapeHTML {
			v = html.EscapeString(v)
		}
		out[k] = v
	}
	if f.tpl.SupportLineItems {
		if opts.EscapeHTML {
			out[LineItemsField] = renderEscapedRows(f.items)
		} else {
			out[LineItemsField] = RenderLineItemsRows(f.items)
		}
	}
	return out
}

// Render fills the template with the form's values.
func (f *Form) Render(opts RenderOptions) string {
	return FillTemplate(f.tpl.HTML, f.Values(opts))
}

// State returns a snapshot of the form.
func (f *Form) State() FormState {
	st := FormState{
		TemplateID: f.tpl.ID,
		Fields:     make(map[string]string, len(f.values)),
		LineItems:  f.LineItems(),
	}
	for k, v := range f.values {
		st.Fields[k] = v
	}
	if f.tpl.SupportLineItems {
		s := f.summary
		st.Summary = &s
	}
	return st
}

// FormatDateInput keeps only the digits of text and inserts dashes as DD-MM-YYYY,
// so "1405" becomes "14-05" and "14052025" becomes "14-05-2025".
func FormatDateInput(text string) string {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "-" + d[2:]
	default:
		end := min(len(d), 8)
		return d[:2] + "-" + d[2:4] + "-" + d[4:end]
	}
}
