package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormDraft is a partially filled form as it arrives from outside the session:
// a flat JSON object of scalar field values plus an optional "lineItems" array.
//
//	{"billTo": "XYZ Enterprises", "cgstRate": "9", "lineItems": [{"description": "Router", "quantity": 2, "rate": 500}]}
type FormDraft struct {
	Fields    map[string]string
	LineItems []LineItem
}

func (d *FormDraft) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Fields = make(map[string]string, len(raw))
	d.LineItems = nil
	for k, v := range raw {
		if k == LineItemsField {
			if string(v) == "null" {
				continue
			}
			if err := json.Unmarshal(v, &d.LineItems); err != nil {
				return fmt.Errorf("invalid lineItems: %w", err)
			}
			continue
		}
		s, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("invalid value for %q: %w", k, err)
		}
		d.Fields[k] = s
	}
	return nil
}

func (d FormDraft) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+1)
	for k, v := range d.Fields {
		out[k] = v
	}
	if len(d.LineItems) > 0 {
		out[LineItemsField] = d.LineItems
	}
	return json.Marshal(out)
}

func scalarString(v json.RawMessage) (string, error) {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return "", err
	}
	switch t := x.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return FormatQuantity(t), nil
	case bool:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("expected a string or number, got %T", x)
	}
}

// Normalize cleans up common formatting issues in drafts produced by people or
// by a language model: surrounding whitespace, "%" on rates and "null" strings.
func (d *FormDraft) Normalize() {
	for k, v := range d.Fields {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "null") {
			v = ""
		}
		if strings.HasSuffix(k, "Rate") {
			v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
		}
		d.Fields[k] = v
	}
	for i := range d.LineItems {
		it := &d.LineItems[i]
		it.Description = strings.TrimSpace(it.Description)
		it.HSNCode = strings.TrimSpace(it.HSNCode)
		it.Units = strings.TrimSpace(it.Units)
		it.RateInput = strings.TrimSpace(it.RateInput)
		if it.RateInput != "" && it.Rate == 0 {
			it.Rate = ParseAmount(it.RateInput)
		}
	}
}

// Apply merges a draft into the form. Fields the template does not declare and
// calculated fields are skipped; line items replace the current ones when the
// template supports them and the draft carries any.
func (f *Form) Apply(d FormDraft) error {
	for id, v := range d.Fields {
		field, ok := f.tpl.Field(id)
		if !ok || field.Derived() || field.Type == FieldLineItems {
			continue
		}
		if err := f.SetField(id, v); err != nil {
			return err
		}
	}
	if f.tpl.SupportLineItems && len(d.LineItems) > 0 {
		return f.SetLineItems(d.LineItems)
	}
	return nil
}
