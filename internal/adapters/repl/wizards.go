package repl

import (
	"fmt"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
)

// newDocument opens a template and walks the user through its fields. A cancelled
// wizard leaves the previous document untouched.
func (s *session) newDocument(templateID string) error {
	result, err := s.svc.GetTemplate(s.ctx, templateID)
	if err != nil {
		return err
	}
	tpl := result.Template
	blank, err := s.svc.Calculate(s.ctx, app.DocumentRequest{TemplateID: tpl.ID})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "New %s. Press Enter to keep a value, 'cancel' to abort.\n", tpl.Name)
	fields, ok := s.fieldsWizard(tpl, blank.State.Fields)
	if !ok {
		return nil
	}
	draft := core.FormDraft{Fields: fields}
	if tpl.SupportLineItems {
		items, ok := s.itemsWizard()
		if !ok {
			return nil
		}
		draft.LineItems = items
	}

	s.tpl = tpl
	s.draft = draft
	return s.show()
}

// fieldsWizard prompts for every field the user can type. Derived fields and line
// items are skipped. Defaults are shown in brackets.
func (s *session) fieldsWizard(tpl *core.Template, defaults map[string]string) (map[string]string, bool) {
	fields := make(map[string]string)
	for _, f := range tpl.Fields {
		if f.Derived() || f.Type == core.FieldLineItems {
			continue
		}
		prompt := "  " + f.Label
		if len(f.Options) > 0 {
			prompt += " (" + strings.Join(f.Options, "/") + ")"
		}
		if d := defaults[f.ID]; d != "" {
			prompt += " [" + d + "]"
		}
		fmt.Fprint(s.out, prompt+": ")

		raw, err := s.reader.ReadString('\n')
		raw = strings.TrimSpace(raw)
		if strings.EqualFold(raw, "cancel") {
			fmt.Fprintln(s.out, "Cancelled.")
			return nil, false
		}
		if raw != "" {
			fields[f.ID] = raw
		}
		if err != nil {
			break
		}
	}
	return fields, true
}

// itemsWizard reads line items until 'done'. An empty list keeps the form's
// single blank item.
func (s *session) itemsWizard() ([]core.LineItem, bool) {
	fmt.Fprintln(s.out, "Enter line items. Type 'done' when finished, 'cancel' to abort.")
	fmt.Fprintln(s.out, "Format per line: <description> | <hsn> | <quantity> | <units> | <rate>")
	fmt.Fprintln(s.out, "  Example: Router | 8517 | 2 | pcs | 500")

	var items []core.LineItem
	for {
		fmt.Fprintf(s.out, "  Item %d: ", len(items)+1)
		raw, err := s.reader.ReadString('\n')
		raw = strings.TrimSpace(raw)
		switch {
		case strings.EqualFold(raw, "cancel"):
			fmt.Fprintln(s.out, "Cancelled.")
			return nil, false
		case strings.EqualFold(raw, "done"):
			return items, true
		case raw != "":
			item, perr := parseItem(raw)
			if perr != nil {
				fmt.Fprintf(s.out, "  %v\n", perr)
			} else {
				items = append(items, item)
			}
		}
		if err != nil {
			return items, true
		}
	}
}

// parseItem reads "<description> | <hsn> | <quantity> | <units> | <rate>".
func parseItem(raw string) (core.LineItem, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 5 {
		return core.LineItem{}, fmt.Errorf("invalid format, use: <description> | <hsn> | <quantity> | <units> | <rate>")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return core.LineItem{
		Description: parts[0],
		HSNCode:     parts[1],
		Quantity:    core.ParseAmount(parts[2]),
		Units:       parts[3],
		Rate:        core.ParseAmount(parts[4]),
		RateInput:   parts[4],
	}, nil
}
