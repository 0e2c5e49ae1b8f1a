package core

import (
	"fmt"
	"sort"
)

// LintIssue is a problem found by LintTemplate.
type LintIssue struct {
	Severity string `json:"severity"` // "error" or "warning"
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// LintResult is the outcome of a static check of one template.
type LintResult struct {
	TemplateID string      `json:"templateId"`
	Valid      bool        `json:"valid"`
	Issues     []LintIssue `json:"issues"`
}

func (r *LintResult) addError(field, msg string) {
	r.Valid = false
	r.Issues = append(r.Issues, LintIssue{Severity: "error", Field: field, Message: msg})
}

func (r *LintResult) addWarning(field, msg string) {
	r.Issues = append(r.Issues, LintIssue{Severity: "warning", Field: field, Message: msg})
}

// LintTemplate checks a template without rendering it: placeholders with no
// field behind them leak into output verbatim, required fields with no
// placeholder are never shown, and calculateFrom must name declared fields.
func LintTemplate(t *Template) *LintResult {
	res := &LintResult{TemplateID: t.ID, Valid: true, Issues: make([]LintIssue, 0)}

	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if declared[f.ID] {
			res.addError(f.ID, fmt.Sprintf("field '%s' is declared more than once", f.ID))
		}
		declared[f.ID] = true
	}

	placeholders := make(map[string]bool)
	for _, p := range Placeholders(t.HTML) {
		placeholders[p] = true
		if !declared[p] {
			res.addError(p, fmt.Sprintf("placeholder '{{%s}}' has no matching field", p))
		}
	}

	for _, f := range t.Fields {
		if f.Type == FieldLineItems {
			if !t.SupportLineItems {
				res.addError(f.ID, fmt.Sprintf("line-items field '%s' on a template without line item support", f.ID))
			}
			if !placeholders[LineItemsField] {
				res.addError(f.ID, fmt.Sprintf("template has no '{{%s}}' region", LineItemsField))
			}
			continue
		}
		if f.Required && !placeholders[f.ID] {
			res.addWarning(f.ID, fmt.Sprintf("required field '%s' is never rendered", f.ID))
		}
		for _, dep := range f.CalculateFrom {
			if !declared[dep] {
				res.addError(f.ID, fmt.Sprintf("field '%s' is calculated from undefined field '%s'", f.ID, dep))
			}
			if dep == f.ID {
				res.addError(f.ID, fmt.Sprintf("field '%s' is calculated from itself", f.ID))
			}
		}
		if f.Type == FieldSelect && len(f.Options) == 0 {
			res.addWarning(f.ID, fmt.Sprintf("select field '%s' has no options", f.ID))
		}
	}

	if t.SupportLineItems && !declared[LineItemsField] {
		res.addError(LineItemsField, "template supports line items but declares no line-items field")
	}

	sort.SliceStable(res.Issues, func(i, j int) bool {
		return res.Issues[i].Field < res.Issues[j].Field
	})
	return res
}
