package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoice-generator/internal/core"
)

func TestLintTemplate_DefaultCatalogIsValid(t *testing.T) {
	for _, tpl := range core.DefaultCatalog().List() {
		res := core.LintTemplate(&tpl)
		assert.True(t, res.Valid, "%s: %+v", tpl.ID, res.Issues)
		assert.Empty(t, res.Issues, tpl.ID)
	}
}

func TestLintTemplate_Problems(t *testing.T) {
	tpl := core.Template{
		ID:   "broken",
		HTML: "<p>{{name}} {{stray}}</p>",
		Fields: []core.TemplateField{
			{ID: "name", Type: core.FieldText, Required: true},
			{ID: "name", Type: core.FieldText},
			{ID: "hidden", Type: core.FieldText, Required: true},
			{ID: "words", Type: core.FieldText, CalculateFrom: []string{"words", "ghost"}},
			{ID: "mode", Type: core.FieldSelect},
			{ID: core.LineItemsField, Type: core.FieldLineItems},
		},
	}

	res := core.LintTemplate(&tpl)

	assert.False(t, res.Valid)
	byMessage := make(map[string]string)
	for _, is := range res.Issues {
		byMessage[is.Message] = is.Severity
	}
	assert.Equal(t, "error", byMessage["placeholder '{{stray}}' has no matching field"])
	assert.Equal(t, "error", byMessage["field 'name' is declared more than once"])
	assert.Equal(t, "warning", byMessage["required field 'hidden' is never rendered"])
	assert.Equal(t, "error", byMessage["field 'words' is calculated from itself"])
	assert.Equal(t, "error", byMessage["field 'words' is calculated from undefined field 'ghost'"])
	assert.Equal(t, "warning", byMessage["select field 'mode' has no options"])
	assert.Equal(t, "error", byMessage["line-items field 'lineItems' on a template without line item support"])
	assert.Equal(t, "error", byMessage["template has no '{{lineItems}}' region"])
}

func TestLintTemplate_LineItemsWithoutField(t *testing.T) {
	tpl := core.Template{ID: "rows", HTML: "<table>{{lineItems}}</table>", SupportLineItems: true}

	res := core.LintTemplate(&tpl)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Issues, core.LintIssue{
		Severity: "error",
		Field:    core.LineItemsField,
		Message:  "placeholder '{{lineItems}}' has no matching field",
	})
}
