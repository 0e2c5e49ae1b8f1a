package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoice-generator/internal/core"
)

func TestFillTemplate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		values map[string]any
		want   string
	}{
		{"simple", "Hello {{name}}", map[string]any{"name": "World"}, "Hello World"},
		{"missing value left as is", "Hello {{name}} {{unknown}}", map[string]any{"name": "A"}, "Hello A {{unknown}}"},
		{"every occurrence", "{{x}}-{{x}}-{{x}}", map[string]any{"x": "1"}, "1-1-1"},
		{"case sensitive", "{{Name}}", map[string]any{"name": "A"}, "{{Name}}"},
		{"no whitespace tolerance", "{{ name }}", map[string]any{"name": "A"}, "{{ name }}"},
		{"unused keys ignored", "static", map[string]any{"a": "b"}, "static"},
		{"empty map", "{{a}}", nil, "{{a}}"},
		{"triple braces", "{{{a}}}", map[string]any{"a": "v"}, "{v}"},
		{"numbers", "{{f}} {{i}}", map[string]any{"f": 2360.5, "i": 3}, "2360.5 3"},
		{"nil value", "[{{n}}]", map[string]any{"n": nil}, "[]"},
		{"html passes through", "<p>{{a}}</p>", map[string]any{"a": "<b>x</b>"}, "<p><b>x</b></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.FillTemplate(tt.body, tt.values))
		})
	}
}

func TestFillTemplate_SinglePass(t *testing.T) {
	values := map[string]any{"a": "{{b}}", "b": "x"}
	assert.Equal(t, "{{b}} x", core.FillTemplate("{{a}} {{b}}", values))
}

func TestFillTemplate_Idempotent(t *testing.T) {
	values := map[string]any{"name": "World", "place": "Pune"}
	body := "{{name}} at {{place}}, {{missing}}"

	once := core.FillTemplate(body, values)
	assert.Equal(t, once, core.FillTemplate(once, values))
}

func TestRenderLineItemsRows(t *testing.T) {
	items := []core.LineItem{
		{Description: "Router", HSNCode: "8517", Quantity: 2, Units: "pcs", Rate: 500, Amount: 1000},
		{Description: "Cable", HSNCode: "8544", Quantity: 1.5, Units: "m", Rate: 10.1, Amount: 15.15},
	}

	got := core.RenderLineItemsRows(items)

	want := "<tr><td>Router</td><td>8517</td><td>2</td><td>pcs</td><td>500.00</td><td>1000.00</td></tr>" +
		"<tr><td>Cable</td><td>8544</td><td>1.5</td><td>m</td><td>10.10</td><td>15.15</td></tr>"
	assert.Equal(t, want, got)
}

func TestRenderLineItemsRows_Empty(t *testing.T) {
	assert.Empty(t, core.RenderLineItemsRows(nil))
}

func TestPlaceholders(t *testing.T) {
	got := core.Placeholders("{{b}} {{a}} {{b}} {{ c}} {{}}")
	assert.Equal(t, []string{" c", "a", "b"}, got)
}
