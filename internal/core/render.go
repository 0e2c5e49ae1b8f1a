package core

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// RenderOptions controls how form values are merged into a template.
type RenderOptions struct {
	// EscapeHTML escapes scalar values and line-item text before substitution.
	// Off by default: values are treated as already-HTML content.
	EscapeHTML bool
}

// RenderLineItemsRows renders one table row per line item, in order, with no
// separator between rows. Text is inserted verbatim.
func RenderLineItemsRows(items []LineItem) string {
	var b strings.Builder
	for _, it := range items {
		writeRow(&b, it.Description, it.HSNCode, FormatQuantity(it.Quantity), it.Units, FormatAmount(it.Rate), FormatAmount(it.Amount))
	}
	return b.String()
}

func renderEscapedRows(items []LineItem) string {
	var b strings.Builder
	for _, it := range items {
		writeRow(&b, html.EscapeString(it.Description), html.EscapeString(it.HSNCode), FormatQuantity(it.Quantity),
			html.EscapeString(it.Units), FormatAmount(it.Rate), FormatAmount(it.Amount))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>")
		b.WriteString(c)
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
}

// FillTemplate replaces every {{key}} token in body with the stringified value of
// values[key]. Matching is exact and case-sensitive. Keys missing from body are
// ignored and placeholders missing from values are left as they are.
//
// Substitution is a single pass over body: a value that itself contains
// {{otherKey}} is copied through without being expanded.
func FillTemplate(body string, values map[string]any) string {
	if len(values) == 0 {
		return body
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", stringify(values[k]))
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Placeholders returns the sorted, de-duplicated placeholder names found in body.
func Placeholders(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// UnresolvedPlaceholders lists the placeholders still present in a rendered document.
func UnresolvedPlaceholders(rendered string) []string {
	return Placeholders(rendered)
}
