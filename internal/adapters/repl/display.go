package repl

import (
	"fmt"
	"io"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
)

func printTemplates(out io.Writer, result *app.TemplateListResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-58s\n", "TEMPLATES")
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-10s %-18s %s\n", "ID", "NAME", "DESCRIPTION")
	fmt.Fprintln(out, strings.Repeat("-", 62))
	for _, t := range result.Templates {
		fmt.Fprintf(out, "  %-10s %-18s %s\n", t.ID, t.Name, t.Description)
	}
	fmt.Fprintln(out, strings.Repeat("=", 62))
}

// printState shows a calculated document: typed fields, line items, totals and
// anything still missing.
func printState(out io.Writer, tpl *core.Template, result *app.CalculationResult) {
	st := result.State
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "  %s\n", strings.ToUpper(tpl.Name))
	fmt.Fprintln(out, strings.Repeat("=", 80))
	for _, f := range tpl.Fields {
		if f.Type == core.FieldLineItems || (tpl.SupportLineItems && f.Derived()) {
			continue
		}
		fmt.Fprintf(out, "  %-20s %s\n", f.Label+":", st.Fields[f.ID])
	}

	if tpl.SupportLineItems {
		fmt.Fprintln(out, strings.Repeat("-", 80))
		fmt.Fprintf(out, "  %-3s %-26s %-8s %8s %-6s %12s %12s\n", "#", "DESCRIPTION", "HSN", "QTY", "UNITS", "RATE", "AMOUNT")
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for i, it := range st.LineItems {
			fmt.Fprintf(out, "  %-3d %-26s %-8s %8s %-6s %12s %12s\n",
				i+1, it.Description, it.HSNCode, core.FormatQuantity(it.Quantity), it.Units,
				core.FormatAmount(it.Rate), core.FormatAmount(it.Amount))
		}
	}

	if sum := st.Summary; sum != nil {
		fmt.Fprintln(out, strings.Repeat("-", 80))
		fmt.Fprintf(out, "  %-62s %15s\n", "TOTAL", core.FormatAmount(sum.Total))
		fmt.Fprintf(out, "  %-62s %15s\n", "CGST @ "+st.Fields["cgstRate"]+"%", core.FormatAmount(sum.CGST))
		fmt.Fprintf(out, "  %-62s %15s\n", "SGST @ "+st.Fields["sgstRate"]+"%", core.FormatAmount(sum.SGST))
		fmt.Fprintf(out, "  %-62s %15s\n", "GRAND TOTAL", core.FormatAmount(sum.GrandTotal))
		fmt.Fprintf(out, "  %s\n", sum.AmountWords)
	}
	fmt.Fprintln(out, strings.Repeat("=", 80))

	if len(result.Errors) > 0 {
		printValidation(out, result.Errors)
	}
}

func printValidation(out io.Writer, errs core.ValidationErrors) {
	fmt.Fprintln(out, "Still needed:")
	for _, e := range errs {
		fmt.Fprintf(out, "  - %s\n", e.Message)
	}
}

func printFiles(out io.Writer, result *app.FileListResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 90))
	fmt.Fprintln(out, "  GENERATED FILES")
	fmt.Fprintln(out, strings.Repeat("=", 90))
	if len(result.Files) == 0 {
		fmt.Fprintln(out, "  No files generated yet.")
		fmt.Fprintln(out, strings.Repeat("=", 90))
		return
	}
	fmt.Fprintf(out, "  %-36s %-5s %12s  %-16s %s\n", "ID", "FMT", "TOTAL", "CREATED", "NAME")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %-36s %-5s %12s  %-16s %s\n",
			f.ID, f.Format, f.GrandTotal.StringFixed(2), f.CreatedAt.Local().Format("2006-01-02 15:04"), f.FileName)
	}
	fmt.Fprintln(out, strings.Repeat("=", 90))
}

func printLint(out io.Writer, report *app.LintReport) {
	for _, res := range report.Results {
		if res.Valid && len(res.Issues) == 0 {
			fmt.Fprintf(out, "  %-10s ok\n", res.TemplateID)
			continue
		}
		fmt.Fprintf(out, "  %-10s %d issue(s)\n", res.TemplateID, len(res.Issues))
		for _, is := range res.Issues {
			fmt.Fprintf(out, "    [%s] %s\n", is.Severity, is.Message)
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "INVOICE GENERATOR: COMMANDS")
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  DOCUMENT")
	fmt.Fprintln(out, "  /templates                       List templates")
	fmt.Fprintln(out, "  /new <template>                  Start a document (interactive)")
	fmt.Fprintln(out, "  /set <field> <value>             Change a field")
	fmt.Fprintln(out, "  /add <desc>|<hsn>|<qty>|<units>|<rate>   Add a line item")
	fmt.Fprintln(out, "  /rm <item-number>                Remove a line item")
	fmt.Fprintln(out, "  /items                           Re-enter all line items")
	fmt.Fprintln(out, "  /show                            Show the calculated document")
	fmt.Fprintln(out, "  /preview                         Print the rendered HTML")
	fmt.Fprintln(out, "  /export [pdf|xlsx|html] [name]   Save the document to a file")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  FILES")
	fmt.Fprintln(out, "  /files                           List generated files")
	fmt.Fprintln(out, "  /rename <file-id> <name>         Rename a generated file")
	fmt.Fprintln(out, "  /delete <file-id>                Delete a generated file")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  TOOLS")
	fmt.Fprintln(out, "  /words <amount>                  Amount in words")
	fmt.Fprintln(out, "  /lint                            Check templates")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  SESSION")
	fmt.Fprintln(out, "  /help                            Show this help")
	fmt.Fprintln(out, "  /exit                            Exit")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ASSISTANT MODE  (no / prefix)")
	fmt.Fprintln(out, "  Describe the document in plain language to fill the open form.")
	fmt.Fprintln(out, "  Example: \"2 routers at 500 each for XYZ Enterprises, Pune\"")
	fmt.Fprintln(out, strings.Repeat("=", 62))
}
