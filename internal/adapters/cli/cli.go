package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage")

const usage = "Available: templates, words, calc, preview, export, files, lint, draft"

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name. Form values
// are read as JSON from stdin.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	if err := Execute(ctx, svc, args, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// Execute runs one command against svc, reading form values from in and writing
// results to out.
func Execute(ctx context.Context, svc app.ApplicationService, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}

	switch args[0] {
	case "templates", "tpl", "t":
		result, err := svc.ListTemplates(ctx)
		if err != nil {
			return err
		}
		printTemplates(out, result)

	case "words", "w":
		if len(args) < 2 {
			return fmt.Errorf("%w: app words <amount>", ErrUsage)
		}
		result, err := svc.AmountInWords(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result.Words)

	case "calc", "calculate":
		req, err := documentRequest(args, in, "app calc <template> < values.json")
		if err != nil {
			return err
		}
		result, err := svc.Calculate(ctx, req)
		if err != nil {
			return err
		}
		return encode(out, result)

	case "preview", "render":
		req, err := documentRequest(args, in, "app preview <template> < values.json")
		if err != nil {
			return err
		}
		result, err := svc.Preview(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result.HTML)
		for _, name := range result.Unresolved {
			log.Warn().Str("placeholder", name).Msg("unresolved placeholder in preview")
		}

	case "export", "gen", "generate":
		req, err := documentRequest(args, in, "app export <template> [pdf|xlsx|html] [file-name] < values.json")
		if err != nil {
			return err
		}
		gen := app.GenerateRequest{DocumentRequest: req}
		if len(args) >= 3 {
			gen.Format = args[2]
		}
		if len(args) >= 4 {
			gen.FileName = strings.Join(args[3:], " ")
		}
		result, err := svc.Generate(ctx, gen)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %s (%s, total %s)\n", result.File.FilePath, result.File.ID, result.File.GrandTotal.StringFixed(2))

	case "files", "f":
		return runFiles(ctx, svc, args[1:], out)

	case "lint":
		report, err := svc.LintTemplates(ctx)
		if err != nil {
			return err
		}
		printLint(out, report)
		if !report.Valid {
			return errors.New("template lint failed")
		}

	case "draft", "assist":
		if len(args) < 3 {
			return fmt.Errorf("%w: app draft <template> \"<description>\"", ErrUsage)
		}
		result, err := svc.DraftFromText(ctx, app.AssistRequest{TemplateID: args[1], Text: strings.Join(args[2:], " ")})
		if err != nil {
			return err
		}
		return encode(out, result)

	default:
		return fmt.Errorf("%w: unknown command %s\n%s", ErrUsage, args[0], usage)
	}
	return nil
}

func runFiles(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list", "ls":
		result, err := svc.ListFiles(ctx)
		if err != nil {
			return err
		}
		printFiles(out, result)

	case "rename", "mv":
		if len(args) < 3 {
			return fmt.Errorf("%w: app files rename <id> <new-name>", ErrUsage)
		}
		file, err := svc.RenameFile(ctx, app.RenameFileRequest{ID: args[1], Name: strings.Join(args[2:], " ")})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Renamed to %s\n", file.FilePath)

	case "delete", "rm":
		if len(args) < 2 {
			return fmt.Errorf("%w: app files delete <id>", ErrUsage)
		}
		if err := svc.DeleteFile(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(out, "Deleted.")

	default:
		return fmt.Errorf("%w: unknown files command %s (list, rename, delete)", ErrUsage, sub)
	}
	return nil
}

// documentRequest reads the template id from args and the form values from in.
// Empty input means an empty form.
func documentRequest(args []string, in io.Reader, help string) (app.DocumentRequest, error) {
	if len(args) < 2 {
		return app.DocumentRequest{}, fmt.Errorf("%w: %s", ErrUsage, help)
	}
	req := app.DocumentRequest{TemplateID: args[1]}
	if in == nil {
		return req, nil
	}
	var draft core.FormDraft
	if err := json.NewDecoder(in).Decode(&draft); err != nil && !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("invalid JSON values: %w", err)
	}
	req.Values = draft
	return req, nil
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTemplates(out io.Writer, result *app.TemplateListResult) {
	fmt.Fprintf(out, "  %-10s %-18s %s\n", "ID", "NAME", "DESCRIPTION")
	fmt.Fprintln(out, strings.Repeat("-", 62))
	for _, t := range result.Templates {
		fmt.Fprintf(out, "  %-10s %-18s %s\n", t.ID, t.Name, t.Description)
	}
}

func printFiles(out io.Writer, result *app.FileListResult) {
	if len(result.Files) == 0 {
		fmt.Fprintln(out, "No generated files.")
		return
	}
	fmt.Fprintf(out, "  %-36s %-8s %-5s %12s  %s\n", "ID", "TEMPLATE", "FMT", "TOTAL", "NAME")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %-36s %-8s %-5s %12s  %s\n", f.ID, f.TemplateID, f.Format, f.GrandTotal.StringFixed(2), f.FileName)
	}
}

func printLint(out io.Writer, report *app.LintReport) {
	for _, res := range report.Results {
		status := "ok"
		if !res.Valid {
			status = "FAILED"
		}
		fmt.Fprintf(out, "%s: %s\n", res.TemplateID, status)
		for _, is := range res.Issues {
			fmt.Fprintf(out, "  [%s] %s\n", is.Severity, is.Message)
		}
	}
}
