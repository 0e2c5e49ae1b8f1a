package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"
)

var errExit = errors.New("exit")

// session is one REPL run: the document being edited plus the I/O it talks to.
type session struct {
	ctx    context.Context
	svc    app.ApplicationService
	reader *bufio.Reader
	out    io.Writer

	tpl   *core.Template
	draft core.FormDraft
}

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes free text through the AI assistant to fill the current document.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	run(ctx, svc, reader, os.Stdout)
}

func run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) {
	s := &session{ctx: ctx, svc: svc, reader: reader, out: out}

	fmt.Fprintln(out, "Invoice Generator")
	fmt.Fprintln(out, "Start a document with /new <template>, or use /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		prompt := "> "
		if s.tpl != nil {
			prompt = s.tpl.ID + "> "
		}
		fmt.Fprint(out, "\n"+prompt)
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if err != nil {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			continue
		}

		// Slash prefix → deterministic command dispatcher, no AI invoked.
		if strings.HasPrefix(input, "/") {
			if err := s.dispatch(input); err != nil {
				if errors.Is(err, errExit) {
					fmt.Fprintln(out, "Goodbye!")
					return
				}
				fmt.Fprintf(out, "Error: %v\n", err)
			}
			continue
		}

		if err := s.assist(input); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (s *session) dispatch(input string) error {
	tokens := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "templates", "tpl":
		result, err := s.svc.ListTemplates(s.ctx)
		if err != nil {
			return err
		}
		printTemplates(s.out, result)

	case "new":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /new <template>")
			return nil
		}
		return s.newDocument(args[0])

	case "set":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /set <field> <value>")
			return nil
		}
		return s.setField(args[0], strings.Join(args[1:], " "))

	case "add":
		if err := s.requireDocument(); err != nil {
			return err
		}
		item, err := parseItem(strings.TrimPrefix(strings.TrimPrefix(input, "/"), tokens[0]))
		if err != nil {
			return err
		}
		s.draft.LineItems = append(s.draft.LineItems, item)
		return s.show()

	case "rm", "remove":
		if err := s.requireDocument(); err != nil {
			return err
		}
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /rm <item-number>")
			return nil
		}
		return s.removeItem(args[0])

	case "items":
		if err := s.requireDocument(); err != nil {
			return err
		}
		items, ok := s.itemsWizard()
		if !ok {
			return nil
		}
		s.draft.LineItems = items
		return s.show()

	case "show":
		if err := s.requireDocument(); err != nil {
			return err
		}
		return s.show()

	case "preview":
		if err := s.requireDocument(); err != nil {
			return err
		}
		result, err := s.svc.Preview(s.ctx, s.request())
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, result.HTML)
		if len(result.Unresolved) > 0 {
			fmt.Fprintf(s.out, "Unresolved placeholders: %s\n", strings.Join(result.Unresolved, ", "))
		}

	case "export":
		if err := s.requireDocument(); err != nil {
			return err
		}
		req := app.GenerateRequest{DocumentRequest: s.request()}
		if len(args) >= 1 {
			req.Format = args[0]
		}
		if len(args) >= 2 {
			req.FileName = strings.Join(args[1:], " ")
		}
		result, err := s.svc.Generate(s.ctx, req)
		if err != nil {
			var verrs core.ValidationErrors
			if errors.As(err, &verrs) {
				printValidation(s.out, verrs)
				return nil
			}
			return err
		}
		fmt.Fprintf(s.out, "Saved %s\n", result.File.FilePath)

	case "files":
		result, err := s.svc.ListFiles(s.ctx)
		if err != nil {
			return err
		}
		printFiles(s.out, result)

	case "rename":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "Usage: /rename <file-id> <new-name>")
			return nil
		}
		file, err := s.svc.RenameFile(s.ctx, app.RenameFileRequest{ID: args[0], Name: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Renamed to %s\n", file.FilePath)

	case "delete":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /delete <file-id>")
			return nil
		}
		if err := s.svc.DeleteFile(s.ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "File deleted.")

	case "words":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /words <amount>")
			return nil
		}
		result, err := s.svc.AmountInWords(s.ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, result.Words)

	case "lint":
		report, err := s.svc.LintTemplates(s.ctx)
		if err != nil {
			return err
		}
		printLint(s.out, report)

	case "help", "h":
		printHelp(s.out)

	case "exit", "quit", "e", "q":
		return errExit

	default:
		fmt.Fprintf(s.out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
	}
	return nil
}

func (s *session) requireDocument() error {
	if s.tpl == nil {
		return errors.New("no document open, start one with /new <template>")
	}
	return nil
}

func (s *session) request() app.DocumentRequest {
	return app.DocumentRequest{TemplateID: s.tpl.ID, Values: s.draft}
}

// show recalculates the document and prints it.
func (s *session) show() error {
	result, err := s.svc.Calculate(s.ctx, s.request())
	if err != nil {
		return err
	}
	printState(s.out, s.tpl, result)
	return nil
}

func (s *session) setField(id, value string) error {
	if err := s.requireDocument(); err != nil {
		return err
	}
	field, ok := s.tpl.Field(id)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s", core.ErrUnknownField, id)
	case field.Type == core.FieldLineItems:
		return errors.New("use /add, /rm or /items to edit line items")
	case field.Derived():
		return fmt.Errorf("%w: %s", core.ErrDerivedField, field.Label)
	}
	s.draft.Fields[id] = value
	return s.show()
}

func (s *session) removeItem(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.draft.LineItems) {
		return fmt.Errorf("%w: item #%s", core.ErrLineItemNotFound, arg)
	}
	if len(s.draft.LineItems) == 1 {
		return core.ErrLastLineItem
	}
	s.draft.LineItems = append(s.draft.LineItems[:n-1], s.draft.LineItems[n:]...)
	return s.show()
}

// assist sends free text to the AI assistant and merges the non-empty values it
// returns into the current document.
func (s *session) assist(text string) error {
	if err := s.requireDocument(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "[AI] Processing...")
	result, err := s.svc.DraftFromText(s.ctx, app.AssistRequest{TemplateID: s.tpl.ID, Text: text})
	if err != nil {
		return err
	}
	for id, v := range result.Draft.Fields {
		if v != "" {
			s.draft.Fields[id] = v
		}
	}
	if len(result.Draft.LineItems) > 0 {
		s.draft.LineItems = result.Draft.LineItems
	}
	return s.show()
}
