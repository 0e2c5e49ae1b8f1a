package app

import (
	"context"
	"errors"
	"io"

	"invoice-generator/internal/store"
)

var (
	// ErrInvalidRequest marks input the caller must fix (bad ids, amounts, formats).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrAIUnavailable is returned by the assistant methods when no model is configured.
	ErrAIUnavailable = errors.New("AI assistant is not configured")
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ListTemplates returns the available document templates in display order.
	ListTemplates(ctx context.Context) (*TemplateListResult, error)

	// GetTemplate returns one template, or an error wrapping core.ErrTemplateNotFound.
	GetTemplate(ctx context.Context, id string) (*TemplateResult, error)

	// Calculate applies the submitted values to a fresh form and returns the form
	// state with every derived field filled in, plus any validation problems.
	Calculate(ctx context.Context, req DocumentRequest) (*CalculationResult, error)

	// Preview renders the document as HTML. Previews are cached by content when a
	// cache is configured.
	Preview(ctx context.Context, req DocumentRequest) (*PreviewResult, error)

	// Generate validates the form, exports it to a file and records it in the file
	// history. A form that fails validation returns core.ValidationErrors.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// ListFiles returns the generated-file history, newest first.
	ListFiles(ctx context.Context) (*FileListResult, error)

	// OpenFile returns a generated file's metadata and contents. The caller closes the reader.
	OpenFile(ctx context.Context, id string) (*store.GeneratedFile, io.ReadCloser, error)

	// RenameFile changes a generated file's name on disk and in the history.
	RenameFile(ctx context.Context, req RenameFileRequest) (*store.GeneratedFile, error)

	// DeleteFile removes a generated file and its history record.
	DeleteFile(ctx context.Context, id string) error

	// DraftFromText asks the AI assistant to fill a form from a free-text description.
	DraftFromText(ctx context.Context, req AssistRequest) (*DraftResult, error)

	// DraftFromAudio transcribes a voice note and fills a form from the transcript.
	DraftFromAudio(ctx context.Context, req AudioAssistRequest) (*DraftResult, error)

	// AmountInWords spells an amount the way documents print it.
	AmountInWords(ctx context.Context, amount string) (*WordsResult, error)

	// LintTemplates statically checks every template in the catalog.
	LintTemplates(ctx context.Context) (*LintReport, error)
}
