package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"invoice-generator/internal/ai"
	"invoice-generator/internal/cache"
	"invoice-generator/internal/core"
	"invoice-generator/internal/export"
	"invoice-generator/internal/obs"
	"invoice-generator/internal/store"
)

// Options tunes rendering and supplies the clock used for default file names.
type Options struct {
	EscapeHTML bool
	Now        func() time.Time
}

type appService struct {
	catalog   core.Catalog
	files     store.FileStore
	output    *export.Output
	previews  *cache.PreviewCache
	assistant ai.DraftService
	metrics   *obs.Metrics
	exporters map[export.Format]export.Exporter
	opts      Options
}

// NewAppService constructs an appService that satisfies ApplicationService.
// previews, assistant and metrics may be nil.
func NewAppService(
	catalog core.Catalog,
	files store.FileStore,
	output *export.Output,
	previews *cache.PreviewCache,
	assistant ai.DraftService,
	metrics *obs.Metrics,
	opts Options,
) ApplicationService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &appService{
		catalog:   catalog,
		files:     files,
		output:    output,
		previews:  previews,
		assistant: assistant,
		metrics:   metrics,
		exporters: map[export.Format]export.Exporter{
			export.FormatPDF:  export.NewPDFExporter(),
			export.FormatXLSX: export.NewXLSXExporter(),
			export.FormatHTML: export.NewHTMLExporter(),
		},
		opts: opts,
	}
}

func (s *appService) renderOptions() core.RenderOptions {
	return core.RenderOptions{EscapeHTML: s.opts.EscapeHTML}
}

func (s *appService) ListTemplates(ctx context.Context) (*TemplateListResult, error) {
	list := s.catalog.List()
	out := make([]TemplateSummary, len(list))
	for i, t := range list {
		out[i] = TemplateSummary{ID: t.ID, Name: t.Name, Description: t.Description, SupportLineItems: t.SupportLineItems}
	}
	return &TemplateListResult{Templates: out}, nil
}

func (s *appService) GetTemplate(ctx context.Context, id string) (*TemplateResult, error) {
	tpl, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return &TemplateResult{Template: tpl}, nil
}

// buildForm starts a form for the request's template and applies its values.
func (s *appService) buildForm(req DocumentRequest) (*core.Form, error) {
	tpl, err := s.catalog.Get(req.TemplateID)
	if err != nil {
		return nil, err
	}
	f := core.NewForm(tpl)
	draft := req.Values
	draft.Normalize()
	if err := f.Apply(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return f, nil
}

func validationErrors(f *core.Form) (core.ValidationErrors, error) {
	err := f.Validate()
	if err == nil {
		return nil, nil
	}
	var verrs core.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, nil
	}
	return nil, err
}

func (s *appService) Calculate(ctx context.Context, req DocumentRequest) (*CalculationResult, error) {
	f, err := s.buildForm(req)
	if err != nil {
		return nil, err
	}
	verrs, err := validationErrors(f)
	if err != nil {
		return nil, err
	}
	return &CalculationResult{State: f.State(), Errors: verrs}, nil
}

func (s *appService) Preview(ctx context.Context, req DocumentRequest) (*PreviewResult, error) {
	f, err := s.buildForm(req)
	if err != nil {
		return nil, err
	}
	opts := s.renderOptions()
	tplID := f.Template().ID

	key, err := cache.PreviewKey(f.State(), opts)
	if err != nil {
		return nil, err
	}
	if html, ok, err := s.previews.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("template", tplID).Msg("preview cache read failed")
	} else if ok {
		s.metrics.CacheHit()
		return &PreviewResult{TemplateID: tplID, HTML: html, Cached: true, Unresolved: core.UnresolvedPlaceholders(html)}, nil
	}

	html := f.Render(opts)
	s.metrics.Rendered(tplID)
	if err := s.previews.Set(ctx, key, html); err != nil {
		log.Warn().Err(err).Str("template", tplID).Msg("preview cache write failed")
	}
	return &PreviewResult{TemplateID: tplID, HTML: html, Unresolved: core.UnresolvedPlaceholders(html)}, nil
}

func (s *appService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	format, err := export.ParseFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	exp, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: no exporter for %s", ErrInvalidRequest, format)
	}

	f, err := s.buildForm(req.DocumentRequest)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	tpl := f.Template()
	name := strings.TrimSpace(req.FileName)
	if name == "" {
		name = export.DefaultFileName(tpl, s.opts.Now())
	}

	path, err := s.output.Write(name, exp, export.DocumentFromForm(f, s.renderOptions()))
	if err != nil {
		return nil, err
	}

	file := &store.GeneratedFile{
		TemplateID: tpl.ID,
		FileName:   name,
		FilePath:   path,
		Format:     string(format),
		GrandTotal: documentTotal(f),
		CreatedAt:  s.opts.Now().UTC(),
	}
	if err := s.files.Save(ctx, file); err != nil {
		if rmErr := s.output.Remove(path); rmErr != nil {
			log.Error().Err(rmErr).Str("path", path).Msg("failed to clean up generated file")
		}
		return nil, fmt.Errorf("failed to record generated file: %w", err)
	}

	s.metrics.Exported(tpl.ID, string(format))
	log.Info().Str("template", tpl.ID).Str("format", string(format)).Str("file", path).Msg("document generated")
	return &GenerateResult{File: *file}, nil
}

// documentTotal is the amount a document is for: the invoice grand total or the
// receipt amount.
func documentTotal(f *core.Form) decimal.Decimal {
	if f.Template().SupportLineItems {
		return decimal.NewFromFloat(f.Summary().GrandTotal).Round(2)
	}
	if _, ok := f.Template().Field("amount"); ok {
		return decimal.NewFromFloat(core.ParseAmount(f.Value("amount"))).Round(2)
	}
	return decimal.Zero
}

func (s *appService) ListFiles(ctx context.Context) (*FileListResult, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, err
	}
	return &FileListResult{Files: files}, nil
}

func parseFileID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: file id %q", ErrInvalidRequest, id)
	}
	return u, nil
}

func (s *appService) OpenFile(ctx context.Context, id string) (*store.GeneratedFile, io.ReadCloser, error) {
	fileID, err := parseFileID(id)
	if err != nil {
		return nil, nil, err
	}
	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.output.Open(file.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", file.FilePath, err)
	}
	return file, rc, nil
}

func (s *appService) RenameFile(ctx context.Context, req RenameFileRequest) (*store.GeneratedFile, error) {
	fileID, err := parseFileID(req.ID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, store.ErrEmptyFileName
	}

	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	newPath, err := s.output.Rename(file.FilePath, name)
	if err != nil {
		return nil, err
	}
	renamed, err := s.files.Rename(ctx, fileID, name, newPath)
	if err != nil {
		if _, mvErr := s.output.Rename(newPath, file.FileName); mvErr != nil {
			log.Error().Err(mvErr).Str("path", newPath).Msg("failed to restore renamed file")
		}
		return nil, err
	}
	return renamed, nil
}

func (s *appService) DeleteFile(ctx context.Context, id string) error {
	fileID, err := parseFileID(id)
	if err != nil {
		return err
	}
	file, err := s.files.Get(ctx, fileID)
	if err != nil {
		return err
	}
	// File first: a failed removal leaves the record in place.
	if err := s.output.Remove(file.FilePath); err != nil {
		return err
	}
	if _, err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}
	return nil
}

func (s *appService) DraftFromText(ctx context.Context, req AssistRequest) (*DraftResult, error) {
	if s.assistant == nil {
		return nil, ErrAIUnavailable
	}
	tpl, err := s.catalog.Get(req.TemplateID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text is empty", ErrInvalidRequest)
	}

	draft, err := s.assistant.DraftFromText(ctx, tpl, req.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to draft form: %w", err)
	}

	f := core.NewForm(tpl)
	if err := f.Apply(*draft); err != nil {
		return nil, fmt.Errorf("failed to apply draft: %w", err)
	}
	verrs, err := validationErrors(f)
	if err != nil {
		return nil, err
	}
	return &DraftResult{Draft: *draft, State: f.State(), Errors: verrs}, nil
}

func (s *appService) DraftFromAudio(ctx context.Context, req AudioAssistRequest) (*DraftResult, error) {
	if s.assistant == nil {
		return nil, ErrAIUnavailable
	}
	if req.Audio == nil {
		return nil, fmt.Errorf("%w: audio is empty", ErrInvalidRequest)
	}
	if _, err := s.catalog.Get(req.TemplateID); err != nil {
		return nil, err
	}

	text, err := s.assistant.Transcribe(ctx, req.Audio, req.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	res, err := s.DraftFromText(ctx, AssistRequest{TemplateID: req.TemplateID, Text: text})
	if err != nil {
		return nil, err
	}
	res.Transcript = text
	return res, nil
}

func (s *appService) AmountInWords(ctx context.Context, amount string) (*WordsResult, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", ErrInvalidRequest, amount)
	}
	return &WordsResult{Amount: v, Words: core.AmountToWords(v)}, nil
}

func (s *appService) LintTemplates(ctx context.Context) (*LintReport, error) {
	report := &LintReport{Valid: true}
	for _, tpl := range s.catalog.List() {
		res := core.LintTemplate(&tpl)
		if !res.Valid {
			report.Valid = false
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}
