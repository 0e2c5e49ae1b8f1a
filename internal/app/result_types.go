package app

import (
	"invoice-generator/internal/core"
	"invoice-generator/internal/store"
)

// TemplateSummary is a catalog entry without its HTML body.
type TemplateSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	SupportLineItems bool   `json:"supportLineItems"`
}

// TemplateListResult is returned by ListTemplates.
type TemplateListResult struct {
	Templates []TemplateSummary `json:"templates"`
}

// TemplateResult is returned by GetTemplate.
type TemplateResult struct {
	Template *core.Template `json:"template"`
}

// CalculationResult is returned by Calculate. Errors is empty when the form is
// ready to be generated.
type CalculationResult struct {
	State  core.FormState        `json:"state"`
	Errors core.ValidationErrors `json:"errors,omitempty"`
}

// PreviewResult is returned by Preview.
type PreviewResult struct {
	TemplateID string   `json:"templateId"`
	HTML       string   `json:"html"`
	Cached     bool     `json:"cached"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// GenerateResult is returned by Generate.
type GenerateResult struct {
	File store.GeneratedFile `json:"file"`
}

// FileListResult is returned by ListFiles.
type FileListResult struct {
	Files []store.GeneratedFile `json:"files"`
}

// DraftResult is returned by the assistant methods: the draft as the model
// produced it and the form state after applying it.
type DraftResult struct {
	Transcript string                `json:"transcript,omitempty"`
	Draft      core.FormDraft        `json:"draft"`
	State      core.FormState        `json:"state"`
	Errors     core.ValidationErrors `json:"errors,omitempty"`
}

// WordsResult is returned by AmountInWords.
type WordsResult struct {
	Amount float64 `json:"amount"`
	Words  string  `json:"words"`
}

// LintReport is returned by LintTemplates.
type LintReport struct {
	Valid   bool               `json:"valid"`
	Results []*core.LintResult `json:"results"`
}
