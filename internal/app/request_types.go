package app

import (
	"io"

	"invoice-generator/internal/core"
)

// DocumentRequest is a form submission: a template id plus field values and
// line items in the flat draft shape.
type DocumentRequest struct {
	TemplateID string         `json:"templateId"`
	Values     core.FormDraft `json:"values"`
}

// GenerateRequest asks for a document to be exported. Format defaults to pdf and
// FileName to "<Template Name>_<unix millis>".
type GenerateRequest struct {
	DocumentRequest
	Format   string `json:"format"`
	FileName string `json:"fileName"`
}

// RenameFileRequest is the input for RenameFile.
type RenameFileRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssistRequest is the input for DraftFromText.
type AssistRequest struct {
	TemplateID string `json:"templateId"`
	Text       string `json:"text"`
}

// AudioAssistRequest is the input for DraftFromAudio.
type AudioAssistRequest struct {
	TemplateID string
	Audio      io.Reader
	Filename   string
}
