package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"

	"invoice-generator/internal/core"
)

var ErrEmptyResponse = errors.New("empty response from model")

// DraftService turns spoken or typed descriptions into form drafts.
type DraftService interface {
	DraftFromText(ctx context.Context, tpl *core.Template, transcript string) (*core.FormDraft, error)
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

type Assistant struct {
	client *openai.Client
	model  string
}

func NewAssistant(apiKey, model string, opts ...option.RequestOption) *Assistant {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	if model == "" {
		model = string(shared.ChatModelGPT4oMini)
	}
	return &Assistant{client: &client, model: model}
}

func (a *Assistant) DraftFromText(ctx context.Context, tpl *core.Template, transcript string) (*core.FormDraft, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	schemaMap, err := draftSchema(tpl)
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(a.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(draftPrompt(tpl, transcript)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "form_draft",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Field values extracted for a " + tpl.Name),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := cleanJSON(resp.OutputText())
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var draft core.FormDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	draft.Normalize()
	return &draft, nil
}

func (a *Assistant) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = "audio.m4a"
	}
	tr, err := a.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(audio, filename, ""),
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription error: %w", err)
	}
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func draftPrompt(tpl *core.Template, transcript string) string {
	var fields strings.Builder
	for _, f := range draftFields(tpl) {
		fmt.Fprintf(&fields, "- %s: %s", f.ID, f.Label)
		if f.Type == core.FieldDate {
			fields.WriteString(" (DD-MM-YYYY)")
		}
		if len(f.Options) > 0 {
			fmt.Fprintf(&fields, " (one of: %s)", strings.Join(f.Options, ", "))
		}
		fields.WriteString("\n")
	}

	items := ""
	if tpl.SupportLineItems {
		items = `
Line items go in "lineItems". Number their ids "1", "2", ... in the order mentioned.
Quantity and rate are plain numbers without currency symbols; copy the rate as spoken into "_rateInput".
Set "amount" to quantity multiplied by rate.`
	}

	return fmt.Sprintf(`Extract the details for a %s from the transcript below.
Fields:
%s
Rules:
1. Use an empty string for anything that is not mentioned.
2. Tax rates are numbers without the %% sign.
3. Dates use the DD-MM-YYYY format.%s

Transcript: %s`, tpl.Name, fields.String(), items, transcript)
}

// draftFields are the fields a person fills in: calculated fields and the
// line-item table are excluded.
func draftFields(tpl *core.Template) []core.TemplateField {
	var out []core.TemplateField
	for _, f := range tpl.Fields {
		if f.Derived() || f.Type == core.FieldLineItems {
			continue
		}
		out = append(out, f)
	}
	return out
}

// draftSchema builds the strict JSON schema for a template's draft: one string
// property per input field plus, for line-item templates, the lineItems array.
func draftSchema(tpl *core.Template) (map[string]any, error) {
	props := jsonschema.NewProperties()
	var required []string
	for _, f := range draftFields(tpl) {
		s := &jsonschema.Schema{Type: "string", Description: f.Label}
		if f.Type == core.FieldSelect && len(f.Options) > 0 {
			for _, o := range f.Options {
				s.Enum = append(s.Enum, o)
			}
			s.Enum = append(s.Enum, "")
		}
		props.Set(f.ID, s)
		required = append(required, f.ID)
	}
	if tpl.SupportLineItems {
		props.Set(core.LineItemsField, &jsonschema.Schema{
			Type:        "array",
			Description: "Items in the order they were mentioned",
			Items:       lineItemSchema(),
		})
		required = append(required, core.LineItemsField)
	}

	root := &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}

	schemaJSON, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}

func lineItemSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	s := reflector.Reflect(core.LineItem{})
	s.Version = ""
	return s
}

// cleanJSON strips markdown code fences from a model reply and, failing that,
// falls back to the outermost {...} span.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "{") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
