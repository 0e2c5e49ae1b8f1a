package export

import (
	"fmt"
	"io"
)

// HTMLExporter writes the rendered template body as a standalone HTML file.
type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

func (e *HTMLExporter) Format() Format { return FormatHTML }

func (e *HTMLExporter) ContentType() string { return htmlContentType }

func (e *HTMLExporter) Export(w io.Writer, doc Document) error {
	if doc.Template == nil {
		return fmt.Errorf("export: document has no template")
	}
	if doc.HTML == "" {
		return fmt.Errorf("export: document %q has no rendered body", doc.Template.ID)
	}
	if _, err := io.WriteString(w, doc.HTML); err != nil {
		return fmt.Errorf("failed to write html: %w", err)
	}
	return nil
}
