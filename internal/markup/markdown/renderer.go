// Package markdown renders GitHub-flavoured markdown documents.
package markdown

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/markup"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer handles markdown documents.
type Renderer struct{}

// New creates a new markdown renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns the markup format this renderer handles.
func (r *Renderer) Format() domain.MarkupFormat {
	return domain.FormatMarkdown
}

// ToGFM is the identity conversion: the input is already GFM.
func (r *Renderer) ToGFM(_ context.Context, text string) (string, error) {
	return text, nil
}

// ToPlain converts markdown to plain text with formatting removed.
func (r *Renderer) ToPlain(_ context.Context, text string) (string, error) {
	return markup.StripGFM(text), nil
}

// ToHTML converts markdown to a standalone HTML document.
func (r *Renderer) ToHTML(_ context.Context, text string, withTOC bool) (string, error) {
	return markup.RenderHTMLDocument(text, withTOC), nil
}
