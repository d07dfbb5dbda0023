package driven

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
)

// Renderer converts documents of one markup format into the derivative
// outputs the release pipeline publishes. Rendering is pure: output is a
// function of the input text only.
type Renderer interface {
	// Format returns the markup format this renderer handles.
	Format() domain.MarkupFormat

	// ToPlain converts markup to plain text.
	ToPlain(ctx context.Context, text string) (string, error)

	// ToHTML converts markup to a standalone HTML document.
	// When withTOC is set, a table of contents is prepended.
	ToHTML(ctx context.Context, text string, withTOC bool) (string, error)

	// ToGFM converts markup to GitHub-flavoured markdown.
	// For markdown input this is the identity conversion.
	ToGFM(ctx context.Context, text string) (string, error)
}

// RendererRegistry selects the renderer for a markup format.
type RendererRegistry interface {
	// For returns the renderer for a format.
	// Fails with domain.ErrInvalidInput for an unknown format.
	For(format domain.MarkupFormat) (Renderer, error)
}
