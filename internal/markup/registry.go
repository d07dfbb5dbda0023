package markup

import (
	"fmt"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.RendererRegistry = (*Registry)(nil)

// Registry selects renderers by markup format.
type Registry struct {
	renderers map[domain.MarkupFormat]driven.Renderer
}

// NewRegistry creates a registry over the given renderers.
func NewRegistry(renderers ...driven.Renderer) *Registry {
	byFormat := make(map[domain.MarkupFormat]driven.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &Registry{renderers: byFormat}
}

// For returns the renderer for a format.
func (r *Registry) For(format domain.MarkupFormat) (driven.Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no renderer for format %q", domain.ErrInvalidInput, format)
	}
	return renderer, nil
}
