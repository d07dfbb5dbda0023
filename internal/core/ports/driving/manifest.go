package driving

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
)

// ManifestService parses and validates the release input manifest.
type ManifestService interface {
	// Build parses the newline-delimited manifest text into a Manifest.
	// bumpValue is the optional post-release version bump instruction;
	// it is silently disabled when no file carries the v flag.
	// Fails fast on the first malformed line.
	Build(ctx context.Context, raw, bumpValue string) (*domain.Manifest, error)

	// Check validates all cross-file invariants of a built manifest.
	// Fails fast on the first violation.
	Check(ctx context.Context, m *domain.Manifest) error
}
