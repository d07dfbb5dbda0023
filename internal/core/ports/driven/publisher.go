package driven

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
)

// Publisher creates a release on the hosting provider and uploads the
// distributable archive as a release asset.
type Publisher interface {
	// Publish creates the release for tag with the given notes body and
	// uploads assetPath. Returns the release page URL.
	Publish(ctx context.Context, tag, notes, assetPath string) (string, error)
}

// VCS performs the version-control operations of a release run:
// the post-release development version bump commit.
type VCS interface {
	// CommitAll stages the given paths and commits them with message.
	CommitAll(ctx context.Context, paths []string, message string) error

	// Push pushes the current branch to the default remote.
	Push(ctx context.Context) error
}

// Archiver builds the distributable archive from a staged directory.
type Archiver interface {
	// Create archives the contents of dir into a single file at dest.
	Create(ctx context.Context, dir, dest string) error
}

// HistoryStore persists records of published releases.
type HistoryStore interface {
	// Save stores a release record.
	Save(ctx context.Context, release *domain.Release) error

	// Get retrieves a release by tag.
	// Returns nil and no error if no release with that tag was recorded.
	Get(ctx context.Context, tag string) (*domain.Release, error)

	// List returns the most recent releases, newest first.
	List(ctx context.Context, limit int) ([]domain.Release, error)
}
