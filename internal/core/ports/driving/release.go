package driving

import (
	"context"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
)

// ReleaseRequest describes one release run.
type ReleaseRequest struct {
	// Tag is the release tag (e.g., "v1.2.3").
	Tag string

	// ManifestText is the raw newline-delimited input-file manifest.
	ManifestText string

	// Dir is the project root the manifest paths are relative to.
	Dir string

	// BumpValue is the optional post-release development version bump.
	BumpValue string

	// SkipPublish stops the run after the archive is built.
	SkipPublish bool
}

// ReleaseResult reports what a release run produced.
type ReleaseResult struct {
	// Release is the recorded release, including the page URL when
	// publishing ran.
	Release domain.Release

	// WorkDir is the staging directory the archive was built from.
	WorkDir string

	// Bumped is true when the post-release version bump was applied.
	Bumped bool
}

// ReleasePlan describes the work a release run would perform.
type ReleasePlan struct {
	// Tag is the release tag.
	Tag string

	// ReleaseVersion is the version stamped into versioned files
	// (the tag without a leading "v").
	ReleaseVersion string

	// Files, Versioned and Docs mirror the validated manifest.
	Files     []string
	Versioned []string
	Docs      []string

	// Notes is the changelog body that would be published.
	Notes string

	// Publish is true when the run would publish a release.
	Publish bool

	// Bump is true when the run would apply a post-release bump.
	Bump bool
}

// ReleaseOrchestrator coordinates a full release run: validate, stage,
// rewrite versions, render docs, extract notes, archive, publish, record.
type ReleaseOrchestrator interface {
	// Run executes the release pipeline.
	// The first failure aborts the run; nothing partial is published.
	Run(ctx context.Context, req ReleaseRequest) (*ReleaseResult, error)

	// Plan validates the manifest and reports the work a run would
	// perform without staging, publishing or writing anything.
	Plan(ctx context.Context, req ReleaseRequest) (*ReleasePlan, error)
}

// HistoryService exposes the local record of published releases.
type HistoryService interface {
	// List returns the most recent releases, newest first.
	List(ctx context.Context, limit int) ([]domain.Release, error)

	// Get retrieves one release by tag.
	// Returns nil and no error when the tag was never recorded.
	Get(ctx context.Context, tag string) (*domain.Release, error)
}
