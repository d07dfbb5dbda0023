package domain

import "time"

// Release records one published release for the local history store.
type Release struct {
	// ID is the unique identifier for this release run.
	ID string

	// Tag is the release tag (e.g., "v1.2.3").
	Tag string

	// Notes is the changelog body published with the release.
	Notes string

	// AssetPath is the local path of the uploaded archive.
	AssetPath string

	// URL is the published release page, when publishing succeeded.
	URL string

	// PublishedAt is when the release was published.
	PublishedAt time.Time
}
