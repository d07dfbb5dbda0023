package driving

import "context"

// NotesService extracts release notes for a tag from a changelog document.
type NotesService interface {
	// Extract locates a changelog in dir (CHANGELOG.org first, then
	// CHANGELOG.md) and returns the body of the section whose heading
	// contains tag. Returns empty string when no candidate matches.
	Extract(ctx context.Context, dir, tag string) (string, error)
}
