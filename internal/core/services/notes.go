package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// Ensure NotesService implements the interface.
var _ driving.NotesService = (*NotesService)(nil)

// changelogCandidate pairs a changelog filename with its format.
// Candidates are tried in order; the first that yields a non-empty body
// wins. In practice only one of the two files exists.
type changelogCandidate struct {
	name   string
	format domain.MarkupFormat
}

var changelogCandidates = []changelogCandidate{
	{name: "CHANGELOG.org", format: domain.FormatOrg},
	{name: "CHANGELOG.md", format: domain.FormatMarkdown},
}

// NotesService extracts release notes for a tag from a changelog document.
type NotesService struct {
	fs        driven.FileSystem
	renderers driven.RendererRegistry
}

// NewNotesService creates a notes service.
func NewNotesService(fs driven.FileSystem, renderers driven.RendererRegistry) *NotesService {
	return &NotesService{fs: fs, renderers: renderers}
}

// Extract locates a changelog in dir and returns the body of the section
// whose first heading contains tag. The tag match is an unanchored
// substring test: a tag appearing inside an unrelated heading matches
// too. That is long-standing behaviour, kept as-is.
func (s *NotesService) Extract(ctx context.Context, dir, tag string) (string, error) {
	for _, c := range changelogCandidates {
		path := filepath.Join(dir, c.name)
		if !s.fs.IsRegularFile(path) {
			continue
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return "", err
		}

		body, err := s.extract(ctx, c.format, string(data), tag)
		if err != nil {
			return "", err
		}
		if body != "" {
			logger.Debug("release notes for %s found in %s", tag, path)
			return body, nil
		}
	}

	logger.Debug("no release notes found for %s in %s", tag, dir)
	return "", nil
}

// extract pulls the note body for tag out of one changelog document.
func (s *NotesService) extract(ctx context.Context, format domain.MarkupFormat, text, tag string) (string, error) {
	lines := strings.Split(text, "\n")

	heads := scanHeadings(format, lines)
	if len(heads) == 0 || !strings.Contains(heads[0].Text, tag) {
		return "", nil
	}

	r := domain.NotesRange{Start: heads[0].Line + 1, End: len(lines) - 1}
	if len(heads) > 1 {
		r.End = heads[1].Line - 1
	}
	if r.Empty() {
		return "", nil
	}
	body := strings.Join(lines[r.Start:r.End+1], "\n")

	if format == domain.FormatOrg {
		renderer, err := s.renderers.For(format)
		if err != nil {
			return "", err
		}
		return renderer.ToGFM(ctx, body)
	}

	// Markdown bodies are already in the output format; only leading
	// blank lines are stripped.
	return stripLeadingBlankLines(body), nil
}

// scanHeadings collects at most the first two top-level headings of a
// document: lines beginning with the format's marker followed by a space.
func scanHeadings(format domain.MarkupFormat, lines []string) []domain.Heading {
	marker := format.Marker()

	var heads []domain.Heading
	for i, line := range lines {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		heads = append(heads, domain.Heading{Line: i, Text: line})
		if len(heads) == 2 {
			break
		}
	}
	return heads
}

// stripLeadingBlankLines removes blank lines from the start of a body.
func stripLeadingBlankLines(body string) string {
	lines := strings.Split(body, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return strings.Join(lines[i:], "\n")
}
