package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// Ensure ManifestService implements the interface.
var _ driving.ManifestService = (*ManifestService)(nil)

// plusRuns matches a run of '+' separators together with any whitespace
// around or between them. Collapsing every match to a single '+' makes
// "a.txt  +  v ++ doc" and "a.txt+v+doc" equivalent.
var plusRuns = regexp.MustCompile(`\s*\+[+\s]*`)

// ManifestService parses the release manifest and validates its
// cross-file invariants.
type ManifestService struct {
	fs driven.FileSystem
}

// NewManifestService creates a manifest service backed by fs.
func NewManifestService(fs driven.FileSystem) *ManifestService {
	return &ManifestService{fs: fs}
}

// Build parses the newline-delimited manifest text into a Manifest.
// Parsing is fail-fast: the first malformed line aborts the build.
func (s *ManifestService) Build(_ context.Context, raw, bumpValue string) (*domain.Manifest, error) {
	m := &domain.Manifest{}

	for _, line := range strings.Split(raw, "\n") {
		entry, err := s.parseLine(line)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue // blank or pathless line
		}

		if m.Has(entry.Path) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateFile, entry.Path)
		}

		m.Files = append(m.Files, entry.Path)
		if entry.Versioned {
			m.Versioned = append(m.Versioned, entry.Path)
		}
		if entry.Doc {
			m.Docs = append(m.Docs, entry.Path)
		}
		if entry.TOC {
			m.TOC = append(m.TOC, entry.Path)
		}
	}

	// A bump instruction with nothing to rewrite is a no-op, not an error.
	if bumpValue != "" && len(m.Versioned) == 0 {
		logger.Debug("bump value %q disabled: no versioned files in manifest", bumpValue)
		bumpValue = ""
	}
	m.BumpValue = bumpValue

	logger.Debug("manifest built: %d files, %d versioned, %d docs, %d toc",
		len(m.Files), len(m.Versioned), len(m.Docs), len(m.TOC))
	return m, nil
}

// parseLine parses one manifest line into an entry.
// A nil entry with nil error means the line is skipped.
func (s *ManifestService) parseLine(line string) (*domain.Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	line = plusRuns.ReplaceAllString(line, "+")

	path, rest, hasFlags := strings.Cut(line, "+")
	if path == "" {
		return nil, nil // flags without a path, skip silently
	}

	entry := &domain.Entry{Path: path}
	if hasFlags {
		for _, name := range strings.Split(rest, "+") {
			if name == "" {
				continue
			}
			flag, err := domain.ParseFlag(name)
			if err != nil {
				return nil, err
			}
			entry.Apply(flag)
		}
	}

	if !s.fs.IsRegularFile(path) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}

	return entry, nil
}

// Check validates all cross-file invariants of a built manifest.
// The check order is fixed so that error reporting is deterministic.
func (s *ManifestService) Check(_ context.Context, m *domain.Manifest) error {
	if m == nil {
		return domain.ErrInvalidInput
	}

	// 1. Every doc file must be an org or md source.
	for _, path := range m.Docs {
		if ext := domain.Ext(path); ext != "org" && ext != "md" {
			return fmt.Errorf("%w: %s", domain.ErrInvalidDocExtension, path)
		}
	}

	// 2. Doc rendering derives one HTML and one plaintext output per stem,
	// so two docs sharing a stem would collide downstream.
	docByStem := make(map[string]string, len(m.Docs))
	for _, path := range m.Docs {
		stem := domain.Stem(path)
		if prev, ok := docByStem[stem]; ok {
			return fmt.Errorf("%w: %q is the stem of both %s and %s",
				domain.ErrDuplicateDocStem, stem, prev, path)
		}
		docByStem[stem] = path
	}

	// 3. An input file named like a derived doc output would be
	// overwritten when the doc renders.
	for _, path := range m.Files {
		ext := domain.Ext(path)
		if ext != "" && ext != "html" {
			continue
		}
		doc, ok := docByStem[domain.Stem(path)]
		if !ok || doc == path {
			continue
		}
		kind := "plaintext"
		if ext == "html" {
			kind = "html"
		}
		return fmt.Errorf("%w: rendering %s would overwrite %s (%s output)",
			domain.ErrDocOutputCollision, doc, path, kind)
	}

	// 4. A table of contents only exists for rendered docs.
	for _, path := range m.TOC {
		if !m.IsDoc(path) {
			return fmt.Errorf("%w: %s", domain.ErrTocRequiresDoc, path)
		}
	}

	// 5. Every versioned file must contain a version-assignment line.
	for _, path := range m.Versioned {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		if !versionAssignment.Match(data) {
			return fmt.Errorf("%w: %s", domain.ErrVersionPatternMissing, path)
		}
	}

	// 6. The bump value becomes part of a version assignment, so it can
	// never contain whitespace.
	if m.BumpValue != "" && strings.IndexFunc(m.BumpValue, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", domain.ErrInvalidBumpValue, m.BumpValue)
	}

	return nil
}
