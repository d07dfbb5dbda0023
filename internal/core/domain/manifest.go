package domain

import (
	"path/filepath"
	"strings"
)

// Manifest is the full parsed release input: the distinct set of file
// paths and, per flag, the subset of paths carrying that flag.
// It is built once from the raw manifest text, validated once, and
// immutable thereafter within a run.
type Manifest struct {
	// Files holds every distinct input path, in first-seen order.
	Files []string

	// Versioned is the subset of Files carrying the v flag.
	Versioned []string

	// Docs is the subset of Files carrying the doc flag.
	Docs []string

	// TOC is the subset of Files carrying the toc flag.
	TOC []string

	// BumpValue is the post-release development version bump instruction.
	// Empty when no bump was requested, or when the instruction was
	// silently disabled because no file carries the v flag.
	BumpValue string
}

// Has reports whether path is listed in the manifest.
func (m *Manifest) Has(path string) bool {
	return contains(m.Files, path)
}

// IsVersioned reports whether path carries the v flag.
func (m *Manifest) IsVersioned(path string) bool {
	return contains(m.Versioned, path)
}

// IsDoc reports whether path carries the doc flag.
func (m *Manifest) IsDoc(path string) bool {
	return contains(m.Docs, path)
}

// WantsTOC reports whether path carries the toc flag.
func (m *Manifest) WantsTOC(path string) bool {
	return contains(m.TOC, path)
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

// Stem returns a path with its final extension removed.
// "docs/README.org" -> "docs/README"; "Makefile" -> "Makefile".
func Stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Ext returns the final extension of a path without the leading dot.
// "README.org" -> "org"; "Makefile" -> "".
func Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
