package domain

import (
	"fmt"
	"strings"
)

// Flag is a named boolean attribute attached to a manifest entry.
// The vocabulary is fixed; anything else fails parsing.
type Flag string

const (
	// FlagVersioned marks a file expected to contain a version-assignment
	// line, eligible for version-string rewriting.
	FlagVersioned Flag = "v"
	// FlagDoc marks a documentation source file (org-mode or markdown)
	// rendered into HTML and plaintext derivative outputs.
	FlagDoc Flag = "doc"
	// FlagTOC marks a doc file whose HTML output gets a table of contents.
	FlagTOC Flag = "toc"
)

// ParseFlag resolves a flag name case-insensitively.
// Unknown names fail with ErrUnknownFlag.
func ParseFlag(name string) (Flag, error) {
	switch Flag(strings.ToLower(name)) {
	case FlagVersioned:
		return FlagVersioned, nil
	case FlagDoc:
		return FlagDoc, nil
	case FlagTOC:
		return FlagTOC, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
}

// Entry is one parsed manifest line: a file path plus its flags.
// Flags are explicit booleans rather than a dynamic set so that a typo
// in a flag name can never silently create a new membership table.
type Entry struct {
	// Path is the input file path as written in the manifest.
	Path string

	// Versioned is true when the entry carries the v flag.
	Versioned bool

	// Doc is true when the entry carries the doc flag.
	Doc bool

	// TOC is true when the entry carries the toc flag.
	TOC bool
}

// Apply sets the boolean matching the given flag.
func (e *Entry) Apply(f Flag) {
	switch f {
	case FlagVersioned:
		e.Versioned = true
	case FlagDoc:
		e.Doc = true
	case FlagTOC:
		e.TOC = true
	}
}
