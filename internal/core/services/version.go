package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// versionAssignment matches a shell-style assignment line whose variable
// name is one or more uppercase words joined by underscores and ending in
// _VERSION, with a non-empty value. E.g. "MY_VERSION=1.2.3".
// Submatch 1 is the variable name, submatch 2 the value.
var versionAssignment = regexp.MustCompile(`(?m)^([A-Z]+(?:_[A-Z]+)*_VERSION)=(.+)$`)

// VersionRewriter rewrites version-assignment lines in versioned files.
// It is used both for stamping the release version into the staged tree
// and for the post-release development bump.
type VersionRewriter struct {
	fs driven.FileSystem
}

// NewVersionRewriter creates a rewriter backed by fs.
func NewVersionRewriter(fs driven.FileSystem) *VersionRewriter {
	return &VersionRewriter{fs: fs}
}

// Rewrite replaces the first version-assignment match in each file with
// the same variable name and newValue. Files are rewritten in place.
func (v *VersionRewriter) Rewrite(_ context.Context, paths []string, newValue string) error {
	for _, path := range paths {
		data, err := v.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}

		loc := versionAssignment.FindSubmatchIndex(data)
		if loc == nil {
			return fmt.Errorf("%w: %s", domain.ErrVersionPatternMissing, path)
		}

		// Splice newValue over the old value, keeping the variable name.
		out := make([]byte, 0, len(data)+len(newValue))
		out = append(out, data[:loc[4]]...)
		out = append(out, newValue...)
		out = append(out, data[loc[5]:]...)

		if err := v.fs.WriteFile(path, out); err != nil {
			return fmt.Errorf("rewriting %s: %w", path, err)
		}
		logger.Debug("rewrote %s to version %s (variable %s)",
			path, newValue, string(data[loc[2]:loc[3]]))
	}
	return nil
}
