// Package git runs version control operations through the git CLI.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// Ensure VCS implements the interface.
var _ driven.VCS = (*VCS)(nil)

// VCS commits and pushes through the git binary found on PATH.
type VCS struct {
	dir string
}

// New creates a VCS rooted at dir. An empty dir uses the process
// working directory.
func New(dir string) *VCS {
	return &VCS{dir: dir}
}

// CommitAll stages the given paths and commits them with message.
func (v *VCS) CommitAll(ctx context.Context, paths []string, message string) error {
	if len(paths) == 0 {
		return nil
	}

	addArgs := append([]string{"add", "--"}, paths...)
	if out, err := v.run(ctx, addArgs...); err != nil {
		return fmt.Errorf("git add: %w: %s", err, out)
	}

	if out, err := v.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w: %s", err, out)
	}
	logger.Debug("committed %d path(s): %s", len(paths), message)
	return nil
}

// Push pushes the current branch to its upstream.
func (v *VCS) Push(ctx context.Context) error {
	if out, err := v.run(ctx, "push"); err != nil {
		return fmt.Errorf("git push: %w: %s", err, out)
	}
	logger.Debug("pushed to upstream")
	return nil
}

// run executes git with args and returns trimmed combined output.
func (v *VCS) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = v.dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
