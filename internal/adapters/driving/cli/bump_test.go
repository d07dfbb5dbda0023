package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/fsys"
	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/services"
)

// mockVCS implements driven.VCS for testing.
type mockVCS struct {
	committed []string
	message   string
	pushed    bool
}

func (m *mockVCS) CommitAll(_ context.Context, paths []string, message string) error {
	m.committed = paths
	m.message = message
	return nil
}

func (m *mockVCS) Push(_ context.Context) error {
	m.pushed = true
	return nil
}

func setupBumpTest(manifests *mockManifestService, vcs *mockVCS) func() {
	oldManifests := manifestService
	oldRewriter := bumpRewriter
	oldVCS := bumpVCS
	manifestService = manifests
	bumpRewriter = services.NewVersionRewriter(fsys.New())
	bumpVCS = vcs
	return func() {
		manifestService = oldManifests
		bumpRewriter = oldRewriter
		bumpVCS = oldVCS
	}
}

func TestBumpCmd_Use(t *testing.T) {
	assert.Equal(t, "bump <value> [manifest-file]", bumpCmd.Use)
}

func TestBumpCmd_RewritesAndCommits(t *testing.T) {
	versionFile := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(versionFile, []byte("TOOL_VERSION=1.2.3\n"), 0o644))

	vcs := &mockVCS{}
	cleanup := setupBumpTest(&mockManifestService{
		manifest: &domain.Manifest{
			Files:     []string{versionFile},
			Versioned: []string{versionFile},
			BumpValue: "1.3.0-dev",
		},
	}, vcs)
	defer cleanup()

	path := writeManifestFile(t, "VERSION + v\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bump", "1.3.0-dev", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Set version to 1.3.0-dev in 1 file(s)")
	assert.Contains(t, buf.String(), "Committed and pushed.")

	data, readErr := os.ReadFile(versionFile)
	require.NoError(t, readErr)
	assert.Equal(t, "TOOL_VERSION=1.3.0-dev\n", string(data))

	assert.Equal(t, []string{versionFile}, vcs.committed)
	assert.Equal(t, "Bump version to 1.3.0-dev", vcs.message)
	assert.True(t, vcs.pushed)
}

func TestBumpCmd_NoCommitFlag(t *testing.T) {
	versionFile := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(versionFile, []byte("TOOL_VERSION=1.2.3\n"), 0o644))

	vcs := &mockVCS{}
	cleanup := setupBumpTest(&mockManifestService{
		manifest: &domain.Manifest{
			Files:     []string{versionFile},
			Versioned: []string{versionFile},
		},
	}, vcs)
	defer cleanup()

	path := writeManifestFile(t, "VERSION + v\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bump", "1.3.0-dev", path, "--no-commit"})
	defer func() {
		rootCmd.SetArgs(nil)
		bumpNoCommit = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Empty(t, vcs.committed)
	assert.False(t, vcs.pushed)

	data, readErr := os.ReadFile(versionFile)
	require.NoError(t, readErr)
	assert.Equal(t, "TOOL_VERSION=1.3.0-dev\n", string(data))
}

func TestBumpCmd_NoVersionedFiles(t *testing.T) {
	cleanup := setupBumpTest(&mockManifestService{
		manifest: &domain.Manifest{Files: []string{"LICENSE"}},
	}, &mockVCS{})
	defer cleanup()

	path := writeManifestFile(t, "LICENSE\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bump", "1.3.0-dev", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest marks no files as versioned")
}

func TestBumpCmd_MissingVersionPattern(t *testing.T) {
	plainFile := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(plainFile, []byte("no assignment here\n"), 0o644))

	cleanup := setupBumpTest(&mockManifestService{
		manifest: &domain.Manifest{
			Files:     []string{plainFile},
			Versioned: []string{plainFile},
		},
	}, &mockVCS{})
	defer cleanup()

	path := writeManifestFile(t, "VERSION + v\n")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bump", "1.3.0-dev", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVersionPatternMissing)
}

func TestBumpCmd_ServiceNotConfigured(t *testing.T) {
	oldManifests := manifestService
	manifestService = nil
	defer func() {
		manifestService = oldManifests
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bump", "1.3.0-dev", "any.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bump service not configured")
}
