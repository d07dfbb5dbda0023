// Package fsys provides the local-disk implementation of the FileSystem
// port.
package fsys

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
)

// Ensure Local implements the interface.
var _ driven.FileSystem = (*Local)(nil)

// Local is the os-backed FileSystem. Relative paths resolve against the
// process working directory, matching how manifests are written.
type Local struct{}

// New creates a local filesystem adapter.
func New() *Local {
	return &Local{}
}

// IsRegularFile reports whether path names an existing regular file.
func (l *Local) IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile returns the full contents of a file.
func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the contents of a file, creating it if needed.
func (l *Local) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Copy copies a regular file to dst, creating parent directories and
// preserving the source permissions.
func (l *Local) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// TempDir creates a fresh staging directory under the system temp dir.
func (l *Local) TempDir(name string) (string, error) {
	dir := filepath.Join(os.TempDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
