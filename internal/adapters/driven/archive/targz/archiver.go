// Package targz builds gzip-compressed tar archives from staged
// release directories.
package targz

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// Ensure Archiver implements the interface.
var _ driven.Archiver = (*Archiver)(nil)

// Archiver creates .tar.gz archives.
type Archiver struct{}

// New creates a new tar.gz archiver.
func New() *Archiver {
	return &Archiver{}
}

// Create archives the contents of dir into dest. Paths inside the
// archive are relative to dir.
func (a *Archiver) Create(ctx context.Context, dir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	count := 0
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", dir, err)
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Debug("archived %d files from %s into %s", count, dir, dest)
	return nil
}
