package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

// Ensure ReleaseOrchestrator implements the interface.
var _ driving.ReleaseOrchestrator = (*ReleaseOrchestrator)(nil)

// ReleaseOrchestrator coordinates a full release run.
type ReleaseOrchestrator struct {
	manifests driving.ManifestService
	notes     driving.NotesService
	rewriter  *VersionRewriter
	fs        driven.FileSystem
	renderers driven.RendererRegistry
	archiver  driven.Archiver
	publisher driven.Publisher
	vcs       driven.VCS
	history   driven.HistoryStore
}

// NewReleaseOrchestrator creates a release orchestrator.
// Publisher, vcs and history are optional - if nil, publishing, the bump
// commit and history recording are skipped respectively.
func NewReleaseOrchestrator(
	manifests driving.ManifestService,
	notes driving.NotesService,
	rewriter *VersionRewriter,
	fs driven.FileSystem,
	renderers driven.RendererRegistry,
	archiver driven.Archiver,
	publisher driven.Publisher,
	vcs driven.VCS,
	history driven.HistoryStore,
) *ReleaseOrchestrator {
	return &ReleaseOrchestrator{
		manifests: manifests,
		notes:     notes,
		rewriter:  rewriter,
		fs:        fs,
		renderers: renderers,
		archiver:  archiver,
		publisher: publisher,
		vcs:       vcs,
		history:   history,
	}
}

// Plan validates the manifest and reports the work a run would perform
// without staging, publishing or writing anything.
func (o *ReleaseOrchestrator) Plan(ctx context.Context, req driving.ReleaseRequest) (*driving.ReleasePlan, error) {
	if req.Tag == "" {
		return nil, fmt.Errorf("%w: empty release tag", domain.ErrInvalidInput)
	}

	manifest, err := o.manifests.Build(ctx, req.ManifestText, req.BumpValue)
	if err != nil {
		return nil, err
	}
	if err := o.manifests.Check(ctx, manifest); err != nil {
		return nil, err
	}

	notes, err := o.notes.Extract(ctx, req.Dir, req.Tag)
	if err != nil {
		return nil, err
	}

	return &driving.ReleasePlan{
		Tag:            req.Tag,
		ReleaseVersion: strings.TrimPrefix(req.Tag, "v"),
		Files:          manifest.Files,
		Versioned:      manifest.Versioned,
		Docs:           manifest.Docs,
		Notes:          notes,
		Publish:        o.publisher != nil && !req.SkipPublish,
		Bump:           manifest.BumpValue != "",
	}, nil
}

// Run executes the release pipeline. The first failure aborts the run;
// a partially created work directory may remain but is never published.
func (o *ReleaseOrchestrator) Run(ctx context.Context, req driving.ReleaseRequest) (*driving.ReleaseResult, error) {
	if req.Tag == "" {
		return nil, fmt.Errorf("%w: empty release tag", domain.ErrInvalidInput)
	}

	logger.Section("manifest")
	manifest, err := o.manifests.Build(ctx, req.ManifestText, req.BumpValue)
	if err != nil {
		return nil, err
	}
	if err := o.manifests.Check(ctx, manifest); err != nil {
		return nil, err
	}

	logger.Section("stage")
	runID := uuid.New().String()
	workDir, err := o.fs.TempDir("shippa-" + runID)
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	for _, path := range manifest.Files {
		dest := filepath.Join(workDir, path)
		if !strings.HasPrefix(dest, workDir+string(filepath.Separator)) {
			return nil, fmt.Errorf("%w: %s escapes the staging directory", domain.ErrInvalidInput, path)
		}
		if err := o.fs.Copy(path, dest); err != nil {
			return nil, fmt.Errorf("staging %s: %w", path, err)
		}
	}
	logger.Info("staged %d files into %s", len(manifest.Files), workDir)

	// Stamp the release version into the staged copies only. The working
	// tree keeps its current version until the post-release bump.
	releaseVersion := strings.TrimPrefix(req.Tag, "v")
	staged := make([]string, len(manifest.Versioned))
	for i, path := range manifest.Versioned {
		staged[i] = filepath.Join(workDir, path)
	}
	if err := o.rewriter.Rewrite(ctx, staged, releaseVersion); err != nil {
		return nil, err
	}

	logger.Section("docs")
	if err := o.renderDocs(ctx, manifest, workDir); err != nil {
		return nil, err
	}

	logger.Section("notes")
	notes, err := o.notes.Extract(ctx, req.Dir, req.Tag)
	if err != nil {
		return nil, err
	}
	if notes == "" {
		logger.Warn("no changelog section found for %s, publishing without notes", req.Tag)
	}

	logger.Section("archive")
	assetPath := workDir + ".tar.gz"
	if err := o.archiver.Create(ctx, workDir, assetPath); err != nil {
		return nil, fmt.Errorf("building archive: %w", err)
	}

	release := domain.Release{
		ID:          runID,
		Tag:         req.Tag,
		Notes:       notes,
		AssetPath:   assetPath,
		PublishedAt: time.Now(),
	}

	if !req.SkipPublish {
		if o.publisher == nil {
			return nil, domain.ErrPublisherUnavailable
		}
		logger.Section("publish")
		url, err := o.publisher.Publish(ctx, req.Tag, notes, assetPath)
		if err != nil {
			return nil, fmt.Errorf("publishing release: %w", err)
		}
		release.URL = url
		logger.Info("published %s at %s", req.Tag, url)
	}

	if o.history != nil {
		if err := o.history.Save(ctx, &release); err != nil {
			return nil, fmt.Errorf("recording release: %w", err)
		}
	}

	result := &driving.ReleaseResult{Release: release, WorkDir: workDir}

	if manifest.BumpValue != "" {
		logger.Section("bump")
		if err := o.bump(ctx, manifest); err != nil {
			return nil, err
		}
		result.Bumped = true
	}

	return result, nil
}

// renderDocs renders each doc file in the staged tree to its HTML and
// plaintext sibling outputs.
func (o *ReleaseOrchestrator) renderDocs(ctx context.Context, manifest *domain.Manifest, workDir string) error {
	for _, path := range manifest.Docs {
		format := domain.FormatMarkdown
		if domain.Ext(path) == "org" {
			format = domain.FormatOrg
		}

		renderer, err := o.renderers.For(format)
		if err != nil {
			return err
		}

		stagedPath := filepath.Join(workDir, path)
		data, err := o.fs.ReadFile(stagedPath)
		if err != nil {
			return fmt.Errorf("reading staged doc %s: %w", path, err)
		}
		text := string(data)

		html, err := renderer.ToHTML(ctx, text, manifest.WantsTOC(path))
		if err != nil {
			return fmt.Errorf("rendering %s to HTML: %w", path, err)
		}
		plain, err := renderer.ToPlain(ctx, text)
		if err != nil {
			return fmt.Errorf("rendering %s to plaintext: %w", path, err)
		}

		stem := domain.Stem(stagedPath)
		if err := o.fs.WriteFile(stem+".html", []byte(html)); err != nil {
			return fmt.Errorf("writing HTML for %s: %w", path, err)
		}
		if err := o.fs.WriteFile(stem, []byte(plain)); err != nil {
			return fmt.Errorf("writing plaintext for %s: %w", path, err)
		}
		logger.Debug("rendered %s (%s, toc=%v)", path, format, manifest.WantsTOC(path))
	}
	return nil
}

// bump applies the post-release development version bump to the working
// tree and commits it when a VCS is configured.
func (o *ReleaseOrchestrator) bump(ctx context.Context, manifest *domain.Manifest) error {
	if err := o.rewriter.Rewrite(ctx, manifest.Versioned, manifest.BumpValue); err != nil {
		return err
	}
	if o.vcs == nil {
		logger.Warn("no VCS configured, bump to %s left uncommitted", manifest.BumpValue)
		return nil
	}

	message := fmt.Sprintf("Bump version to %s", manifest.BumpValue)
	if err := o.vcs.CommitAll(ctx, manifest.Versioned, message); err != nil {
		return fmt.Errorf("committing version bump: %w", err)
	}
	if err := o.vcs.Push(ctx); err != nil {
		return fmt.Errorf("pushing version bump: %w", err)
	}
	return nil
}
