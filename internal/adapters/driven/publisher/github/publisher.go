// Package github publishes releases through the GitHub API.
package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shippa-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Publisher implements the interface.
var _ driven.Publisher = (*Publisher)(nil)

// Publisher creates GitHub releases and uploads the release asset.
type Publisher struct {
	gh          *gh.Client
	owner       string
	repo        string
	token       string
	rateLimiter *RateLimiter
}

// NewPublisher creates a publisher for owner/repo authenticating with a
// personal access token.
func NewPublisher(owner, repo, token string) *Publisher {
	return &Publisher{
		owner:       owner,
		repo:        repo,
		token:       token,
		rateLimiter: NewRateLimiter(),
	}
}

// ensureClient initializes the go-github client if not already done.
func (p *Publisher) ensureClient(ctx context.Context) {
	if p.gh != nil {
		return
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: p.token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	p.gh = gh.NewClient(tc)
}

// Publish creates the release for tag with the given notes and uploads
// assetPath as a release asset. Returns the release page URL.
func (p *Publisher) Publish(ctx context.Context, tag, notes, assetPath string) (string, error) {
	p.ensureClient(ctx)

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	release := &gh.RepositoryRelease{
		TagName: gh.Ptr(tag),
		Name:    gh.Ptr(tag),
		Body:    gh.Ptr(notes),
	}
	created, resp, err := p.gh.Repositories.CreateRelease(ctx, p.owner, p.repo, release)
	if err != nil {
		return "", fmt.Errorf("creating release %s: %w", tag, err)
	}
	p.updateRateLimit(resp)
	logger.Debug("created release %s (id %d)", tag, created.GetID())

	if assetPath != "" {
		if err := p.uploadAsset(ctx, created.GetID(), assetPath); err != nil {
			return "", err
		}
	}

	return created.GetHTMLURL(), nil
}

// uploadAsset attaches the archive to an existing release.
func (p *Publisher) uploadAsset(ctx context.Context, releaseID int64, assetPath string) error {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	f, err := os.Open(assetPath)
	if err != nil {
		return fmt.Errorf("opening asset %s: %w", assetPath, err)
	}
	defer f.Close()

	opts := &gh.UploadOptions{Name: filepath.Base(assetPath)}
	asset, resp, err := p.gh.Repositories.UploadReleaseAsset(ctx, p.owner, p.repo, releaseID, opts, f)
	if err != nil {
		return fmt.Errorf("uploading asset %s: %w", assetPath, err)
	}
	p.updateRateLimit(resp)
	logger.Debug("uploaded asset %s (id %d)", asset.GetName(), asset.GetID())
	return nil
}

// updateRateLimit feeds response headers to the rate limiter.
func (p *Publisher) updateRateLimit(resp *gh.Response) {
	if resp == nil {
		return
	}
	p.rateLimiter.UpdateFromResponse(resp.Response)
}
