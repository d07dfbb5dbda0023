package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
)

// fakeFS is an in-memory driven.FileSystem for tests.
type fakeFS struct {
	files map[string][]byte
}

var _ driven.FileSystem = (*fakeFS)(nil)

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string][]byte)}
}

func (f *fakeFS) add(path, content string) *fakeFS {
	f.files[path] = []byte(content)
	return f
}

func (f *fakeFS) IsRegularFile(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return data, nil
}

func (f *fakeFS) WriteFile(path string, data []byte) error {
	f.files[path] = data
	return nil
}

func (f *fakeFS) Copy(src, dst string) error {
	data, ok := f.files[src]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, src)
	}
	f.files[dst] = append([]byte(nil), data...)
	return nil
}

func (f *fakeFS) TempDir(name string) (string, error) {
	dir := filepath.Join("/tmp", name)
	return dir, nil
}

// fakeRenderer records conversions without doing real markup work.
type fakeRenderer struct {
	format domain.MarkupFormat
}

var _ driven.Renderer = (*fakeRenderer)(nil)

func (r *fakeRenderer) Format() domain.MarkupFormat { return r.format }

func (r *fakeRenderer) ToPlain(_ context.Context, text string) (string, error) {
	return "plain:" + text, nil
}

func (r *fakeRenderer) ToHTML(_ context.Context, text string, withTOC bool) (string, error) {
	if withTOC {
		return "html+toc:" + text, nil
	}
	return "html:" + text, nil
}

func (r *fakeRenderer) ToGFM(_ context.Context, text string) (string, error) {
	if r.format == domain.FormatMarkdown {
		return text, nil
	}
	return "gfm:" + text, nil
}

// fakeRegistry serves fake renderers for both formats.
type fakeRegistry struct{}

var _ driven.RendererRegistry = (*fakeRegistry)(nil)

func (fakeRegistry) For(format domain.MarkupFormat) (driven.Renderer, error) {
	switch format {
	case domain.FormatOrg, domain.FormatMarkdown:
		return &fakeRenderer{format: format}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

// fakeArchiver records the archive it was asked to build.
type fakeArchiver struct {
	dir  string
	dest string
}

var _ driven.Archiver = (*fakeArchiver)(nil)

func (a *fakeArchiver) Create(_ context.Context, dir, dest string) error {
	a.dir = dir
	a.dest = dest
	return nil
}

// fakePublisher records the release it published.
type fakePublisher struct {
	tag   string
	notes string
	asset string
	err   error
}

var _ driven.Publisher = (*fakePublisher)(nil)

func (p *fakePublisher) Publish(_ context.Context, tag, notes, assetPath string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.tag = tag
	p.notes = notes
	p.asset = assetPath
	return "https://example.com/releases/" + tag, nil
}

// fakeVCS records commits and pushes.
type fakeVCS struct {
	committed []string
	message   string
	pushed    bool
}

var _ driven.VCS = (*fakeVCS)(nil)

func (v *fakeVCS) CommitAll(_ context.Context, paths []string, message string) error {
	v.committed = append(v.committed, paths...)
	v.message = message
	return nil
}

func (v *fakeVCS) Push(_ context.Context) error {
	v.pushed = true
	return nil
}

// fakeHistory stores releases in memory.
type fakeHistory struct {
	saved []domain.Release
}

var _ driven.HistoryStore = (*fakeHistory)(nil)

func (h *fakeHistory) Save(_ context.Context, release *domain.Release) error {
	h.saved = append(h.saved, *release)
	return nil
}

func (h *fakeHistory) Get(_ context.Context, tag string) (*domain.Release, error) {
	for i := range h.saved {
		if h.saved[i].Tag == tag {
			return &h.saved[i], nil
		}
	}
	return nil, nil
}

func (h *fakeHistory) List(_ context.Context, limit int) ([]domain.Release, error) {
	out := append([]domain.Release(nil), h.saved...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// manifestText joins lines into one raw manifest blob.
func manifestText(lines ...string) string {
	return strings.Join(lines, "\n")
}
