package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/shippa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shippa-cli/internal/core/domain"
)

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	releases []domain.Release
	release  *domain.Release
	err      error

	gotLimit int
	gotTag   string
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.Release, error) {
	m.gotLimit = limit
	return m.releases, m.err
}

func (m *mockHistoryService) Get(_ context.Context, tag string) (*domain.Release, error) {
	m.gotTag = tag
	return m.release, m.err
}

func setupHistoryTest(mock *mockHistoryService) func() {
	oldHistory := historyService
	historyService = mock
	return func() {
		historyService = oldHistory
	}
}

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history [tag]", historyCmd.Use)
}

func TestHistoryCmd_ListsReleases(t *testing.T) {
	published := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	mock := &mockHistoryService{
		releases: []domain.Release{
			{Tag: "v1.1.0", PublishedAt: published, URL: "https://example.com/v1.1.0"},
			{Tag: "v1.0.0", PublishedAt: published.Add(-24 * time.Hour), URL: "https://example.com/v1.0.0"},
		},
	}
	cleanup := setupHistoryTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2026-08-01 12:30  v1.1.0  https://example.com/v1.1.0")
	assert.Contains(t, buf.String(), "v1.0.0")
	assert.Equal(t, 10, mock.gotLimit)
}

func TestHistoryCmd_LimitFlag(t *testing.T) {
	mock := &mockHistoryService{}
	cleanup := setupHistoryTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "--limit", "3"})
	defer func() {
		rootCmd.SetArgs(nil)
		historyLimit = 10
		historyCmd.Flags().Lookup("limit").Changed = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 3, mock.gotLimit)
}

func TestHistoryCmd_LimitFromConfig(t *testing.T) {
	mock := &mockHistoryService{}
	cleanup := setupHistoryTest(mock)
	defer cleanup()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.Set("history.limit", 3)

	oldStore := configStore
	configStore = store
	defer func() {
		configStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err = rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 3, mock.gotLimit)
}

func TestHistoryCmd_LimitFlagBeatsConfig(t *testing.T) {
	mock := &mockHistoryService{}
	cleanup := setupHistoryTest(mock)
	defer cleanup()

	store, err := configfile.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	store.Set("history.limit", 3)

	oldStore := configStore
	configStore = store
	defer func() {
		configStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "--limit", "2"})
	defer func() {
		rootCmd.SetArgs(nil)
		historyLimit = 10
		historyCmd.Flags().Lookup("limit").Changed = false
	}()

	err = rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 2, mock.gotLimit)
}

func TestHistoryCmd_EmptyHistory(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistoryService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No recorded releases.")
}

func TestHistoryCmd_ShowsSingleRelease(t *testing.T) {
	published := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	mock := &mockHistoryService{
		release: &domain.Release{
			Tag:         "v1.2.3",
			Notes:       "- fixed a thing",
			AssetPath:   "/tmp/work.tar.gz",
			URL:         "https://example.com/v1.2.3",
			PublishedAt: published,
		},
	}
	cleanup := setupHistoryTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "v1.2.3"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Tag: v1.2.3")
	assert.Contains(t, buf.String(), "Published: 2026-08-01T12:30:00Z")
	assert.Contains(t, buf.String(), "Archive: /tmp/work.tar.gz")
	assert.Contains(t, buf.String(), "- fixed a thing")
	assert.Equal(t, "v1.2.3", mock.gotTag)
}

func TestHistoryCmd_UnknownTag(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistoryService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history", "v9.9.9"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recorded release for v9.9.9")
}

func TestHistoryCmd_StoreError(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistoryService{err: errors.New("db locked")})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading history")
}

func TestHistoryCmd_ServiceNotConfigured(t *testing.T) {
	oldHistory := historyService
	historyService = nil
	defer func() {
		historyService = oldHistory
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "history service not configured")
}
