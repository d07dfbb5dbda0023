package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore(t *testing.T) {
	t.Run("creates the config directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", ".shippa")

		store, err := NewConfigStore(dir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("missing file is an empty configuration", func(t *testing.T) {
		store := newTestStore(t)

		assert.Empty(t, store.GetString("github.owner"))
		assert.Zero(t, store.GetInt("history.limit"))
		assert.False(t, store.GetBool("publish.skip"))
	})

	t.Run("unwritable directory", func(t *testing.T) {
		store, err := NewConfigStore("/dev/null/shippa")

		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("github = {{{"), 0600))

		store, err := NewConfigStore(dir)

		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestConfigStore_SetAndSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Set("github.owner", "custodia-labs")
	store.Set("github.repo", "shippa-cli")
	store.Set("github.token", "ghp_example_token_value")
	store.Set("publish.skip", true)
	store.Set("history.limit", 25)
	require.NoError(t, store.Save())

	// A fresh store sees the persisted settings through dotted keys.
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "custodia-labs", reopened.GetString("github.owner"))
	assert.Equal(t, "shippa-cli", reopened.GetString("github.repo"))
	assert.Equal(t, "ghp_example_token_value", reopened.GetString("github.token"))
	assert.True(t, reopened.GetBool("publish.skip"))
	assert.Equal(t, 25, reopened.GetInt("history.limit"))
}

func TestConfigStore_SaveWritesNestedTables(t *testing.T) {
	store := newTestStore(t)

	store.Set("github.owner", "custodia-labs")
	store.Set("github.repo", "shippa-cli")
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[github]")
	assert.Contains(t, string(data), "owner = 'custodia-labs'")
	assert.NotContains(t, string(data), "github.owner")
}

// The file holds the publishing token, so it must not be group or world
// readable.
func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)

	store.Set("github.token", "ghp_example_token_value")
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `[github]
owner = "custodia-labs"
repo = "shippa-cli"

[publish]
skip = true

[history]
dir = "/var/lib/shippa"
limit = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "custodia-labs", store.GetString("github.owner"))
	assert.Equal(t, "shippa-cli", store.GetString("github.repo"))
	assert.True(t, store.GetBool("publish.skip"))
	assert.Equal(t, "/var/lib/shippa", store.GetString("history.dir"))
	assert.Equal(t, 5, store.GetInt("history.limit"))
}

func TestConfigStore_TypeMismatchesReadAsZero(t *testing.T) {
	store := newTestStore(t)
	store.Set("github.owner", "custodia-labs")
	store.Set("history.limit", 10)
	store.Set("publish.skip", true)

	assert.Zero(t, store.GetInt("github.owner"))
	assert.Empty(t, store.GetString("history.limit"))
	assert.False(t, store.GetBool("github.owner"))
	assert.Empty(t, store.GetString("publish.skip"))
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store := newTestStore(t)

	store.Set("github.repo", "old-repo")
	store.Set("github.repo", "shippa-cli")
	require.NoError(t, store.Save())

	assert.Equal(t, "shippa-cli", store.GetString("github.repo"))
}

func TestConfigStore_SaveError(t *testing.T) {
	store := newTestStore(t)

	// A directory at the file path makes the write fail.
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	store.Set("github.owner", "custodia-labs")
	assert.Error(t, store.Save())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			store.Set("history.limit", id)
			store.GetInt("history.limit")
			store.GetString("github.owner")
			store.GetBool("publish.skip")
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	flat := map[string]any{
		"github.owner":  "custodia-labs",
		"github.repo":   "shippa-cli",
		"history.limit": int64(10),
		"verbose":       true,
	}

	rebuilt := make(map[string]any)
	flatten("", unflatten(flat), rebuilt)

	assert.Equal(t, flat, rebuilt)
}
