package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps shippa settings in a TOML file, ~/.shippa/config.toml
// by default. Keys are dotted paths ("github.owner"); on disk they become
// nested tables. The file carries the publishing token, so it is written
// with 0600 permissions.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens the config file under dir, creating the directory
// if needed. An empty dir selects ~/.shippa.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".shippa")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		path:   filepath.Join(dir, "config.toml"),
		values: make(map[string]any),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the file into the flat dotted-key map. A missing file is
// an empty configuration, not an error.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var nested map[string]any
	if err := toml.Unmarshal(data, &nested); err != nil {
		return err
	}
	flatten("", nested, s.values)
	return nil
}

// GetString returns a string setting, or "" when absent or not a string.
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.lookup(key).(string)
	return v
}

// GetInt returns an integer setting, or 0 when absent or not an integer.
// TOML integers decode as int64.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.lookup(key).(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetBool returns a boolean setting, or false when absent or not a boolean.
func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.lookup(key).(bool)
	return v
}

func (s *ConfigStore) lookup(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stages a value under a dotted key. Call Save to persist.
func (s *ConfigStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Save writes all settings back as nested TOML tables with restricted
// file permissions.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	data, err := toml.Marshal(unflatten(s.values))
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// flatten folds nested tables into dotted keys: {"github": {"owner": x}}
// becomes {"github.owner": x}.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for key, value := range in {
		if prefix != "" {
			key = prefix + "." + key
		}
		if table, ok := value.(map[string]any); ok {
			flatten(key, table, out)
			continue
		}
		out[key] = value
	}
}

// unflatten is the inverse of flatten, rebuilding nested tables for a
// readable file layout.
func unflatten(in map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range in {
		parts := strings.Split(key, ".")
		table := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = value
	}
	return out
}
