package driven

// ConfigStore persists user-level settings: the publishing repository
// and token under github.*, and optional pipeline defaults such as
// publish.skip, history.dir and history.limit.
type ConfigStore interface {
	// GetString returns a string setting, or "" when the key is absent
	// or holds another type.
	GetString(key string) string

	// GetInt returns an integer setting, or 0 when the key is absent
	// or holds another type.
	GetInt(key string) int

	// GetBool returns a boolean setting, or false when the key is
	// absent or holds another type.
	GetBool(key string) bool

	// Set stages a value under a dotted key. Nothing is written until
	// Save is called.
	Set(key string, value any)

	// Save persists all staged settings to storage.
	Save() error

	// Path returns the location of the backing file.
	Path() string
}
