package driven

// FileSystem abstracts the read/write file operations the release
// pipeline performs. Manifest validation only needs the read side;
// staging and version rewriting use the write side.
type FileSystem interface {
	// IsRegularFile reports whether path names an existing regular file.
	IsRegularFile(path string) bool

	// ReadFile returns the full contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the contents of a file, creating it if needed.
	WriteFile(path string, data []byte) error

	// Copy copies a regular file to dst, creating parent directories.
	// File permissions are preserved.
	Copy(src, dst string) error

	// TempDir creates a fresh directory for staging and returns its path.
	TempDir(name string) (string, error)
}
