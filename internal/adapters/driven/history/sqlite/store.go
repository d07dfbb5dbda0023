// Package sqlite persists release history in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The schema is managed
// through versioned migrations embedded in the migrations/ directory.
//
// By default, the database is stored at ~/.shippa/data/history.db
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/shippa-cli/internal/adapters/driven/history/sqlite/migrations"
	"github.com/custodia-labs/shippa-cli/internal/core/domain"
	"github.com/custodia-labs/shippa-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed release history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.shippa/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shippa", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores a release record.
func (s *Store) Save(ctx context.Context, release *domain.Release) error {
	if release == nil || release.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO releases (id, tag, notes, asset_path, url, published_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tag = excluded.tag,
			notes = excluded.notes,
			asset_path = excluded.asset_path,
			url = excluded.url,
			published_at = excluded.published_at
	`, release.ID, release.Tag, release.Notes, release.AssetPath, release.URL, release.PublishedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving release: %w", err)
	}
	return nil
}

// Get retrieves the most recent release recorded for tag.
// Returns nil and no error when the tag was never released.
func (s *Store) Get(ctx context.Context, tag string) (*domain.Release, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tag, notes, asset_path, url, published_at
		FROM releases WHERE tag = ?
		ORDER BY published_at DESC
		LIMIT 1
	`, tag)

	release, err := scanRelease(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil // Unreleased tag is not an error
	}
	return release, err
}

// List returns the most recent releases, newest first. A limit of zero
// or less returns all recorded releases.
func (s *Store) List(ctx context.Context, limit int) ([]domain.Release, error) {
	query := `
		SELECT id, tag, notes, asset_path, url, published_at
		FROM releases
		ORDER BY published_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying releases: %w", err)
	}
	defer rows.Close()

	var releases []domain.Release //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.Release
		var publishedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Tag, &r.Notes, &r.AssetPath, &r.URL, &publishedAt); err != nil {
			return nil, fmt.Errorf("scanning release: %w", err)
		}
		if publishedAt.Valid {
			r.PublishedAt = publishedAt.Time
		}
		releases = append(releases, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating releases: %w", err)
	}

	return releases, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// scanRelease scans a single release row.
func scanRelease(row *sql.Row) (*domain.Release, error) {
	var r domain.Release
	var publishedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Tag, &r.Notes, &r.AssetPath, &r.URL, &publishedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning release: %w", err)
	}
	if publishedAt.Valid {
		r.PublishedAt = publishedAt.Time
	}
	return &r, nil
}
