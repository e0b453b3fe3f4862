// Package sqlite provides a SQLite-backed build store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	sqlitemigrate "github.com/louisbranch/spore-warriors-resources/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
	"github.com/louisbranch/spore-warriors-resources/internal/services/compiler/storage"
	"github.com/louisbranch/spore-warriors-resources/internal/services/compiler/storage/sqlite/migrations"
)

// Store persists builds in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite build store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutBuild inserts one build. A build whose digest is already stored is left
// as is.
func (s *Store) PutBuild(ctx context.Context, build storage.Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	digest := strings.TrimSpace(build.Digest)
	if digest == "" {
		return fmt.Errorf("digest is required")
	}
	if len(build.Bundle) == 0 {
		return fmt.Errorf("bundle is required")
	}
	counts, err := encodeCounts(build.Counts)
	if err != nil {
		return err
	}
	createdAt := build.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO builds (digest, bundle, size, counts, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		digest,
		build.Bundle,
		len(build.Bundle),
		counts,
		strings.TrimSpace(build.Source),
		toMillis(createdAt),
	)
	if err != nil {
		if isBuildUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("put build: %w", err)
	}
	return nil
}

// GetBuild returns one build by digest.
func (s *Store) GetBuild(ctx context.Context, digest string) (storage.Build, error) {
	if err := ctx.Err(); err != nil {
		return storage.Build{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Build{}, fmt.Errorf("storage is not configured")
	}
	digest = strings.TrimSpace(digest)
	if digest == "" {
		return storage.Build{}, fmt.Errorf("digest is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT digest, bundle, counts, source, created_at
		   FROM builds
		  WHERE digest = ?`,
		digest,
	)

	var build storage.Build
	var counts string
	var createdAt int64
	if err := row.Scan(&build.Digest, &build.Bundle, &counts, &build.Source, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Build{}, storage.ErrNotFound
		}
		return storage.Build{}, fmt.Errorf("get build: %w", err)
	}
	decoded, err := decodeCounts(counts)
	if err != nil {
		return storage.Build{}, err
	}
	build.Counts = decoded
	build.CreatedAt = fromMillis(createdAt)
	return build, nil
}

// ListBuilds returns up to limit builds, most recent first.
func (s *Store) ListBuilds(ctx context.Context, limit int) ([]storage.BuildSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT digest, size, counts, source, created_at
		   FROM builds
		  ORDER BY created_at DESC, digest ASC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	summaries := make([]storage.BuildSummary, 0, limit)
	for rows.Next() {
		var summary storage.BuildSummary
		var counts string
		var createdAt int64
		if err := rows.Scan(&summary.Digest, &summary.Size, &counts, &summary.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("list builds: %w", err)
		}
		decoded, err := decodeCounts(counts)
		if err != nil {
			return nil, err
		}
		summary.Counts = decoded
		summary.CreatedAt = fromMillis(createdAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return summaries, nil
}

// encodeCounts stores counts as a JSON object keyed by document name.
func encodeCounts(counts [resource.KindCount]int) (string, error) {
	named := make(map[string]int, resource.KindCount)
	for _, kind := range resource.Kinds() {
		named[kind.String()] = counts[kind]
	}
	data, err := json.Marshal(named)
	if err != nil {
		return "", fmt.Errorf("encode counts: %w", err)
	}
	return string(data), nil
}

func decodeCounts(value string) ([resource.KindCount]int, error) {
	var counts [resource.KindCount]int
	var named map[string]int
	if err := json.Unmarshal([]byte(value), &named); err != nil {
		return counts, fmt.Errorf("decode counts: %w", err)
	}
	for name, n := range named {
		if kind, ok := resource.ParseKind(name); ok {
			counts[kind] = n
		}
	}
	return counts, nil
}

func isBuildUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "builds.digest")
}

var _ storage.BuildStore = (*Store)(nil)
