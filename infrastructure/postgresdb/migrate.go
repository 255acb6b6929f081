package postgresdb

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrChecksumMismatch is returned when an applied migration file was edited.
var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Migrate applies every pending *.sql file found in dir of migrations, in
// lexical order (use numeric prefixes: 001_xxx.sql, 002_xxx.sql). Applied
// versions are tracked with a checksum in schema_migrations. Forward only.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger, migrations fs.FS, dir string) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	if err := createMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	files, err := migrationFiles(migrations, dir)
	if err != nil {
		return fmt.Errorf("get migration files: %w", err)
	}

	for _, file := range files {
		applied, err := applyMigration(ctx, pool, migrations, path.Join(dir, file))
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		if applied {
			log.InfoContext(ctx, "migration applied", "version", file)
		} else {
			log.DebugContext(ctx, "migration skipped", "version", file, "reason", "already applied")
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// migrationFiles returns the sorted .sql file names directly inside dir.
func migrationFiles(migrations fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}

	slices.Sort(files)
	return files, nil
}

// applyMigration runs a single migration in a transaction unless it was
// already applied, in which case its checksum is verified.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, filePath string) (bool, error) {
	version := path.Base(filePath)

	content, err := fs.ReadFile(migrations, filePath)
	if err != nil {
		return false, fmt.Errorf("read migration file: %w", err)
	}
	checksum := fmt.Sprintf("%x", sha256.Sum256(content))

	var existing string
	err = pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", version).Scan(&existing)
	switch {
	case err == nil:
		if existing != checksum {
			return false, fmt.Errorf("%w: %s (expected: %s, got: %s)", ErrChecksumMismatch, version, existing, checksum)
		}
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return false, fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", version, checksum); err != nil {
		return false, fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}
