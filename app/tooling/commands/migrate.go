// Package commands holds the tooling command implementations.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/schema"
)

// migrateTimeout bounds a full migration run.
const migrateTimeout = 5 * time.Minute

// Migrate creates the schema in the database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	log.InfoContext(ctx, "running migration")
	if err := postgresdb.Migrate(ctx, pool, log, schema.MigrationsFS, schema.MigrationsDir); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.InfoContext(ctx, "migration completed successfully")

	return nil
}
