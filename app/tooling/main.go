package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/backoffice/app/tooling/commands"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/sdk/environment"
	"github.com/jrazmi/backoffice/sdk/logger"
	"github.com/spf13/cobra"
)

var build = "develop"
var appName = "BACKOFFICE"

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuring logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(log).ExecuteContext(ctx); err != nil {
		log.ErrorContext(ctx, "tooling", "err", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd(log *logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "tooling",
		Short:         "Database tooling for the backoffice service",
		Version:       build,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	db := &dbFlags{}
	root.PersistentFlags().StringVar(&db.url, "database-url", "", "database url, overrides "+appName+"_PG_DATABASE_URL")
	root.PersistentFlags().IntVar(&db.maxConns, "max-conns", 0, "maximum pool connections, 0 keeps the configured value")
	root.PersistentFlags().DurationVar(&db.connectTimeout, "connect-timeout", 0, "time allowed to reach the database, 0 keeps the default")
	root.PersistentFlags().BoolVar(&db.logQueries, "log-queries", false, "log every statement")

	root.AddCommand(migrateCmd(log, db), seedCmd(log, db))
	return root
}

// dbFlags overrides the environment database settings for one invocation.
type dbFlags struct {
	url            string
	maxConns       int
	connectTimeout time.Duration
	logQueries     bool
}

// options returns the pool options for the flags that were set.
func (f *dbFlags) options(log *logger.Logger) []postgresdb.Option {
	opts := []postgresdb.Option{postgresdb.WithLogger(log.Logger)}
	if f == nil {
		return opts
	}
	if f.url != "" {
		opts = append(opts, postgresdb.WithDatabaseURL(f.url))
	}
	if f.maxConns > 0 {
		opts = append(opts, postgresdb.WithMaxConns(f.maxConns))
	}
	if f.connectTimeout > 0 {
		opts = append(opts, postgresdb.WithConnectTimeout(f.connectTimeout))
	}
	if f.logQueries {
		opts = append(opts, postgresdb.WithLogQueries(true))
	}
	return opts
}

func migrateCmd(log *logger.Logger, db *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), log, db, func(pg *pgxpool.Pool) error {
				return commands.Migrate(cmd.Context(), pg, log.Logger)
			})
		},
	}
}

func seedCmd(log *logger.Logger, db *dbFlags) *cobra.Command {
	cfg := commands.SeedConfig{
		AdminName:     environment.GetNamespaceEnvOrDefault(appName, "ADMIN_NAME", "Super Admin"),
		AdminEmail:    environment.GetNamespaceEnvOrDefault(appName, "ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: environment.GetNamespaceEnvOrDefault(appName, "ADMIN_PASSWORD", ""),
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert default roles, statuses and the super admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), log, db, func(pg *pgxpool.Pool) error {
				return commands.Seed(cmd.Context(), pg, log.Logger, cfg)
			})
		},
	}

	cmd.Flags().StringVar(&cfg.AdminName, "admin-name", cfg.AdminName, "super admin display name")
	cmd.Flags().StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "super admin email")
	cmd.Flags().StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "super admin password (8 to 32 characters)")

	return cmd
}

// withPool opens the database for the duration of fn.
func withPool(ctx context.Context, log *logger.Logger, db *dbFlags, fn func(pg *pgxpool.Pool) error) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	pg, err := postgresdb.NewFromEnv(appName, db.options(log)...)
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pg.Close()
	}()
	log.InfoContext(ctx, "init", "service", "postgres")

	return fn(pg)
}
