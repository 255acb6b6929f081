package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig describes the super admin account created by Seed.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Validate checks the seed input before touching the database.
func (c SeedConfig) Validate() error {
	var errs []error
	if c.AdminName == "" {
		errs = append(errs, errors.New("admin name is required"))
	}
	if c.AdminEmail == "" {
		errs = append(errs, errors.New("admin email is required"))
	}
	if n := len(c.AdminPassword); n < 8 || n > 32 {
		errs = append(errs, errors.New("admin password must have between 8 and 32 characters"))
	}
	return errors.Join(errs...)
}

var seedRoles = []struct {
	name        string
	description string
}{
	{"super_admin", "Full access, cannot be deleted"},
	{"admin", "Manages users and statuses"},
	{"user", "Regular account"},
}

var seedStatuses = []struct {
	name        string
	description string
}{
	{"active", "Account can sign in"},
	{"inactive", "Account is disabled"},
	{"suspended", "Account is temporarily blocked"},
}

// Seed inserts the default roles, statuses and the super admin. Rows that
// already exist are left untouched, so Seed can run more than once.
func Seed(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger, cfg SeedConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, role := range seedRoles {
			if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_role_name, user_role_description)
				VALUES (@name, @description)
				ON CONFLICT (user_role_name) DO NOTHING`,
				pgx.NamedArgs{"name": role.name, "description": role.description}); err != nil {
				return fmt.Errorf("seed role %s: %w", role.name, err)
			}
		}

		for _, status := range seedStatuses {
			if _, err := tx.Exec(ctx, `INSERT INTO user_statuses (user_status_name, user_status_description)
				SELECT @name, @description
				WHERE NOT EXISTS (SELECT 1 FROM user_statuses WHERE user_status_name = @name)`,
				pgx.NamedArgs{"name": status.name, "description": status.description}); err != nil {
				return fmt.Errorf("seed status %s: %w", status.name, err)
			}
		}

		tag, err := tx.Exec(ctx, `INSERT INTO users (id, name, email, password, user_role_id, user_status_id)
			VALUES (
				@id, @name, @email, @password,
				(SELECT id FROM user_roles WHERE user_role_name = @role),
				(SELECT id FROM user_statuses WHERE user_status_name = @status ORDER BY id LIMIT 1)
			)
			ON CONFLICT DO NOTHING`,
			pgx.NamedArgs{
				"id":       usersrepo.SuperAdminID,
				"name":     cfg.AdminName,
				"email":    cfg.AdminEmail,
				"password": string(hash),
				"role":     seedRoles[0].name,
				"status":   seedStatuses[0].name,
			})
		if err != nil {
			return fmt.Errorf("seed super admin: %w", err)
		}
		if tag.RowsAffected() == 0 {
			log.InfoContext(ctx, "seed", "status", "super admin already present")
		}

		// Explicit ids leave the sequence behind.
		if _, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('users', 'id'), GREATEST((SELECT MAX(id) FROM users), 1))`); err != nil {
			return fmt.Errorf("sync users sequence: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "seed completed successfully", "roles", len(seedRoles), "statuses", len(seedStatuses))
	return nil
}
