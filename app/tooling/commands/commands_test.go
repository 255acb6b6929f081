package commands_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/jrazmi/backoffice/app/tooling/commands"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedConfigValidate(t *testing.T) {
	valid := commands.SeedConfig{
		AdminName:     "Super Admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "password123",
	}
	assert.NoError(t, valid.Validate())

	err := commands.SeedConfig{AdminPassword: "short"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin name is required")
	assert.Contains(t, err.Error(), "admin email is required")
	assert.Contains(t, err.Error(), "between 8 and 32 characters")

	long := valid
	long.AdminPassword = strings.Repeat("x", 33)
	assert.Error(t, long.Validate())
}

func TestMigrateAndSeed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("BACKOFFICE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BACKOFFICE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	pool, err := postgresdb.NewTestDB(url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, commands.Migrate(ctx, pool, log))
	require.NoError(t, commands.Migrate(ctx, pool, log), "migrations are applied once")

	cfg := commands.SeedConfig{
		AdminName:     "Super Admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: "password123",
	}
	require.NoError(t, commands.Seed(ctx, pool, log, cfg))
	require.NoError(t, commands.Seed(ctx, pool, log, cfg), "seeding twice is harmless")

	var roles, statuses int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_roles WHERE user_role_name IN ('super_admin', 'admin', 'user')`).Scan(&roles))
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_statuses WHERE user_status_name IN ('active', 'inactive', 'suspended')`).Scan(&statuses))
	assert.Equal(t, 3, roles)
	assert.Equal(t, 3, statuses)

	var admins int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE id = $1`, usersrepo.SuperAdminID).Scan(&admins))
	assert.Equal(t, 1, admins)
}
