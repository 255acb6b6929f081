package userspgxstore_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/schema"
	"github.com/jrazmi/backoffice/sdk/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*userspgxstore.Store, *postgresdb.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("BACKOFFICE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BACKOFFICE_TEST_DATABASE_URL not set")
	}

	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf))

	pool, err := postgresdb.NewTestDB(url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgresdb.Migrate(context.Background(), pool, log.Logger, schema.MigrationsFS, schema.MigrationsDir))

	return userspgxstore.NewStore(log, pool), pool
}

func seedLookups(t *testing.T, pool *postgresdb.Pool) (roleID, statusID int) {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()

	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO user_roles (user_role_name) VALUES ($1) RETURNING id`, "role-"+suffix).Scan(&roleID))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO user_statuses (user_status_name) VALUES ($1) RETURNING id`, "status-"+suffix).Scan(&statusID))
	return roleID, statusID
}

func TestStore(t *testing.T) {
	store, pool := newStore(t)
	ctx := context.Background()
	roleID, statusID := seedLookups(t, pool)

	email := uuid.NewString() + "@example.com"
	hash := "$2a$04$hash"

	created, err := store.Create(ctx, usersrepo.User{
		Name:         "Alice",
		Email:        email,
		Password:     &hash,
		UserRoleID:   roleID,
		UserStatusID: statusID,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = store.Create(ctx, usersrepo.User{Name: "Dup", Email: email, UserRoleID: roleID, UserStatusID: statusID})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	detail, err := store.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.UserRole)
	require.NotNil(t, detail.UserStatus)
	assert.Equal(t, roleID, detail.UserRole.ID)
	assert.Equal(t, statusID, detail.UserStatus.ID)
	assert.Empty(t, detail.Posts)
	assert.NotNil(t, detail.Posts)

	_, err = pool.Exec(ctx, `INSERT INTO posts (user_id, title) VALUES ($1, 'first'), ($1, 'second')`, created.ID)
	require.NoError(t, err)

	detail, err = store.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Posts, 2)
	assert.Equal(t, "first", detail.Posts[0].Title)

	updated, err := store.Update(ctx, usersrepo.User{
		ID:           created.ID,
		Name:         "Alicia",
		Email:        email,
		UserRoleID:   roleID,
		UserStatusID: statusID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	require.NotNil(t, updated.Password)
	assert.Equal(t, hash, *updated.Password)

	result, err := store.List(ctx, usersrepo.ListSpec, fop.Params{"email": email})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	name, _ := result.Items[0].Get("name")
	assert.Equal(t, "Alicia", name)
	_, hasPassword := result.Items[0].Get("password")
	assert.False(t, hasPassword)

	unique, err := store.IsUnique(ctx, usersrepo.Table, "email", email, "id", created.ID)
	require.NoError(t, err)
	assert.True(t, unique)

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Delete(ctx, created.ID), repositories.ErrNotFound)

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
