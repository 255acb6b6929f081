// Package userspgxstore stores users in PostgreSQL.
package userspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/repositories/usersrepo"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/sdk/logger"
)

const columns = `id, name, email, password, user_role_id, user_status_id, created_at, updated_at`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context, spec fop.QuerySpec, params fop.Params) (fop.QueryResult, error) {
	return postgresdb.GenerateList(ctx, s.pool, spec, params)
}

func (s *Store) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	return postgresdb.Exists(ctx, s.pool, table, column, value)
}

func (s *Store) IsUnique(ctx context.Context, table, column string, value any, exceptColumn string, except any) (bool, error) {
	return postgresdb.IsUnique(ctx, s.pool, table, column, value, exceptColumn, except)
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	query := `INSERT INTO users (name, email, password, user_role_id, user_status_id)
		VALUES (@name, @email, @password, @user_role_id, @user_status_id)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"name":           user.Name,
		"email":          user.Email,
		"password":       user.Password,
		"user_role_id":   user.UserRoleID,
		"user_status_id": user.UserStatusID,
	}

	return collectOne[usersrepo.User](ctx, s.pool, "create", query, args)
}

func (s *Store) Get(ctx context.Context, id int) (usersrepo.User, error) {
	query := `SELECT ` + columns + `
		FROM users
		WHERE id = @id`

	return collectOne[usersrepo.User](ctx, s.pool, "get", query, pgx.NamedArgs{"id": id})
}

// GetDetail loads the user then its role, status and posts.
func (s *Store) GetDetail(ctx context.Context, id int) (usersrepo.UserDetail, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return usersrepo.UserDetail{}, err
	}

	detail := usersrepo.UserDetail{
		User:  user,
		Posts: []usersrepo.Post{},
	}

	role, err := collectOne[usersrepo.UserRole](ctx, s.pool, "get role",
		`SELECT id, user_role_name, user_role_description, created_at, updated_at
		FROM user_roles
		WHERE id = @id`, pgx.NamedArgs{"id": user.UserRoleID})
	switch {
	case err == nil:
		detail.UserRole = &role
	case !errors.Is(err, repositories.ErrNotFound):
		return usersrepo.UserDetail{}, err
	}

	status, err := collectOne[userstatusesrepo.UserStatus](ctx, s.pool, "get status",
		`SELECT id, user_status_name, user_status_description, created_at, updated_at
		FROM user_statuses
		WHERE id = @id`, pgx.NamedArgs{"id": user.UserStatusID})
	switch {
	case err == nil:
		detail.UserStatus = &status
	case !errors.Is(err, repositories.ErrNotFound):
		return usersrepo.UserDetail{}, err
	}

	rows, err := s.pool.Query(ctx, `SELECT id, user_id, title, content, created_at, updated_at
		FROM posts
		WHERE user_id = @user_id
		ORDER BY id`, pgx.NamedArgs{"user_id": user.ID})
	if err != nil {
		return usersrepo.UserDetail{}, repoError(postgresdb.StoreError("list posts", err))
	}
	defer rows.Close()

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.Post])
	if err != nil {
		return usersrepo.UserDetail{}, repoError(postgresdb.StoreError("list posts", err))
	}
	if len(posts) > 0 {
		detail.Posts = posts
	}

	return detail, nil
}

// Update replaces the user row. A nil password keeps the stored hash.
func (s *Store) Update(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	query := `UPDATE users
		SET name = @name,
			email = @email,
			password = COALESCE(@password, password),
			user_role_id = @user_role_id,
			user_status_id = @user_status_id,
			updated_at = NOW()
		WHERE id = @id
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"password":       user.Password,
		"user_role_id":   user.UserRoleID,
		"user_status_id": user.UserStatusID,
	}

	return collectOne[usersrepo.User](ctx, s.pool, "update", query, args)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return repoError(postgresdb.StoreError("delete", err))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func collectOne[T any](ctx context.Context, db postgresdb.Querier, op, query string, args pgx.NamedArgs) (T, error) {
	var zero T

	rows, err := db.Query(ctx, query, args)
	if err != nil {
		return zero, repoError(postgresdb.StoreError(op, err))
	}
	defer rows.Close()

	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, repoError(postgresdb.StoreError(op, err))
	}
	return v, nil
}

// repoError maps database sentinels onto repository errors.
func repoError(err error) error {
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry), errors.Is(err, postgresdb.ErrDBForeignKey):
		return errors.Join(repositories.ErrConflict, err)
	}
	return err
}
