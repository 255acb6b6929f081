// Package userstatusespgxstore stores user statuses in PostgreSQL.
package userstatusespgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/infrastructure/postgresdb"
	"github.com/jrazmi/backoffice/sdk/logger"
)

const columns = `id, user_status_name, user_status_description, created_at, updated_at`

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

func (s *Store) Create(ctx context.Context, input userstatusesrepo.CreateUserStatus) (userstatusesrepo.UserStatus, error) {
	query := `INSERT INTO user_statuses (user_status_name, user_status_description)
		VALUES (@user_status_name, @user_status_description)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"user_status_name":        input.UserStatusName,
		"user_status_description": input.UserStatusDescription,
	}

	return s.one(ctx, "create", query, args)
}

func (s *Store) Get(ctx context.Context, id int) (userstatusesrepo.UserStatus, error) {
	query := `SELECT ` + columns + `
		FROM user_statuses
		WHERE id = @id`

	return s.one(ctx, "get", query, pgx.NamedArgs{"id": id})
}

func (s *Store) Update(ctx context.Context, id int, input userstatusesrepo.UpdateUserStatus) (userstatusesrepo.UserStatus, error) {
	query := `UPDATE user_statuses
		SET user_status_name = @user_status_name,
			user_status_description = @user_status_description,
			updated_at = NOW()
		WHERE id = @id
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"id":                      id,
		"user_status_name":        input.UserStatusName,
		"user_status_description": input.UserStatusDescription,
	}

	return s.one(ctx, "update", query, args)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM user_statuses WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return repoError(postgresdb.StoreError("delete", err))
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) one(ctx context.Context, op, query string, args pgx.NamedArgs) (userstatusesrepo.UserStatus, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return userstatusesrepo.UserStatus{}, repoError(postgresdb.StoreError(op, err))
	}
	defer rows.Close()

	status, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userstatusesrepo.UserStatus])
	if err != nil {
		return userstatusesrepo.UserStatus{}, repoError(postgresdb.StoreError(op, err))
	}
	return status, nil
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
