// Package userstatusesrepo manages the user status lookup table.
package userstatusesrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/sdk/logger"
	"github.com/jrazmi/backoffice/sdk/validation"
)

// Table is the table user statuses are stored in.
const Table = "user_statuses"

// ListSpec describes the user statuses list endpoint.
var ListSpec = fop.QuerySpec{
	From:             Table,
	VisibleFields:    []string{"id", "user_status_name", "user_status_description"},
	SearchableFields: []string{"user_status_name"},
	Paginate:         true,
}

// Storer defines the data storage interface for UserStatus.
type Storer interface {
	repositories.Lister
	repositories.Checker
	Create(ctx context.Context, input CreateUserStatus) (UserStatus, error)
	Get(ctx context.Context, id int) (UserStatus, error)
	Update(ctx context.Context, id int, input UpdateUserStatus) (UserStatus, error)
	Delete(ctx context.Context, id int) error
}

// Repository provides access to user status storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new UserStatus repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns a page of user statuses matching params.
func (r *Repository) List(ctx context.Context, params fop.Params) (fop.QueryResult, error) {
	result, err := r.storer.List(ctx, ListSpec, params)
	if err != nil {
		return fop.QueryResult{}, fmt.Errorf("list user statuses: %w", err)
	}
	return result, nil
}

// Create validates input and stores a new user status.
func (r *Repository) Create(ctx context.Context, input CreateUserStatus) (UserStatus, error) {
	if err := validation.Check(input); err != nil {
		return UserStatus{}, err
	}

	status, err := r.storer.Create(ctx, input)
	if err != nil {
		return UserStatus{}, fmt.Errorf("create user status: %w", err)
	}

	r.log.InfoContext(ctx, "user status created", "id", status.ID)
	return status, nil
}

// Get returns the user status with id.
func (r *Repository) Get(ctx context.Context, id int) (UserStatus, error) {
	status, err := r.storer.Get(ctx, id)
	if err != nil {
		return UserStatus{}, fmt.Errorf("get user status %d: %w", id, err)
	}
	return status, nil
}

// Update validates input and replaces the user status with id.
func (r *Repository) Update(ctx context.Context, id int, input UpdateUserStatus) (UserStatus, error) {
	if err := r.validateUpdate(ctx, id, input); err != nil {
		return UserStatus{}, err
	}

	status, err := r.storer.Update(ctx, id, input)
	if err != nil {
		return UserStatus{}, fmt.Errorf("update user status %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "user status updated", "id", status.ID)
	return status, nil
}

// Delete removes the user status with id.
func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user status %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "user status deleted", "id", id)
	return nil
}

func (r *Repository) validateUpdate(ctx context.Context, id int, input UpdateUserStatus) error {
	fe := validation.Collect(input)

	found, err := r.storer.Exists(ctx, Table, "id", id)
	if err != nil {
		return fmt.Errorf("check user status %d: %w", id, err)
	}
	if !found {
		fe.Add("id", "exists", "The selected id is invalid")
	}

	return fe.Err()
}
