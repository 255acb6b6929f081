// Package usersrepo manages users, their password hashes and the super
// admin account.
package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/backoffice/core/repositories"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
	"github.com/jrazmi/backoffice/sdk/logger"
	"golang.org/x/crypto/bcrypt"
)

// Table is the table users are stored in.
const Table = "users"

// SuperAdminID identifies the account that can never be deleted.
const SuperAdminID = 1

// ErrSuperAdmin is returned when deleting the super admin.
var ErrSuperAdmin = errors.New("cannot delete super admin")

// ListSpec describes the users list endpoint.
var ListSpec = fop.QuerySpec{
	From:             Table,
	VisibleFields:    []string{"id", "name", "email", "user_role_id", "user_status_id"},
	SearchableFields: []string{"email", "name"},
	Paginate:         true,
}

// Storer defines the data storage interface for User.
type Storer interface {
	repositories.Lister
	repositories.Checker
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id int) (User, error)
	GetDetail(ctx context.Context, id int) (UserDetail, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int) error
}

// Repository provides access to user storage.
type Repository struct {
	log        *logger.Logger
	storer     Storer
	bcryptCost int
}

// Option configures a Repository.
type Option func(*Repository)

// WithBcryptCost sets the cost used to hash passwords.
func WithBcryptCost(cost int) Option {
	return func(r *Repository) {
		r.bcryptCost = cost
	}
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer, opts ...Option) *Repository {
	r := &Repository{
		log:        log,
		storer:     storer,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns a page of users matching params.
func (r *Repository) List(ctx context.Context, params fop.Params) (fop.QueryResult, error) {
	result, err := r.storer.List(ctx, ListSpec, params)
	if err != nil {
		return fop.QueryResult{}, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

// Create validates input and stores a new user with a hashed password.
func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	if err := r.validateCreate(ctx, input); err != nil {
		return User{}, err
	}

	hash, err := r.hashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	user, err := r.storer.Create(ctx, User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     hash,
		UserRoleID:   input.UserRoleID,
		UserStatusID: input.UserStatusID,
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "id", user.ID)
	return user, nil
}

// Get returns the user with id along with its role, status and posts.
func (r *Repository) Get(ctx context.Context, id int) (UserDetail, error) {
	user, err := r.storer.GetDetail(ctx, id)
	if err != nil {
		return UserDetail{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// Update validates input and replaces the user with id.
func (r *Repository) Update(ctx context.Context, id int, input UpdateUser) (User, error) {
	if err := r.validateUpdate(ctx, id, input); err != nil {
		return User{}, err
	}

	hash, err := r.hashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	user, err := r.storer.Update(ctx, User{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		Password:     hash,
		UserRoleID:   input.UserRoleID,
		UserStatusID: input.UserStatusID,
	})
	if err != nil {
		return User{}, fmt.Errorf("update user %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "user updated", "id", user.ID)
	return user, nil
}

// Delete removes the user with id. The super admin is refused.
func (r *Repository) Delete(ctx context.Context, id int) error {
	user, err := r.storer.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get user %d: %w", id, err)
	}

	if user.ID == SuperAdminID {
		return ErrSuperAdmin
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	r.log.InfoContext(ctx, "user deleted", "id", id)
	return nil
}

// hashPassword returns nil for an empty password.
func (r *Repository) hashPassword(password string) (*string, error) {
	if password == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	s := string(hash)
	return &s, nil
}

// CheckPassword reports whether password matches the stored hash of user.
func CheckPassword(user User, password string) bool {
	if user.Password == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)) == nil
}
