package usersrepo

import (
	"time"

	"github.com/jrazmi/backoffice/core/repositories/userstatusesrepo"
)

// User is the main entity type. The password hash is never serialized.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Password     *string   `json:"-" db:"password"`
	UserRoleID   int       `json:"user_role_id" db:"user_role_id"`
	UserStatusID int       `json:"user_status_id" db:"user_status_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRole is the role a user is granted.
type UserRole struct {
	ID                  int       `json:"id" db:"id"`
	UserRoleName        string    `json:"user_role_name" db:"user_role_name"`
	UserRoleDescription *string   `json:"user_role_description" db:"user_role_description"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// Post is authored by a user.
type Post struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserDetail is a user with its role, status and posts loaded.
type UserDetail struct {
	User
	UserRole   *UserRole                    `json:"user_role"`
	UserStatus *userstatusesrepo.UserStatus `json:"user_status"`
	Posts      []Post                       `json:"posts"`
}

// CreateUser contains fields for creating a new user.
type CreateUser struct {
	UserStatusID         int    `json:"user_status_id" validate:"required"`
	UserRoleID           int    `json:"user_role_id" validate:"required"`
	Password             string `json:"password" validate:"omitempty,min=8,max=32,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
}

// UpdateUser contains fields for replacing an existing user. An empty
// password keeps the stored one.
type UpdateUser struct {
	UserStatusID         int    `json:"user_status_id" validate:"required"`
	UserRoleID           int    `json:"user_role_id" validate:"required"`
	Password             string `json:"password" validate:"omitempty,min=8,max=32,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
}
