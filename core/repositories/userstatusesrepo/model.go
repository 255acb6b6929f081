package userstatusesrepo

import "time"

// UserStatus is a lifecycle state a user can be in.
type UserStatus struct {
	ID                    int       `json:"id" db:"id"`
	UserStatusName        string    `json:"user_status_name" db:"user_status_name"`
	UserStatusDescription *string   `json:"user_status_description" db:"user_status_description"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserStatus contains the fields accepted when creating a status.
type CreateUserStatus struct {
	UserStatusName        string  `json:"userStatusName" validate:"required,max=255"`
	UserStatusDescription *string `json:"userStatusDescription"`
}

// UpdateUserStatus contains the fields accepted when updating a status.
type UpdateUserStatus struct {
	UserStatusName        string  `json:"userStatusName" validate:"required,max=255"`
	UserStatusDescription *string `json:"userStatusDescription"`
}
