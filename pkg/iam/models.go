package iam

import (
	"time"

	"github.com/google/uuid"
)

// User represents a managed user account
type User struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	Name           string    `json:"name"`
	Age            int32     `json:"age"`
	Email          string    `json:"email"`
	PasswordHash   []byte    `json:"-"`
}

// Role represents a role in the catalog
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserWithRoles represents a user with their assigned role names
type UserWithRoles struct {
	User
	Roles []string `json:"roles"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	Name     string   `json:"name"`
	Age      int32    `json:"age"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles"`
}

// UpdateUserParams contains parameters for updating a user. An empty
// Password keeps the stored hash; the role set is replaced wholesale.
type UpdateUserParams struct {
	Name     string   `json:"name"`
	Age      int32    `json:"age"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles"`
}
