package user

import "context"

// Repository defines data access for users.
type Repository interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by UUID.
	GetUserByID(ctx context.Context, id string) (*User, error)
}
