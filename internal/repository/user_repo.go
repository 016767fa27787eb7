// internal/repository/user_repo.go
package repository

import (
	"context"

	"user-directory/internal/domain"
)

// UserRepository defines the interface for user record operations.
// Every operation is atomic over a single record.
type UserRepository interface {
	// CreateUser inserts a new user using the provided DBExecutor and fills in
	// the store-assigned ID.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByUsername retrieves a user by their username using the provided DBExecutor.
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// ListUsers retrieves all users in store iteration order.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// UpdateUser overwrites the stored record identified by user.ID.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// DeleteUser removes the user with the given ID.
	DeleteUser(ctx context.Context, q DBExecutor, id int64) error
}
