package userRepo

import (
	"context"
	"errors"

	"auditorium/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsername retrieves a user by its (lowercase) username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByEmail retrieves a user by its (lowercase) email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByRole lists users with the given role; approvedOnly limits to approved accounts.
	FindByRole(ctx context.Context, role string, approvedOnly bool) ([]models.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
	// Count returns the number of users; an empty role counts everyone.
	Count(ctx context.Context, role string) (int64, error)
}
