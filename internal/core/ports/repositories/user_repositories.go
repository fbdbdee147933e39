package repositories

import (
	"context"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserAuthReader exposes credential rows to the auth service. The password and
// refresh token hashes intentionally stay on the model type and never reach
// the domain representation.
type UserAuthReader interface {
	// FindUserByUsername retrieves a user row including credential hashes.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)

	// FindUserAuthByID retrieves a user row including credential hashes by ID.
	FindUserAuthByID(ctx context.Context, userID string) (*models.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user with their credential hash.
	SaveUser(ctx context.Context, user models.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token;
	// nil values clear it.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle.
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserAuthReader
	UserWriter
	UserLifecycleManager
}
