package repositories

import (
	"context"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for receiving accounts.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, schoolID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts for a school, optionally active only.
	ListAccounts(ctx context.Context, schoolID string, activeOnly bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for receiving accounts.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, schoolID, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
