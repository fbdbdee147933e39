package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, schoolID string, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in a school.
	ListAccounts(ctx context.Context, schoolID string, requestingUserID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new collection account.
	CreateAccount(ctx context.Context, schoolID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details.
	UpdateAccount(ctx context.Context, schoolID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, schoolID string, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
