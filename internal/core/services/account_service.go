package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// accountService manages the receiving accounts payments land in.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, authorizer portssvc.SchoolAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{SchoolAuthorizer: authorizer},
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new collection account.
func (s *accountService) CreateAccount(ctx context.Context, schoolID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		SchoolID:    schoolID,
		Name:        req.Name,
		Kind:        req.Kind,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("school_id", schoolID), slog.String("account_name", req.Name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("school_id", schoolID))
	return &account, nil
}

// GetAccountByID retrieves an account scoped to the school.
func (s *accountService) GetAccountByID(ctx context.Context, schoolID string, accountID string, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, schoolID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all accounts of a school, active ones first-class.
func (s *accountService) ListAccounts(ctx context.Context, schoolID string, requestingUserID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, schoolID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates account details.
func (s *accountService) UpdateAccount(ctx context.Context, schoolID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, schoolID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID), slog.String("by_user_id", requestingUserID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Existing ledger records keep
// referencing it; new payments cannot use it.
func (s *accountService) DeactivateAccount(ctx context.Context, schoolID string, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, schoolID, accountID, requestingUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("by_user_id", requestingUserID))
	return nil
}
