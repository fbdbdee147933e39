package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// otherIncomeService records non-fee income. These entries live outside the
// fee ledger and never carry forward.
type otherIncomeService struct {
	BaseService
	incomeRepo  portsrepo.OtherIncomeRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewOtherIncomeService creates a new other-income service.
func NewOtherIncomeService(incomeRepo portsrepo.OtherIncomeRepositoryFacade, accountRepo portsrepo.AccountReader, authorizer portssvc.SchoolAuthorizerSvc) portssvc.OtherIncomeSvcFacade {
	return &otherIncomeService{
		BaseService: BaseService{SchoolAuthorizer: authorizer},
		incomeRepo:  incomeRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.OtherIncomeSvcFacade = (*otherIncomeService)(nil)

// CreateIncome records a new income entry.
func (s *otherIncomeService) CreateIncome(ctx context.Context, schoolID string, req dto.CreateOtherIncomeRequest, creatorUserID string) (*domain.OtherIncome, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: income amount must be positive", apperrors.ErrValidation)
	}

	if req.AccountID != nil && *req.AccountID != "" {
		account, err := s.accountRepo.FindAccountByID(ctx, schoolID, *req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, *req.AccountID)
			}
			return nil, fmt.Errorf("failed to validate account: %w", err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, *req.AccountID)
		}
	}

	now := time.Now()
	income := domain.OtherIncome{
		IncomeID:    uuid.NewString(),
		SchoolID:    schoolID,
		Category:    req.Category,
		Amount:      req.Amount,
		IncomeDate:  req.IncomeDate,
		AccountID:   req.AccountID,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.incomeRepo.SaveOtherIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "Failed to save income entry", slog.String("school_id", schoolID), slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to create income entry: %w", err)
	}

	s.LogInfo(ctx, "Income entry created", slog.String("income_id", income.IncomeID), slog.String("school_id", schoolID))
	return &income, nil
}

// GetIncomeByID retrieves an income entry scoped to the school.
func (s *otherIncomeService) GetIncomeByID(ctx context.Context, schoolID string, incomeID string, requestingUserID string) (*domain.OtherIncome, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	income, err := s.incomeRepo.FindOtherIncomeByID(ctx, schoolID, incomeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find income entry by ID", slog.String("income_id", incomeID))
		}
		return nil, err
	}
	return income, nil
}

// ListIncome retrieves income entries within an optional date window.
func (s *otherIncomeService) ListIncome(ctx context.Context, schoolID string, userID string, params dto.ListOtherIncomeParams) ([]domain.OtherIncome, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	from := time.Time{}
	if params.From != nil {
		from = *params.From
	}
	to := time.Now().AddDate(1, 0, 0)
	if params.To != nil {
		to = *params.To
	}

	incomes, err := s.incomeRepo.ListOtherIncome(ctx, schoolID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list income entries", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list income entries: %w", err)
	}
	if incomes == nil {
		return []domain.OtherIncome{}, nil
	}
	return incomes, nil
}

// DeleteIncome removes an income entry.
func (s *otherIncomeService) DeleteIncome(ctx context.Context, schoolID string, incomeID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.incomeRepo.DeleteOtherIncome(ctx, schoolID, incomeID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete income entry", slog.String("income_id", incomeID))
		}
		return err
	}

	s.LogInfo(ctx, "Income entry deleted", slog.String("income_id", incomeID), slog.String("by_user_id", requestingUserID))
	return nil
}
