package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// OtherIncomeReaderSvc defines read operations for non-fee income entries
type OtherIncomeReaderSvc interface {
	// GetIncomeByID retrieves a specific income entry by its ID.
	GetIncomeByID(ctx context.Context, schoolID string, incomeID string, requestingUserID string) (*domain.OtherIncome, error)

	// ListIncome retrieves income entries for a school within an optional date window.
	ListIncome(ctx context.Context, schoolID string, userID string, params dto.ListOtherIncomeParams) ([]domain.OtherIncome, error)
}

// OtherIncomeWriterSvc defines write operations for non-fee income entries
type OtherIncomeWriterSvc interface {
	// CreateIncome records a new income entry.
	CreateIncome(ctx context.Context, schoolID string, req dto.CreateOtherIncomeRequest, creatorUserID string) (*domain.OtherIncome, error)

	// DeleteIncome removes an income entry.
	DeleteIncome(ctx context.Context, schoolID string, incomeID string, requestingUserID string) error
}

// OtherIncomeSvcFacade combines all income-entry service interfaces
type OtherIncomeSvcFacade interface {
	OtherIncomeReaderSvc
	OtherIncomeWriterSvc
}
