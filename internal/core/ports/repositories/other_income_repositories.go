package repositories

import (
	"context"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// OtherIncomeReader defines read operations for non-fee income entries.
type OtherIncomeReader interface {
	// FindOtherIncomeByID retrieves a specific income entry by its ID.
	FindOtherIncomeByID(ctx context.Context, schoolID, incomeID string) (*domain.OtherIncome, error)

	// ListOtherIncome retrieves income entries within a date range.
	ListOtherIncome(ctx context.Context, schoolID string, from, to time.Time) ([]domain.OtherIncome, error)
}

// OtherIncomeWriter defines write operations for non-fee income entries.
type OtherIncomeWriter interface {
	// SaveOtherIncome persists a new income entry.
	SaveOtherIncome(ctx context.Context, income domain.OtherIncome) error

	// UpdateOtherIncome updates an existing income entry.
	UpdateOtherIncome(ctx context.Context, income domain.OtherIncome) error

	// DeleteOtherIncome removes an income entry.
	DeleteOtherIncome(ctx context.Context, schoolID, incomeID string) error
}

// OtherIncomeRepositoryFacade combines all income-related repository interfaces.
type OtherIncomeRepositoryFacade interface {
	OtherIncomeReader
	OtherIncomeWriter
}
