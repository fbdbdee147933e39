package repositories

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// ListPaymentsFilter narrows ledger record listings. Nil fields are ignored.
type ListPaymentsFilter struct {
	FeeType   *domain.FeeType
	Period    *int
	Year      *int
	ClassID   *string
	StudentID *string
}

// FeePaymentReader defines read operations for ledger records.
type FeePaymentReader interface {
	// FindPaymentByID retrieves a specific ledger record by its ID.
	FindPaymentByID(ctx context.Context, schoolID, paymentID string) (*domain.FeePayment, error)

	// FindPaymentByKey retrieves the record for the unique
	// (student, feeType, period, year) key, or apperrors.ErrNotFound.
	FindPaymentByKey(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, period, year int) (*domain.FeePayment, error)

	// MapPaymentsByStudent retrieves all records for (feeType, period, year)
	// keyed by student ID. Generation uses it both for the existing-record skip
	// and for prior-month carry-forward lookups.
	MapPaymentsByStudent(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int) (map[string]domain.FeePayment, error)

	// ListPayments retrieves ledger records matching the filter with token pagination.
	ListPayments(ctx context.Context, schoolID string, filter ListPaymentsFilter, limit int, nextToken *string) ([]domain.FeePayment, *string, error)

	// ListOutstanding retrieves records with amount_paid < amount_due for a
	// (feeType, period, year) key (the defaulter report), optionally restricted
	// to one class.
	ListOutstanding(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int, classID *string) ([]domain.FeePayment, error)
}

// FeePaymentWriter defines write operations for ledger records.
type FeePaymentWriter interface {
	// SavePayment persists a single new record. Returns apperrors.ErrDuplicate
	// if the unique (student, feeType, period, year) key already exists.
	SavePayment(ctx context.Context, payment domain.FeePayment) error

	// CreatePaymentsBatch inserts generated records within one transaction.
	// Records whose unique key already exists are skipped, not overwritten;
	// the storage-level unique constraint is the safety net against concurrent
	// generation. Returns how many records were actually created and how many
	// were skipped by the constraint.
	CreatePaymentsBatch(ctx context.Context, payments []domain.FeePayment) (created int, skipped int, err error)

	// UpdatePayment updates the payment fields of an existing record.
	UpdatePayment(ctx context.Context, payment domain.FeePayment) error

	// DeletePayment removes a record. Returns apperrors.ErrNotFound if absent.
	DeletePayment(ctx context.Context, schoolID, paymentID string) error
}

// FeePaymentRepositoryFacade combines all ledger-record repository interfaces.
type FeePaymentRepositoryFacade interface {
	FeePaymentReader
	FeePaymentWriter
}
