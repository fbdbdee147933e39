package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// FeePaymentReaderSvc defines read operations for ledger records
type FeePaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific ledger record by its ID.
	GetPaymentByID(ctx context.Context, schoolID string, paymentID string, requestingUserID string) (*domain.FeePayment, error)

	// ListPayments retrieves a paginated, filtered list of ledger records.
	ListPayments(ctx context.Context, schoolID string, userID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// FeePaymentWriterSvc defines write operations for ledger records
type FeePaymentWriterSvc interface {
	// CreatePayment manually creates a single ledger record. The carry-forward
	// for the prior period is applied the same way bulk generation does it.
	CreatePayment(ctx context.Context, schoolID string, req dto.CreateFeePaymentRequest, creatorUserID string) (*domain.FeePayment, error)

	// RecordPayment sets the paid amount and collection details on a record.
	RecordPayment(ctx context.Context, schoolID string, paymentID string, req dto.RecordPaymentRequest, requestingUserID string) (*domain.FeePayment, error)

	// DeletePayment removes a ledger record.
	DeletePayment(ctx context.Context, schoolID string, paymentID string, requestingUserID string) error
}

// FeePaymentBulkSvc defines best-effort batch operations over explicit ID lists
type FeePaymentBulkSvc interface {
	// BulkMarkPaid marks each listed record as paid in full. Failures on
	// individual records do not roll back the rest.
	BulkMarkPaid(ctx context.Context, schoolID string, req dto.BulkMarkPaidRequest, requestingUserID string) (*dto.BulkOperationResponse, error)

	// BulkDelete deletes each listed record, reporting per-id outcomes.
	BulkDelete(ctx context.Context, schoolID string, req dto.BulkDeleteRequest, requestingUserID string) (*dto.BulkOperationResponse, error)
}

// FeePaymentSvcFacade combines all ledger-record service interfaces
type FeePaymentSvcFacade interface {
	FeePaymentReaderSvc
	FeePaymentWriterSvc
	FeePaymentBulkSvc
}
