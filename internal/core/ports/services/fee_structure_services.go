package services

import (
	"context"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// FeeStructureReaderSvc defines read operations for fee structure data
type FeeStructureReaderSvc interface {
	// GetStructureByID retrieves a specific fee structure by its ID.
	GetStructureByID(ctx context.Context, schoolID string, structureID string, requestingUserID string) (*domain.FeeStructure, error)

	// ListStructures retrieves fee structures for a school, optionally filtered
	// by fee type and scope.
	ListStructures(ctx context.Context, schoolID string, feeType *domain.FeeType, requestingUserID string) ([]domain.FeeStructure, error)

	// ResolveFee determines the fee applicable to a student for a fee type at a
	// point in time. Returns apperrors.ErrNoFeeStructure when nothing applies.
	ResolveFee(ctx context.Context, schoolID string, studentID string, feeType domain.FeeType, asOf time.Time, requestingUserID string) (*domain.ResolvedFee, error)
}

// FeeStructureWriterSvc defines write operations for fee structure data
type FeeStructureWriterSvc interface {
	// CreateStructure persists a new fee structure, deactivating any active
	// structure for the same scope and fee type so the new one supersedes it.
	CreateStructure(ctx context.Context, schoolID string, req dto.CreateFeeStructureRequest, creatorUserID string) (*domain.FeeStructure, error)

	// DeactivateStructure marks a fee structure inactive without replacement.
	DeactivateStructure(ctx context.Context, schoolID string, structureID string, requestingUserID string) error
}

// FeeStructureSvcFacade combines all fee-structure-related service interfaces
type FeeStructureSvcFacade interface {
	FeeStructureReaderSvc
	FeeStructureWriterSvc
}
