package repositories

import (
	"context"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// FeeStructureReader defines read operations for fee structure rules.
type FeeStructureReader interface {
	// FindStructureByID retrieves a specific structure by its ID.
	FindStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error)

	// FindActiveStudentOverride retrieves the active student-level override for
	// (student, feeType) with the most recent effective_from <= asOf, or
	// apperrors.ErrNotFound if none exists.
	FindActiveStudentOverride(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error)

	// FindActiveClassStructure retrieves the active class-level structure for
	// (class, feeType) under the same effective-date rule.
	FindActiveClassStructure(ctx context.Context, schoolID, classID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error)

	// ListStructuresForFeeType retrieves every active structure of a fee type in
	// a school, both class defaults and student overrides. Used by bulk
	// generation to resolve all students off a single query.
	ListStructuresForFeeType(ctx context.Context, schoolID string, feeType domain.FeeType) ([]domain.FeeStructure, error)

	// ListStructures retrieves all structures (including superseded ones) for a school.
	ListStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error)
}

// FeeStructureWriter defines write operations for fee structure rules.
type FeeStructureWriter interface {
	// SaveStructure persists a new structure.
	SaveStructure(ctx context.Context, structure domain.FeeStructure) error

	// SaveStructureSuperseding persists a new structure and deactivates any
	// currently active structure for the same scope and fee type, atomically.
	// The superseded entries are kept for audit.
	SaveStructureSuperseding(ctx context.Context, structure domain.FeeStructure) error

	// DeactivateStructure marks a structure as inactive.
	DeactivateStructure(ctx context.Context, structureID string, userID string, now time.Time) error
}

// FeeStructureRepositoryFacade combines all fee-structure repository interfaces.
type FeeStructureRepositoryFacade interface {
	FeeStructureReader
	FeeStructureWriter
}
