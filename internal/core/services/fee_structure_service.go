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

var (
	ErrStructureScope  = errors.New("fee structure must target exactly one of class or student")
	ErrStructureAmount = errors.New("fee structure amount must not be negative")
)

// feeStructureService handles fee structure rules and resolution.
type feeStructureService struct {
	BaseService
	structureRepo portsrepo.FeeStructureRepositoryFacade
	studentRepo   portsrepo.StudentRepositoryFacade
}

// NewFeeStructureService creates a new fee structure service.
func NewFeeStructureService(structureRepo portsrepo.FeeStructureRepositoryFacade, studentRepo portsrepo.StudentRepositoryFacade, authorizer portssvc.SchoolAuthorizerSvc) portssvc.FeeStructureSvcFacade {
	return &feeStructureService{
		BaseService:   BaseService{SchoolAuthorizer: authorizer},
		structureRepo: structureRepo,
		studentRepo:   studentRepo,
	}
}

var _ portssvc.FeeStructureSvcFacade = (*feeStructureService)(nil)

// CreateStructure persists a new fee structure, superseding the currently
// active structure for the same scope and fee type. The superseded entry stays
// in storage, inactive, for audit.
func (s *feeStructureService) CreateStructure(ctx context.Context, schoolID string, req dto.CreateFeeStructureRequest, creatorUserID string) (*domain.FeeStructure, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	hasClass := req.ClassID != nil && *req.ClassID != ""
	hasStudent := req.StudentID != nil && *req.StudentID != ""
	if hasClass == hasStudent {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrStructureScope)
	}
	if req.MonthlyAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrStructureAmount)
	}

	// The scope target must exist in this school.
	if hasClass {
		if _, err := s.studentRepo.FindClassByID(ctx, schoolID, *req.ClassID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: class %s not found", apperrors.ErrValidation, *req.ClassID)
			}
			return nil, fmt.Errorf("failed to validate class: %w", err)
		}
	} else {
		if _, err := s.studentRepo.FindStudentByID(ctx, schoolID, *req.StudentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: student %s not found", apperrors.ErrValidation, *req.StudentID)
			}
			return nil, fmt.Errorf("failed to validate student: %w", err)
		}
	}

	now := time.Now()
	structure := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      schoolID,
		ClassID:       req.ClassID,
		StudentID:     req.StudentID,
		FeeType:       req.FeeType,
		MonthlyAmount: req.MonthlyAmount,
		EffectiveFrom: req.EffectiveFrom,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.structureRepo.SaveStructureSuperseding(ctx, structure); err != nil {
		s.LogError(ctx, err, "Failed to save fee structure", slog.String("school_id", schoolID), slog.String("fee_type", string(req.FeeType)))
		return nil, fmt.Errorf("failed to create fee structure: %w", err)
	}

	s.LogInfo(ctx, "Fee structure created", slog.String("structure_id", structure.StructureID), slog.String("school_id", schoolID), slog.String("fee_type", string(req.FeeType)))
	return &structure, nil
}

// GetStructureByID retrieves a fee structure, scoped to the school.
func (s *feeStructureService) GetStructureByID(ctx context.Context, schoolID string, structureID string, requestingUserID string) (*domain.FeeStructure, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	structure, err := s.structureRepo.FindStructureByID(ctx, structureID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fee structure by ID", slog.String("structure_id", structureID))
		}
		return nil, err
	}
	if structure.SchoolID != schoolID {
		// Do not leak existence across tenants
		return nil, apperrors.ErrNotFound
	}
	return structure, nil
}

// ListStructures retrieves a school's structures, optionally filtered to one fee type.
func (s *feeStructureService) ListStructures(ctx context.Context, schoolID string, feeType *domain.FeeType, requestingUserID string) ([]domain.FeeStructure, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	var (
		structures []domain.FeeStructure
		err        error
	)
	if feeType != nil {
		structures, err = s.structureRepo.ListStructuresForFeeType(ctx, schoolID, *feeType)
	} else {
		structures, err = s.structureRepo.ListStructures(ctx, schoolID)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee structures", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}
	if structures == nil {
		return []domain.FeeStructure{}, nil
	}
	return structures, nil
}

// ResolveFee determines the fee applicable to a student for a fee type at a
// point in time. A student-level override beats the class default; within each
// scope the most recently effective structure wins. Returns
// apperrors.ErrNoFeeStructure when nothing applies.
func (s *feeStructureService) ResolveFee(ctx context.Context, schoolID string, studentID string, feeType domain.FeeType, asOf time.Time, requestingUserID string) (*domain.ResolvedFee, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find student for fee resolution", slog.String("student_id", studentID))
		}
		return nil, err
	}

	structures, err := s.structureRepo.ListStructuresForFeeType(ctx, schoolID, feeType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list structures for fee resolution", slog.String("school_id", schoolID), slog.String("fee_type", string(feeType)))
		return nil, fmt.Errorf("failed to resolve fee: %w", err)
	}

	resolved := domain.ResolveFee(structures, student.StudentID, student.ClassID, feeType, asOf)
	if resolved == nil {
		s.LogDebug(ctx, "No fee structure applies to student", slog.String("student_id", studentID), slog.String("fee_type", string(feeType)))
		return nil, apperrors.ErrNoFeeStructure
	}
	return resolved, nil
}

// DeactivateStructure marks a structure inactive without replacement. Students
// covered only by this structure will resolve to no fee afterwards.
func (s *feeStructureService) DeactivateStructure(ctx context.Context, schoolID string, structureID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return err
	}

	structure, err := s.structureRepo.FindStructureByID(ctx, structureID)
	if err != nil {
		return err
	}
	if structure.SchoolID != schoolID {
		return apperrors.ErrNotFound
	}
	if !structure.IsActive {
		return fmt.Errorf("%w: structure already inactive", apperrors.ErrConflict)
	}

	if err := s.structureRepo.DeactivateStructure(ctx, structureID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate fee structure", slog.String("structure_id", structureID))
		return fmt.Errorf("failed to deactivate fee structure: %w", err)
	}

	s.LogInfo(ctx, "Fee structure deactivated", slog.String("structure_id", structureID), slog.String("by_user_id", requestingUserID))
	return nil
}
