package services

import (
	"context"
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

// previewStudentCap bounds the per-student listing in a generation preview.
// The counts and total always cover the whole run.
const previewStudentCap = 50

// generationService implements bulk fee generation. Preview and Generate share
// the same planning pass; only Generate persists anything.
type generationService struct {
	BaseService
	structureRepo portsrepo.FeeStructureReader
	studentRepo   portsrepo.StudentReader
	paymentRepo   portsrepo.FeePaymentRepositoryFacade
}

// NewGenerationService creates a new generation service.
func NewGenerationService(structureRepo portsrepo.FeeStructureReader, studentRepo portsrepo.StudentReader, paymentRepo portsrepo.FeePaymentRepositoryFacade, authorizer portssvc.SchoolAuthorizerSvc) portssvc.GenerationSvcFacade {
	return &generationService{
		BaseService:   BaseService{SchoolAuthorizer: authorizer},
		structureRepo: structureRepo,
		studentRepo:   studentRepo,
		paymentRepo:   paymentRepo,
	}
}

var _ portssvc.GenerationSvcFacade = (*generationService)(nil)

// generationPlan is the outcome of the planning pass over all eligible students.
type generationPlan struct {
	records        []domain.FeePayment
	studentNames   map[string]string
	alreadyExist   int
	noFeeStructure int
}

func validateGenerationRequest(req dto.GenerationRequest) error {
	if !req.FeeType.IsValid() {
		return fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, req.FeeType)
	}
	if req.FeeType.IsMonthly() {
		if req.Period < 1 || req.Period > 12 {
			return fmt.Errorf("%w: monthly generation requires a period between 1 and 12", apperrors.ErrValidation)
		}
	} else if req.Period != 0 {
		return fmt.Errorf("%w: period must be 0 for %s fees", apperrors.ErrValidation, req.FeeType)
	}
	if req.Year < 2000 || req.Year > 2100 {
		return fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, req.Year)
	}
	return nil
}

// billingDate is the as-of date used for fee structure resolution: the first
// day of the billing month for MONTHLY fees, generation time otherwise.
func billingDate(req dto.GenerationRequest) time.Time {
	if req.FeeType.IsMonthly() {
		return time.Date(req.Year, time.Month(req.Period), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Now()
}

// buildPlan resolves every eligible student against the active fee structures
// and decides, per student: create a record, skip (already exists), or tally as
// having no fee structure. A student without a structure never aborts the run.
func (s *generationService) buildPlan(ctx context.Context, schoolID string, req dto.GenerationRequest, creatorUserID string) (*generationPlan, error) {
	students, err := s.studentRepo.ListActiveStudents(ctx, schoolID, req.ClassID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active students for generation", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	structures, err := s.structureRepo.ListStructuresForFeeType(ctx, schoolID, req.FeeType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee structures for generation", slog.String("school_id", schoolID), slog.String("fee_type", string(req.FeeType)))
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}

	existing, err := s.paymentRepo.MapPaymentsByStudent(ctx, schoolID, req.FeeType, req.Period, req.Year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load existing records for generation", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to load existing records: %w", err)
	}

	// Carry-forward only applies to monthly fees, and only looks exactly one
	// month back. Older unpaid months were already folded into that record's
	// amount due when it was generated.
	var prior map[string]domain.FeePayment
	if req.FeeType.IsMonthly() {
		priorMonth, priorYear := domain.PriorPeriod(req.Period, req.Year)
		prior, err = s.paymentRepo.MapPaymentsByStudent(ctx, schoolID, req.FeeType, priorMonth, priorYear)
		if err != nil {
			s.LogError(ctx, err, "Failed to load prior month records for carry-forward", slog.String("school_id", schoolID))
			return nil, fmt.Errorf("failed to load prior month records: %w", err)
		}
	}

	asOf := billingDate(req)
	now := time.Now()
	plan := &generationPlan{studentNames: make(map[string]string, len(students))}

	for _, student := range students {
		plan.studentNames[student.StudentID] = student.Name

		if _, ok := existing[student.StudentID]; ok {
			plan.alreadyExist++
			continue
		}

		resolved := domain.ResolveFee(structures, student.StudentID, student.ClassID, req.FeeType, asOf)
		if resolved == nil {
			plan.noFeeStructure++
			continue
		}

		var carry decimal.Decimal
		if req.FeeType.IsMonthly() {
			if priorRec, ok := prior[student.StudentID]; ok {
				carry = domain.CarryForward(&priorRec)
			}
		}

		plan.records = append(plan.records, domain.FeePayment{
			PaymentID:       uuid.NewString(),
			SchoolID:        schoolID,
			StudentID:       student.StudentID,
			ClassID:         student.ClassID,
			FeeType:         req.FeeType,
			Period:          req.Period,
			Year:            req.Year,
			AmountDue:       resolved.Amount.Add(carry),
			AmountPaid:      decimal.Zero,
			PreviousBalance: carry,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	return plan, nil
}

// PreviewGeneration reports what a generation run would do without writing
// anything. The total is the sum of displayable (clamped) payables.
func (s *generationService) PreviewGeneration(ctx context.Context, schoolID string, req dto.GenerationRequest, requestingUserID string) (*dto.GenerationPreviewResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}
	if err := validateGenerationRequest(req); err != nil {
		return nil, err
	}

	plan, err := s.buildPlan(ctx, schoolID, req, requestingUserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerationPreviewResponse{
		WillCreate:     len(plan.records),
		AlreadyExist:   plan.alreadyExist,
		NoFeeStructure: plan.noFeeStructure,
		TotalAmount:    decimal.Zero,
		Students:       make([]dto.GenerationPreviewStudent, 0, min(len(plan.records), previewStudentCap)),
	}
	for i, rec := range plan.records {
		resp.TotalAmount = resp.TotalAmount.Add(rec.TotalPayable())
		if i < previewStudentCap {
			resp.Students = append(resp.Students, dto.GenerationPreviewStudent{
				StudentID:   rec.StudentID,
				StudentName: plan.studentNames[rec.StudentID],
				Amount:      rec.TotalPayable(),
			})
		}
	}
	resp.HasMore = len(plan.records) > previewStudentCap

	s.LogDebug(ctx, "Generation previewed",
		slog.String("school_id", schoolID),
		slog.String("fee_type", string(req.FeeType)),
		slog.Int("will_create", resp.WillCreate),
		slog.Int("already_exist", resp.AlreadyExist),
		slog.Int("no_fee_structure", resp.NoFeeStructure))
	return resp, nil
}

// Generate creates ledger records for all eligible students. Reruns are safe:
// students with an existing record for the key are skipped during planning, and
// the storage unique constraint catches anything created concurrently between
// planning and insert.
func (s *generationService) Generate(ctx context.Context, schoolID string, req dto.GenerationRequest, requestingUserID string) (*dto.GenerationResultResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}
	if err := validateGenerationRequest(req); err != nil {
		return nil, err
	}

	plan, err := s.buildPlan(ctx, schoolID, req, requestingUserID)
	if err != nil {
		return nil, err
	}

	var created, constraintSkipped int
	if len(plan.records) > 0 {
		created, constraintSkipped, err = s.paymentRepo.CreatePaymentsBatch(ctx, plan.records)
		if err != nil {
			s.LogError(ctx, err, "Failed to insert generated records",
				slog.String("school_id", schoolID),
				slog.String("fee_type", string(req.FeeType)),
				slog.Int("planned", len(plan.records)))
			return nil, fmt.Errorf("failed to generate fee records: %w", err)
		}
	}

	result := &dto.GenerationResultResponse{
		Created:        created,
		Skipped:        plan.alreadyExist + constraintSkipped,
		NoFeeStructure: plan.noFeeStructure,
	}

	s.LogInfo(ctx, "Fee generation completed",
		slog.String("school_id", schoolID),
		slog.String("fee_type", string(req.FeeType)),
		slog.Int("period", req.Period),
		slog.Int("year", req.Year),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
		slog.Int("no_fee_structure", result.NoFeeStructure))
	return result, nil
}
