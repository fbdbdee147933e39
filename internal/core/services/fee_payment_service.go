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
	ErrNegativePayment = errors.New("paid amount must not be negative")
	ErrAccountRequired = errors.New("an account is required when recording a positive payment")
)

// feePaymentService handles individual ledger records and payment recording.
type feePaymentService struct {
	BaseService
	paymentRepo portsrepo.FeePaymentRepositoryFacade
	studentRepo portsrepo.StudentReader
	accountRepo portsrepo.AccountReader
}

// NewFeePaymentService creates a new fee payment service.
func NewFeePaymentService(paymentRepo portsrepo.FeePaymentRepositoryFacade, studentRepo portsrepo.StudentReader, accountRepo portsrepo.AccountReader, authorizer portssvc.SchoolAuthorizerSvc) portssvc.FeePaymentSvcFacade {
	return &feePaymentService{
		BaseService: BaseService{SchoolAuthorizer: authorizer},
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.FeePaymentSvcFacade = (*feePaymentService)(nil)

// GetPaymentByID retrieves a ledger record scoped to the school.
func (s *feePaymentService) GetPaymentByID(ctx context.Context, schoolID string, paymentID string, requestingUserID string) (*domain.FeePayment, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, schoolID, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger record by ID", slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	return payment, nil
}

// ListPayments retrieves a filtered, token-paginated page of ledger records.
func (s *feePaymentService) ListPayments(ctx context.Context, schoolID string, userID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	filter := portsrepo.ListPaymentsFilter{
		Period:    params.Period,
		Year:      params.Year,
		ClassID:   params.ClassID,
		StudentID: params.StudentID,
	}
	if params.FeeType != nil {
		ft := domain.FeeType(*params.FeeType)
		if !ft.IsValid() {
			return nil, fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, *params.FeeType)
		}
		filter.FeeType = &ft
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, schoolID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger records", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}

	return &dto.ListPaymentsResponse{
		Payments:  dto.ToFeePaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

// CreatePayment manually creates a single ledger record. The prior month's
// balance is carried forward exactly as bulk generation would.
func (s *feePaymentService) CreatePayment(ctx context.Context, schoolID string, req dto.CreateFeePaymentRequest, creatorUserID string) (*domain.FeePayment, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}
	if !req.FeeType.IsValid() {
		return nil, fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, req.FeeType)
	}
	if req.FeeType.IsMonthly() {
		if req.Period < 1 || req.Period > 12 {
			return nil, fmt.Errorf("%w: monthly records require a period between 1 and 12", apperrors.ErrValidation)
		}
	} else if req.Period != 0 {
		return nil, fmt.Errorf("%w: period must be 0 for %s fees", apperrors.ErrValidation, req.FeeType)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: student %s not found", apperrors.ErrValidation, req.StudentID)
		}
		return nil, fmt.Errorf("failed to validate student: %w", err)
	}

	carry := decimal.Zero
	if req.FeeType.IsMonthly() {
		priorMonth, priorYear := domain.PriorPeriod(req.Period, req.Year)
		priorRec, err := s.paymentRepo.FindPaymentByKey(ctx, schoolID, req.StudentID, req.FeeType, priorMonth, priorYear)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up prior month record: %w", err)
		}
		carry = domain.CarryForward(priorRec)
	}

	now := time.Now()
	payment := domain.FeePayment{
		PaymentID:       uuid.NewString(),
		SchoolID:        schoolID,
		StudentID:       student.StudentID,
		ClassID:         student.ClassID,
		FeeType:         req.FeeType,
		Period:          req.Period,
		Year:            req.Year,
		AmountDue:       req.AmountDue.Add(carry),
		AmountPaid:      decimal.Zero,
		PreviousBalance: carry,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save ledger record", slog.String("student_id", req.StudentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Ledger record created manually", slog.String("payment_id", payment.PaymentID), slog.String("student_id", student.StudentID))
	return &payment, nil
}

// RecordPayment sets the paid amount and collection details on a ledger
// record. AmountPaid is the record's new total, not an increment.
func (s *feePaymentService) RecordPayment(ctx context.Context, schoolID string, paymentID string, req dto.RecordPaymentRequest, requestingUserID string) (*domain.FeePayment, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativePayment)
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, schoolID, paymentID)
	if err != nil {
		return nil, err
	}

	accountID := payment.AccountID
	if req.AccountID != nil && *req.AccountID != "" {
		accountID = req.AccountID
	}
	if req.AmountPaid.IsPositive() {
		if accountID == nil || *accountID == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountRequired)
		}
		account, err := s.accountRepo.FindAccountByID(ctx, schoolID, *accountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, *accountID)
			}
			return nil, fmt.Errorf("failed to validate account: %w", err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, *accountID)
		}
	}

	payment.AmountPaid = req.AmountPaid
	payment.AccountID = accountID
	if req.Method != "" {
		payment.Method = req.Method
	}
	if req.ReceiptNo != "" {
		payment.ReceiptNo = req.ReceiptNo
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = req.PaymentDate
	} else if req.AmountPaid.IsPositive() && payment.PaymentDate == nil {
		now := time.Now()
		payment.PaymentDate = &now
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = requestingUserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		s.LogError(ctx, err, "Failed to update ledger record", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	status, _ := domain.Classify(payment.AmountDue, payment.AmountPaid)
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", paymentID),
		slog.String("student_id", payment.StudentID),
		slog.String("status", string(status)),
		slog.String("amount_paid", payment.AmountPaid.String()))
	return payment, nil
}

// DeletePayment removes a ledger record. Deleting a prior month's record does
// not retroactively recompute carry-forwards already baked into later months.
func (s *feePaymentService) DeletePayment(ctx context.Context, schoolID string, paymentID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, schoolID, paymentID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete ledger record", slog.String("payment_id", paymentID))
		}
		return err
	}

	s.LogInfo(ctx, "Ledger record deleted", slog.String("payment_id", paymentID), slog.String("by_user_id", requestingUserID))
	return nil
}

// BulkMarkPaid marks each listed record as paid in full with a shared method,
// account and date. Best-effort: failures on individual records are reported,
// not rolled back.
func (s *feePaymentService) BulkMarkPaid(ctx context.Context, schoolID string, req dto.BulkMarkPaidRequest, requestingUserID string) (*dto.BulkOperationResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, schoolID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, fmt.Errorf("failed to validate account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	resp := &dto.BulkOperationResponse{}
	for _, paymentID := range req.PaymentIDs {
		payment, err := s.paymentRepo.FindPaymentByID(ctx, schoolID, paymentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				resp.NotFound++
			} else {
				s.LogError(ctx, err, "Failed to load record during bulk mark-paid", slog.String("payment_id", paymentID))
				resp.Failed++
				resp.FailedIDs = append(resp.FailedIDs, paymentID)
			}
			continue
		}

		payment.AmountPaid = payment.TotalPayable()
		payment.Method = req.Method
		payment.AccountID = &req.AccountID
		payment.PaymentDate = &paymentDate
		payment.LastUpdatedAt = time.Now()
		payment.LastUpdatedBy = requestingUserID

		if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
			s.LogError(ctx, err, "Failed to update record during bulk mark-paid", slog.String("payment_id", paymentID))
			resp.Failed++
			resp.FailedIDs = append(resp.FailedIDs, paymentID)
			continue
		}
		resp.Succeeded++
	}

	s.LogInfo(ctx, "Bulk mark-paid completed",
		slog.String("school_id", schoolID),
		slog.Int("succeeded", resp.Succeeded),
		slog.Int("not_found", resp.NotFound),
		slog.Int("failed", resp.Failed))
	return resp, nil
}

// BulkDelete deletes each listed record, reporting per-id outcomes.
func (s *feePaymentService) BulkDelete(ctx context.Context, schoolID string, req dto.BulkDeleteRequest, requestingUserID string) (*dto.BulkOperationResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	resp := &dto.BulkOperationResponse{}
	for _, paymentID := range req.PaymentIDs {
		if err := s.paymentRepo.DeletePayment(ctx, schoolID, paymentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				resp.NotFound++
			} else {
				s.LogError(ctx, err, "Failed to delete record during bulk delete", slog.String("payment_id", paymentID))
				resp.Failed++
				resp.FailedIDs = append(resp.FailedIDs, paymentID)
			}
			continue
		}
		resp.Succeeded++
	}

	s.LogInfo(ctx, "Bulk delete completed",
		slog.String("school_id", schoolID),
		slog.Int("succeeded", resp.Succeeded),
		slog.Int("not_found", resp.NotFound),
		slog.Int("failed", resp.Failed))
	return resp, nil
}
