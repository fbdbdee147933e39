package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// reportingService aggregates ledger records into summaries, defaulter lists
// and export rows. All reports are read-only.
type reportingService struct {
	BaseService
	paymentRepo portsrepo.FeePaymentReader
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(paymentRepo portsrepo.FeePaymentReader, studentRepo portsrepo.StudentRepositoryFacade, authorizer portssvc.SchoolAuthorizerSvc) portssvc.ReportingService {
	return &reportingService{
		BaseService: BaseService{SchoolAuthorizer: authorizer},
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// classDisplayName combines name and section the way receipts print them.
func classDisplayName(c domain.SchoolClass) string {
	if c.Section != "" {
		return c.Name + " " + c.Section
	}
	return c.Name
}

func (s *reportingService) classNames(ctx context.Context, schoolID string) (map[string]string, error) {
	classes, err := s.studentRepo.ListClasses(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	names := make(map[string]string, len(classes))
	for _, c := range classes {
		names[c.ClassID] = classDisplayName(c)
	}
	return names, nil
}

// periodRecords loads every ledger record for one (feeType, period, year) key,
// optionally restricted to a class.
func (s *reportingService) periodRecords(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int, classID *string) ([]domain.FeePayment, error) {
	byStudent, err := s.paymentRepo.MapPaymentsByStudent(ctx, schoolID, feeType, period, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger records: %w", err)
	}
	records := make([]domain.FeePayment, 0, len(byStudent))
	for _, rec := range byStudent {
		if classID != nil && rec.ClassID != *classID {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Summary aggregates a period's ledger records into dashboard totals.
func (s *reportingService) Summary(ctx context.Context, schoolID string, params dto.SummaryParams, userID string) (*domain.FeeSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	feeType := domain.FeeType(params.FeeType)
	if !feeType.IsValid() {
		return nil, fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, params.FeeType)
	}

	records, err := s.periodRecords(ctx, schoolID, feeType, params.Period, params.Year, params.ClassID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load records for summary", slog.String("school_id", schoolID))
		return nil, err
	}
	names, err := s.classNames(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load class names for summary", slog.String("school_id", schoolID))
		return nil, err
	}

	summary := domain.Summarize(records, names)
	s.LogDebug(ctx, "Summary generated",
		slog.String("school_id", schoolID),
		slog.String("fee_type", params.FeeType),
		slog.Int("record_count", len(records)))
	return &summary, nil
}

// Defaulters lists students with an outstanding balance for a period, largest
// balance first.
func (s *reportingService) Defaulters(ctx context.Context, schoolID string, params dto.DefaultersParams, userID string) ([]dto.DefaulterResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	feeType := domain.FeeType(params.FeeType)
	if !feeType.IsValid() {
		return nil, fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, params.FeeType)
	}

	minDue := decimal.Zero
	if params.MinDue != nil && *params.MinDue != "" {
		parsed, err := decimal.NewFromString(*params.MinDue)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid minDue %q", apperrors.ErrValidation, *params.MinDue)
		}
		minDue = parsed
	}

	outstanding, err := s.paymentRepo.ListOutstanding(ctx, schoolID, feeType, params.Period, params.Year, params.ClassID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding records", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list outstanding records: %w", err)
	}

	students, err := s.studentRepo.ListStudents(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students for defaulter report", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	studentsByID := make(map[string]domain.Student, len(students))
	for _, st := range students {
		studentsByID[st.StudentID] = st
	}

	names, err := s.classNames(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load class names for defaulter report", slog.String("school_id", schoolID))
		return nil, err
	}

	defaulters := make([]dto.DefaulterResponse, 0, len(outstanding))
	for _, rec := range outstanding {
		balance := rec.Balance()
		if balance.LessThan(minDue) || !balance.IsPositive() {
			continue
		}
		st := studentsByID[rec.StudentID]
		defaulters = append(defaulters, dto.DefaulterResponse{
			StudentID:   rec.StudentID,
			StudentName: st.Name,
			RollNo:      st.RollNo,
			ClassName:   names[rec.ClassID],
			Balance:     balance,
			Status:      rec.Status(),
		})
	}
	sort.Slice(defaulters, func(i, j int) bool {
		if !defaulters[i].Balance.Equal(defaulters[j].Balance) {
			return defaulters[i].Balance.GreaterThan(defaulters[j].Balance)
		}
		return strings.ToLower(defaulters[i].StudentName) < strings.ToLower(defaulters[j].StudentName)
	})

	return defaulters, nil
}

// ExportRows flattens a period's ledger records for CSV export, sorted by
// class then student name.
func (s *reportingService) ExportRows(ctx context.Context, schoolID string, params dto.ExportParams, userID string) ([]domain.ExportRow, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	feeType := domain.FeeType(params.FeeType)
	if !feeType.IsValid() {
		return nil, fmt.Errorf("%w: unknown fee type %s", apperrors.ErrValidation, params.FeeType)
	}

	records, err := s.periodRecords(ctx, schoolID, feeType, params.Period, params.Year, params.ClassID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load records for export", slog.String("school_id", schoolID))
		return nil, err
	}

	students, err := s.studentRepo.ListStudents(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students for export", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	studentsByID := make(map[string]domain.Student, len(students))
	for _, st := range students {
		studentsByID[st.StudentID] = st
	}

	names, err := s.classNames(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load class names for export", slog.String("school_id", schoolID))
		return nil, err
	}

	rows := make([]domain.ExportRow, 0, len(records))
	for _, rec := range records {
		st := studentsByID[rec.StudentID]
		status, balance := domain.Classify(rec.AmountDue, rec.AmountPaid)
		rows = append(rows, domain.ExportRow{
			StudentName:     st.Name,
			RollNo:          st.RollNo,
			ClassName:       names[rec.ClassID],
			FeeType:         rec.FeeType,
			Period:          rec.Period,
			Year:            rec.Year,
			MonthlyFee:      rec.MonthlyFee(),
			PreviousBalance: rec.PreviousBalance,
			AmountDue:       rec.AmountDue,
			AmountPaid:      rec.AmountPaid,
			Balance:         balance,
			Status:          status,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		ci := strings.ToLower(rows[i].ClassName)
		cj := strings.ToLower(rows[j].ClassName)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(rows[i].StudentName) < strings.ToLower(rows[j].StudentName)
	})

	return rows, nil
}
