package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/core/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// MockFeeStructureRepository is a mock type for the FeeStructureRepositoryFacade interface
type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) FindStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) FindActiveStudentOverride(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, studentID, feeType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) FindActiveClassStructure(ctx context.Context, schoolID, classID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, classID, feeType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) ListStructuresForFeeType(ctx context.Context, schoolID string, feeType domain.FeeType) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID, feeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) ListStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) SaveStructure(ctx context.Context, structure domain.FeeStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockFeeStructureRepository) SaveStructureSuperseding(ctx context.Context, structure domain.FeeStructure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockFeeStructureRepository) DeactivateStructure(ctx context.Context, structureID string, userID string, now time.Time) error {
	args := m.Called(ctx, structureID, userID, now)
	return args.Error(0)
}

// MockStudentRepository is a mock type for the StudentRepositoryFacade interface
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, schoolID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListActiveStudents(ctx context.Context, schoolID string, classID *string) ([]domain.Student, error) {
	args := m.Called(ctx, schoolID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) FindClassByID(ctx context.Context, schoolID, classID string) (*domain.SchoolClass, error) {
	args := m.Called(ctx, schoolID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchoolClass), args.Error(1)
}

func (m *MockStudentRepository) ListClasses(ctx context.Context, schoolID string) ([]domain.SchoolClass, error) {
	args := m.Called(ctx, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SchoolClass), args.Error(1)
}

func (m *MockStudentRepository) SaveClass(ctx context.Context, class domain.SchoolClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockStudentRepository) UpdateClass(ctx context.Context, class domain.SchoolClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

// MockFeePaymentRepository is a mock type for the FeePaymentRepositoryFacade interface
type MockFeePaymentRepository struct {
	mock.Mock
}

func (m *MockFeePaymentRepository) FindPaymentByID(ctx context.Context, schoolID, paymentID string) (*domain.FeePayment, error) {
	args := m.Called(ctx, schoolID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepository) FindPaymentByKey(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, period, year int) (*domain.FeePayment, error) {
	args := m.Called(ctx, schoolID, studentID, feeType, period, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepository) MapPaymentsByStudent(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int) (map[string]domain.FeePayment, error) {
	args := m.Called(ctx, schoolID, feeType, period, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepository) ListPayments(ctx context.Context, schoolID string, filter portsrepo.ListPaymentsFilter, limit int, nextToken *string) ([]domain.FeePayment, *string, error) {
	args := m.Called(ctx, schoolID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.FeePayment), next, args.Error(2)
}

func (m *MockFeePaymentRepository) ListOutstanding(ctx context.Context, schoolID string, feeType domain.FeeType, period, year int, classID *string) ([]domain.FeePayment, error) {
	args := m.Called(ctx, schoolID, feeType, period, year, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

func (m *MockFeePaymentRepository) SavePayment(ctx context.Context, payment domain.FeePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockFeePaymentRepository) CreatePaymentsBatch(ctx context.Context, payments []domain.FeePayment) (int, int, error) {
	args := m.Called(ctx, payments)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockFeePaymentRepository) UpdatePayment(ctx context.Context, payment domain.FeePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockFeePaymentRepository) DeletePayment(ctx context.Context, schoolID, paymentID string) error {
	args := m.Called(ctx, schoolID, paymentID)
	return args.Error(0)
}

// MockSchoolAuthorizer is a mock type for the SchoolAuthorizerSvc interface
type MockSchoolAuthorizer struct {
	mock.Mock
}

func (m *MockSchoolAuthorizer) AuthorizeUserAction(ctx context.Context, userID, schoolID string, requiredRole domain.UserSchoolRole) error {
	args := m.Called(ctx, userID, schoolID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---

type GenerationServiceTestSuite struct {
	suite.Suite
	mockStructureRepo *MockFeeStructureRepository
	mockStudentRepo   *MockStudentRepository
	mockPaymentRepo   *MockFeePaymentRepository
	mockAuthorizer    *MockSchoolAuthorizer
	service           portssvc.GenerationSvcFacade

	schoolID string
	userID   string
	classID  string
}

func (suite *GenerationServiceTestSuite) SetupTest() {
	suite.mockStructureRepo = new(MockFeeStructureRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockPaymentRepo = new(MockFeePaymentRepository)
	suite.mockAuthorizer = new(MockSchoolAuthorizer)
	suite.service = services.NewGenerationService(suite.mockStructureRepo, suite.mockStudentRepo, suite.mockPaymentRepo, suite.mockAuthorizer)

	suite.schoolID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.classID = uuid.NewString()
}

func (suite *GenerationServiceTestSuite) authorizeStaff() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.schoolID, domain.RoleStaff).Return(nil)
}

func (suite *GenerationServiceTestSuite) classDefault(amount string) domain.FeeStructure {
	return domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		ClassID:       &suite.classID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString(amount),
		EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func (suite *GenerationServiceTestSuite) student(name string) domain.Student {
	return domain.Student{
		StudentID: uuid.NewString(),
		SchoolID:  suite.schoolID,
		ClassID:   suite.classID,
		Name:      name,
		Status:    domain.EnrollmentActive,
	}
}

// --- Test Cases ---

func (suite *GenerationServiceTestSuite) TestGenerate_CreatesRecordsWithCarryForward() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	s2 := suite.student("Bilal")
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 4, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1, s2}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	// No records exist for April yet.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 4, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	// March: s1 paid 600 of 1000, s2 has no record.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 3, 2024).
		Return(map[string]domain.FeePayment{
			s1.StudentID: {
				StudentID:  s1.StudentID,
				FeeType:    domain.FeeMonthly,
				AmountDue:  decimal.RequireFromString("1000"),
				AmountPaid: decimal.RequireFromString("600"),
			},
		}, nil).Once()

	var batched []domain.FeePayment
	suite.mockPaymentRepo.On("CreatePaymentsBatch", mock.Anything, mock.AnythingOfType("[]domain.FeePayment")).
		Run(func(args mock.Arguments) {
			batched = args.Get(1).([]domain.FeePayment)
		}).
		Return(2, 0, nil).Once()

	result, err := suite.service.Generate(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Created)
	suite.Equal(0, result.Skipped)
	suite.Equal(0, result.NoFeeStructure)

	suite.Require().Len(batched, 2)
	byStudent := map[string]domain.FeePayment{}
	for _, rec := range batched {
		byStudent[rec.StudentID] = rec
	}
	// s1 carries 400 forward: due = 1000 + 400.
	suite.True(byStudent[s1.StudentID].AmountDue.Equal(decimal.RequireFromString("1400")))
	suite.True(byStudent[s1.StudentID].PreviousBalance.Equal(decimal.RequireFromString("400")))
	// s2 had no March record: plain 1000.
	suite.True(byStudent[s2.StudentID].AmountDue.Equal(decimal.RequireFromString("1000")))
	suite.True(byStudent[s2.StudentID].PreviousBalance.IsZero())

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *GenerationServiceTestSuite) TestGenerate_RerunSkipsExisting() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	s2 := suite.student("Bilal")
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 4, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1, s2}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	// Both students already have April records.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 4, 2024).
		Return(map[string]domain.FeePayment{
			s1.StudentID: {StudentID: s1.StudentID},
			s2.StudentID: {StudentID: s2.StudentID},
		}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 3, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()

	result, err := suite.service.Generate(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Created)
	suite.Equal(2, result.Skipped)
	suite.Equal(0, result.NoFeeStructure)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentsBatch", mock.Anything, mock.Anything)
}

func (suite *GenerationServiceTestSuite) TestGenerate_OverpaymentCarriesCredit() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 2, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 2, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	// January: paid 1200 against 1000, leaving a 200 credit.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 1, 2024).
		Return(map[string]domain.FeePayment{
			s1.StudentID: {
				StudentID:  s1.StudentID,
				FeeType:    domain.FeeMonthly,
				AmountDue:  decimal.RequireFromString("1000"),
				AmountPaid: decimal.RequireFromString("1200"),
			},
		}, nil).Once()

	var batched []domain.FeePayment
	suite.mockPaymentRepo.On("CreatePaymentsBatch", mock.Anything, mock.AnythingOfType("[]domain.FeePayment")).
		Run(func(args mock.Arguments) {
			batched = args.Get(1).([]domain.FeePayment)
		}).
		Return(1, 0, nil).Once()

	_, err := suite.service.Generate(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(batched, 1)
	suite.True(batched[0].AmountDue.Equal(decimal.RequireFromString("800")))
	suite.True(batched[0].PreviousBalance.Equal(decimal.RequireFromString("-200")))
	suite.True(batched[0].TotalPayable().Equal(decimal.RequireFromString("800")))
}

func (suite *GenerationServiceTestSuite) TestGenerate_JanuaryCarriesFromPriorDecember() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 1, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 1, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	// The prior period of January 2024 is December 2023.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 12, 2023).
		Return(map[string]domain.FeePayment{
			s1.StudentID: {
				StudentID:  s1.StudentID,
				FeeType:    domain.FeeMonthly,
				AmountDue:  decimal.RequireFromString("1000"),
				AmountPaid: decimal.Zero,
			},
		}, nil).Once()
	suite.mockPaymentRepo.On("CreatePaymentsBatch", mock.Anything, mock.AnythingOfType("[]domain.FeePayment")).
		Return(1, 0, nil).Once()

	result, err := suite.service.Generate(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Created)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *GenerationServiceTestSuite) TestGenerate_NoStructureStudentsAreCountedNotFatal() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	orphanClass := uuid.NewString()
	s2 := domain.Student{
		StudentID: uuid.NewString(),
		SchoolID:  suite.schoolID,
		ClassID:   orphanClass,
		Name:      "Bilal",
		Status:    domain.EnrollmentActive,
	}
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 4, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1, s2}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 4, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 3, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	suite.mockPaymentRepo.On("CreatePaymentsBatch", mock.Anything, mock.AnythingOfType("[]domain.FeePayment")).
		Return(1, 0, nil).Once()

	result, err := suite.service.Generate(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Created)
	suite.Equal(1, result.NoFeeStructure)
}

func (suite *GenerationServiceTestSuite) TestGenerate_ValidationRejectsBadPeriods() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.schoolID, domain.RoleStaff).Return(nil)

	_, err := suite.service.Generate(ctx, suite.schoolID, dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 0, Year: 2024}, suite.userID)
	suite.Error(err)

	_, err = suite.service.Generate(ctx, suite.schoolID, dto.GenerationRequest{FeeType: domain.FeeAnnual, Period: 6, Year: 2024}, suite.userID)
	suite.Error(err)

	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentsBatch", mock.Anything, mock.Anything)
}

func (suite *GenerationServiceTestSuite) TestPreview_ReportsCountsWithoutPersisting() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	s2 := suite.student("Bilal")
	s3 := suite.student("Chandni")
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 4, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1, s2, s3}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000")}, nil).Once()
	// s3 already has an April record.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 4, 2024).
		Return(map[string]domain.FeePayment{
			s3.StudentID: {StudentID: s3.StudentID},
		}, nil).Once()
	// s1 owes 400 from March.
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 3, 2024).
		Return(map[string]domain.FeePayment{
			s1.StudentID: {
				StudentID:  s1.StudentID,
				FeeType:    domain.FeeMonthly,
				AmountDue:  decimal.RequireFromString("1000"),
				AmountPaid: decimal.RequireFromString("600"),
			},
		}, nil).Once()

	preview, err := suite.service.PreviewGeneration(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, preview.WillCreate)
	suite.Equal(1, preview.AlreadyExist)
	suite.Equal(0, preview.NoFeeStructure)
	// 1400 (s1 with carry) + 1000 (s2).
	suite.True(preview.TotalAmount.Equal(decimal.RequireFromString("2400")))
	suite.Len(preview.Students, 2)
	suite.False(preview.HasMore)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentsBatch", mock.Anything, mock.Anything)
}

func (suite *GenerationServiceTestSuite) TestPreview_StudentOverrideBeatsClassDefault() {
	ctx := context.Background()
	s1 := suite.student("Aisha")
	override := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		StudentID:     &s1.StudentID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("700"),
		EffectiveFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	req := dto.GenerationRequest{FeeType: domain.FeeMonthly, Period: 4, Year: 2024}

	suite.authorizeStaff()
	suite.mockStudentRepo.On("ListActiveStudents", mock.Anything, suite.schoolID, (*string)(nil)).
		Return([]domain.Student{s1}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{suite.classDefault("1000"), override}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 4, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()
	suite.mockPaymentRepo.On("MapPaymentsByStudent", mock.Anything, suite.schoolID, domain.FeeMonthly, 3, 2024).
		Return(map[string]domain.FeePayment{}, nil).Once()

	preview, err := suite.service.PreviewGeneration(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(preview.Students, 1)
	suite.True(preview.Students[0].Amount.Equal(decimal.RequireFromString("700")))
}

func TestGenerationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GenerationServiceTestSuite))
}
