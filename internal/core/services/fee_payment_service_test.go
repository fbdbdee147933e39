package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/core/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// MockAccountRepository is a mock for portsrepo.AccountRepositoryFacade.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, schoolID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, schoolID, accountID)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, schoolID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, schoolID, activeOnly)
	accounts, _ := args.Get(0).([]domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, schoolID, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, schoolID, accountID, userID, now)
	return args.Error(0)
}

type FeePaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockFeePaymentRepository
	mockStudentRepo *MockStudentRepository
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockSchoolAuthorizer
	service         portssvc.FeePaymentSvcFacade

	schoolID string
	userID   string
}

func (suite *FeePaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockFeePaymentRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockSchoolAuthorizer)
	suite.service = services.NewFeePaymentService(suite.mockPaymentRepo, suite.mockStudentRepo, suite.mockAccountRepo, suite.mockAuthorizer)

	suite.schoolID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FeePaymentServiceTestSuite) allow(role domain.UserSchoolRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.schoolID, role).Return(nil)
}

func (suite *FeePaymentServiceTestSuite) ledgerRecord(due, paid string) *domain.FeePayment {
	return &domain.FeePayment{
		PaymentID:  uuid.NewString(),
		SchoolID:   suite.schoolID,
		StudentID:  uuid.NewString(),
		ClassID:    uuid.NewString(),
		FeeType:    domain.FeeMonthly,
		Period:     4,
		Year:       2024,
		AmountDue:  decimal.RequireFromString(due),
		AmountPaid: decimal.RequireFromString(paid),
	}
}

func (suite *FeePaymentServiceTestSuite) TestCreatePayment_CarriesPriorBalance() {
	ctx := context.Background()
	studentID := uuid.NewString()
	classID := uuid.NewString()

	suite.allow(domain.RoleStaff)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: classID, Status: domain.EnrollmentActive}, nil).Once()

	prior := suite.ledgerRecord("1000", "700")
	prior.StudentID = studentID
	prior.Period = 3
	suite.mockPaymentRepo.On("FindPaymentByKey", mock.Anything, suite.schoolID, studentID, domain.FeeMonthly, 3, 2024).
		Return(prior, nil).Once()

	var saved domain.FeePayment
	suite.mockPaymentRepo.On("SavePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.FeePayment) }).
		Return(nil).Once()

	req := dto.CreateFeePaymentRequest{
		StudentID: studentID,
		FeeType:   domain.FeeMonthly,
		Period:    4,
		Year:      2024,
		AmountDue: decimal.RequireFromString("1000"),
	}
	created, err := suite.service.CreatePayment(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.AmountDue.Equal(decimal.RequireFromString("1300")))
	suite.True(created.PreviousBalance.Equal(decimal.RequireFromString("300")))
	suite.True(saved.AmountPaid.IsZero())
	suite.Equal(classID, saved.ClassID)
}

func (suite *FeePaymentServiceTestSuite) TestCreatePayment_AnnualSkipsCarryLookup() {
	ctx := context.Background()
	studentID := uuid.NewString()

	suite.allow(domain.RoleStaff)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: uuid.NewString(), Status: domain.EnrollmentActive}, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(nil).Once()

	req := dto.CreateFeePaymentRequest{
		StudentID: studentID,
		FeeType:   domain.FeeAnnual,
		Period:    0,
		Year:      2024,
		AmountDue: decimal.RequireFromString("5000"),
	}
	created, err := suite.service.CreatePayment(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.PreviousBalance.IsZero())
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByKey",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FeePaymentServiceTestSuite) TestCreatePayment_DuplicateBillingKey() {
	ctx := context.Background()
	studentID := uuid.NewString()

	suite.allow(domain.RoleStaff)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: uuid.NewString(), Status: domain.EnrollmentActive}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByKey", mock.Anything, suite.schoolID, studentID, domain.FeeMonthly, 3, 2024).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("SavePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(apperrors.ErrDuplicate).Once()

	req := dto.CreateFeePaymentRequest{
		StudentID: studentID,
		FeeType:   domain.FeeMonthly,
		Period:    4,
		Year:      2024,
		AmountDue: decimal.RequireFromString("1000"),
	}
	_, err := suite.service.CreatePayment(ctx, suite.schoolID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *FeePaymentServiceTestSuite) TestRecordPayment_SetsTotalNotIncrement() {
	ctx := context.Background()
	record := suite.ledgerRecord("1000", "400")
	accountID := uuid.NewString()
	record.AccountID = &accountID

	suite.allow(domain.RoleStaff)
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, record.PaymentID).
		Return(record, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.schoolID, accountID).
		Return(&domain.Account{AccountID: accountID, SchoolID: suite.schoolID, IsActive: true}, nil).Once()

	var updated domain.FeePayment
	suite.mockPaymentRepo.On("UpdatePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.FeePayment) }).
		Return(nil).Once()

	req := dto.RecordPaymentRequest{AmountPaid: decimal.RequireFromString("600"), Method: domain.MethodCash}
	result, err := suite.service.RecordPayment(ctx, suite.schoolID, record.PaymentID, req, suite.userID)

	suite.Require().NoError(err)
	// 600 replaces the earlier 400; it is not added to it.
	suite.True(result.AmountPaid.Equal(decimal.RequireFromString("600")))
	suite.True(updated.AmountPaid.Equal(decimal.RequireFromString("600")))
	suite.NotNil(updated.PaymentDate)
}

func (suite *FeePaymentServiceTestSuite) TestRecordPayment_PositiveAmountRequiresAccount() {
	ctx := context.Background()
	record := suite.ledgerRecord("1000", "0")

	suite.allow(domain.RoleStaff)
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, record.PaymentID).
		Return(record, nil).Once()

	req := dto.RecordPaymentRequest{AmountPaid: decimal.RequireFromString("500")}
	_, err := suite.service.RecordPayment(ctx, suite.schoolID, record.PaymentID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment", mock.Anything, mock.Anything)
}

func (suite *FeePaymentServiceTestSuite) TestRecordPayment_InactiveAccountRejected() {
	ctx := context.Background()
	record := suite.ledgerRecord("1000", "0")
	accountID := uuid.NewString()

	suite.allow(domain.RoleStaff)
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, record.PaymentID).
		Return(record, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.schoolID, accountID).
		Return(&domain.Account{AccountID: accountID, SchoolID: suite.schoolID, IsActive: false}, nil).Once()

	req := dto.RecordPaymentRequest{AmountPaid: decimal.RequireFromString("500"), AccountID: &accountID}
	_, err := suite.service.RecordPayment(ctx, suite.schoolID, record.PaymentID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FeePaymentServiceTestSuite) TestRecordPayment_NegativeAmountRejected() {
	ctx := context.Background()

	suite.allow(domain.RoleStaff)

	req := dto.RecordPaymentRequest{AmountPaid: decimal.RequireFromString("-1")}
	_, err := suite.service.RecordPayment(ctx, suite.schoolID, uuid.NewString(), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindPaymentByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FeePaymentServiceTestSuite) TestRecordPayment_ZeroClearsWithoutAccount() {
	ctx := context.Background()
	record := suite.ledgerRecord("1000", "400")

	suite.allow(domain.RoleStaff)
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, record.PaymentID).
		Return(record, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Return(nil).Once()

	req := dto.RecordPaymentRequest{AmountPaid: decimal.Zero}
	result, err := suite.service.RecordPayment(ctx, suite.schoolID, record.PaymentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.AmountPaid.IsZero())
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FeePaymentServiceTestSuite) TestBulkMarkPaid_PartialOutcomes() {
	ctx := context.Background()
	accountID := uuid.NewString()

	okRecord := suite.ledgerRecord("1000", "0")
	missingID := uuid.NewString()

	suite.allow(domain.RoleStaff)
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.schoolID, accountID).
		Return(&domain.Account{AccountID: accountID, SchoolID: suite.schoolID, IsActive: true}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, okRecord.PaymentID).
		Return(okRecord, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, suite.schoolID, missingID).
		Return(nil, apperrors.ErrNotFound).Once()

	var updated domain.FeePayment
	suite.mockPaymentRepo.On("UpdatePayment", mock.Anything, mock.AnythingOfType("domain.FeePayment")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.FeePayment) }).
		Return(nil).Once()

	req := dto.BulkMarkPaidRequest{
		PaymentIDs: []string{okRecord.PaymentID, missingID},
		Method:     domain.MethodBank,
		AccountID:  accountID,
	}
	resp, err := suite.service.BulkMarkPaid(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Succeeded)
	suite.Equal(1, resp.NotFound)
	suite.Equal(0, resp.Failed)
	suite.True(updated.AmountPaid.Equal(okRecord.TotalPayable()))
	suite.Equal(domain.MethodBank, updated.Method)
}

func (suite *FeePaymentServiceTestSuite) TestBulkDelete_ReportsFailures() {
	ctx := context.Background()
	id1 := uuid.NewString()
	id2 := uuid.NewString()
	id3 := uuid.NewString()

	suite.allow(domain.RoleAdmin)
	suite.mockPaymentRepo.On("DeletePayment", mock.Anything, suite.schoolID, id1).Return(nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", mock.Anything, suite.schoolID, id2).Return(apperrors.ErrNotFound).Once()
	suite.mockPaymentRepo.On("DeletePayment", mock.Anything, suite.schoolID, id3).Return(context.DeadlineExceeded).Once()

	resp, err := suite.service.BulkDelete(ctx, suite.schoolID, dto.BulkDeleteRequest{PaymentIDs: []string{id1, id2, id3}}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Succeeded)
	suite.Equal(1, resp.NotFound)
	suite.Equal(1, resp.Failed)
	suite.Equal([]string{id3}, resp.FailedIDs)
}

func (suite *FeePaymentServiceTestSuite) TestListPayments_RejectsUnknownFeeType() {
	ctx := context.Background()
	bad := "TUITION"

	suite.allow(domain.RoleReadOnly)

	_, err := suite.service.ListPayments(ctx, suite.schoolID, suite.userID, dto.ListPaymentsParams{FeeType: &bad})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestFeePaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeePaymentServiceTestSuite))
}
