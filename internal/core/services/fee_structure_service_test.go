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

type FeeStructureServiceTestSuite struct {
	suite.Suite
	mockStructureRepo *MockFeeStructureRepository
	mockStudentRepo   *MockStudentRepository
	mockAuthorizer    *MockSchoolAuthorizer
	service           portssvc.FeeStructureSvcFacade

	schoolID string
	userID   string
	classID  string
}

func (suite *FeeStructureServiceTestSuite) SetupTest() {
	suite.mockStructureRepo = new(MockFeeStructureRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockAuthorizer = new(MockSchoolAuthorizer)
	suite.service = services.NewFeeStructureService(suite.mockStructureRepo, suite.mockStudentRepo, suite.mockAuthorizer)

	suite.schoolID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.classID = uuid.NewString()
}

func (suite *FeeStructureServiceTestSuite) authorize(role domain.UserSchoolRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.schoolID, role).Return(nil)
}

func (suite *FeeStructureServiceTestSuite) TestCreateStructure_ClassScope() {
	ctx := context.Background()
	req := dto.CreateFeeStructureRequest{
		ClassID:       &suite.classID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("1500"),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.authorize(domain.RoleStaff)
	suite.mockStudentRepo.On("FindClassByID", mock.Anything, suite.schoolID, suite.classID).
		Return(&domain.SchoolClass{ClassID: suite.classID, SchoolID: suite.schoolID, Name: "Grade 5"}, nil).Once()
	suite.mockStructureRepo.On("SaveStructureSuperseding", mock.Anything, mock.AnythingOfType("domain.FeeStructure")).
		Return(nil).Once()

	created, err := suite.service.CreateStructure(ctx, suite.schoolID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.StructureID)
	suite.Equal(suite.schoolID, created.SchoolID)
	suite.Equal(&suite.classID, created.ClassID)
	suite.Nil(created.StudentID)
	suite.True(created.IsActive)
	suite.True(created.MonthlyAmount.Equal(decimal.RequireFromString("1500")))
	suite.mockStructureRepo.AssertExpectations(suite.T())
}

func (suite *FeeStructureServiceTestSuite) TestCreateStructure_RejectsBothScopes() {
	ctx := context.Background()
	studentID := uuid.NewString()
	req := dto.CreateFeeStructureRequest{
		ClassID:       &suite.classID,
		StudentID:     &studentID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("1500"),
		EffectiveFrom: time.Now(),
	}

	suite.authorize(domain.RoleStaff)

	_, err := suite.service.CreateStructure(ctx, suite.schoolID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStructureRepo.AssertNotCalled(suite.T(), "SaveStructureSuperseding", mock.Anything, mock.Anything)
}

func (suite *FeeStructureServiceTestSuite) TestCreateStructure_RejectsNeitherScope() {
	ctx := context.Background()
	req := dto.CreateFeeStructureRequest{
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("1500"),
		EffectiveFrom: time.Now(),
	}

	suite.authorize(domain.RoleStaff)

	_, err := suite.service.CreateStructure(ctx, suite.schoolID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FeeStructureServiceTestSuite) TestCreateStructure_RejectsNegativeAmount() {
	ctx := context.Background()
	req := dto.CreateFeeStructureRequest{
		ClassID:       &suite.classID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("-5"),
		EffectiveFrom: time.Now(),
	}

	suite.authorize(domain.RoleStaff)

	_, err := suite.service.CreateStructure(ctx, suite.schoolID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FeeStructureServiceTestSuite) TestCreateStructure_UnknownStudent() {
	ctx := context.Background()
	studentID := uuid.NewString()
	req := dto.CreateFeeStructureRequest{
		StudentID:     &studentID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("800"),
		EffectiveFrom: time.Now(),
	}

	suite.authorize(domain.RoleStaff)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateStructure(ctx, suite.schoolID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *FeeStructureServiceTestSuite) TestResolveFee_OverrideBeatsDefault() {
	ctx := context.Background()
	studentID := uuid.NewString()
	asOf := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	classDefault := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		ClassID:       &suite.classID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("1000"),
		EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	override := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		StudentID:     &studentID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("600"),
		EffectiveFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}

	suite.authorize(domain.RoleReadOnly)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: suite.classID, Status: domain.EnrollmentActive}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{classDefault, override}, nil).Once()

	resolved, err := suite.service.ResolveFee(ctx, suite.schoolID, studentID, domain.FeeMonthly, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.True(resolved.Amount.Equal(decimal.RequireFromString("600")))
	suite.Equal(domain.SourceStudentOverride, resolved.Source)
}

func (suite *FeeStructureServiceTestSuite) TestResolveFee_FutureOverrideIgnored() {
	ctx := context.Background()
	studentID := uuid.NewString()
	asOf := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	classDefault := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		ClassID:       &suite.classID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("1000"),
		EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	futureOverride := domain.FeeStructure{
		StructureID:   uuid.NewString(),
		SchoolID:      suite.schoolID,
		StudentID:     &studentID,
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: decimal.RequireFromString("600"),
		EffectiveFrom: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}

	suite.authorize(domain.RoleReadOnly)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: suite.classID, Status: domain.EnrollmentActive}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeMonthly).
		Return([]domain.FeeStructure{classDefault, futureOverride}, nil).Once()

	resolved, err := suite.service.ResolveFee(ctx, suite.schoolID, studentID, domain.FeeMonthly, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resolved)
	suite.True(resolved.Amount.Equal(decimal.RequireFromString("1000")))
	suite.Equal(domain.SourceClassDefault, resolved.Source)
}

func (suite *FeeStructureServiceTestSuite) TestResolveFee_NoStructureSentinel() {
	ctx := context.Background()
	studentID := uuid.NewString()

	suite.authorize(domain.RoleReadOnly)
	suite.mockStudentRepo.On("FindStudentByID", mock.Anything, suite.schoolID, studentID).
		Return(&domain.Student{StudentID: studentID, SchoolID: suite.schoolID, ClassID: suite.classID, Status: domain.EnrollmentActive}, nil).Once()
	suite.mockStructureRepo.On("ListStructuresForFeeType", mock.Anything, suite.schoolID, domain.FeeBooks).
		Return([]domain.FeeStructure{}, nil).Once()

	resolved, err := suite.service.ResolveFee(ctx, suite.schoolID, studentID, domain.FeeBooks, time.Now(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoFeeStructure)
	suite.Nil(resolved)
}

func (suite *FeeStructureServiceTestSuite) TestGetStructureByID_OtherSchoolHidden() {
	ctx := context.Background()
	structureID := uuid.NewString()
	otherSchool := uuid.NewString()

	suite.authorize(domain.RoleReadOnly)
	suite.mockStructureRepo.On("FindStructureByID", mock.Anything, structureID).
		Return(&domain.FeeStructure{StructureID: structureID, SchoolID: otherSchool}, nil).Once()

	_, err := suite.service.GetStructureByID(ctx, suite.schoolID, structureID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *FeeStructureServiceTestSuite) TestDeactivateStructure_AlreadyInactive() {
	ctx := context.Background()
	structureID := uuid.NewString()

	suite.authorize(domain.RoleStaff)
	suite.mockStructureRepo.On("FindStructureByID", mock.Anything, structureID).
		Return(&domain.FeeStructure{StructureID: structureID, SchoolID: suite.schoolID, IsActive: false}, nil).Once()

	err := suite.service.DeactivateStructure(ctx, suite.schoolID, structureID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockStructureRepo.AssertNotCalled(suite.T(), "DeactivateStructure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFeeStructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeStructureServiceTestSuite))
}
