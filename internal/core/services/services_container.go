package services

import (
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The school service doubles as the authorizer every other service checks
	// membership through, so it is built first.
	container.School = NewSchoolService(repos.SchoolRepo)
	authorizer := container.School.(portssvc.SchoolAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Student = NewStudentService(repos.StudentRepo, authorizer)
	container.Account = NewAccountService(repos.AccountRepo, authorizer)
	container.FeeStructure = NewFeeStructureService(repos.FeeStructureRepo, repos.StudentRepo, authorizer)
	container.Generation = NewGenerationService(repos.FeeStructureRepo, repos.StudentRepo, repos.FeePaymentRepo, authorizer)
	container.FeePayment = NewFeePaymentService(repos.FeePaymentRepo, repos.StudentRepo, repos.AccountRepo, authorizer)
	container.OtherIncome = NewOtherIncomeService(repos.OtherIncomeRepo, repos.AccountRepo, authorizer)
	container.Reporting = NewReportingService(repos.FeePaymentRepo, repos.StudentRepo, authorizer)

	container.TokenService = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time interface checks for service implementations
var (
	_ portssvc.SchoolSvcFacade       = (*schoolService)(nil)
	_ portssvc.FeeStructureSvcFacade = (*feeStructureService)(nil)
	_ portssvc.GenerationSvcFacade   = (*generationService)(nil)
	_ portssvc.FeePaymentSvcFacade   = (*feePaymentService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
)
