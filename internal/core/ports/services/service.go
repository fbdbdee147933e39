package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	FeeStructure FeeStructureSvcFacade
	Generation   GenerationSvcFacade
	FeePayment   FeePaymentSvcFacade
	Student      StudentSvcFacade
	Account      AccountSvcFacade
	OtherIncome  OtherIncomeSvcFacade
	School       SchoolSvcFacade
	User         UserSvcFacade
	Reporting    ReportingService

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
