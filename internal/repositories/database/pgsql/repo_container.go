package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	feeStructureRepo := newPgxFeeStructureRepository(dbPool)
	feePaymentRepo := newPgxFeePaymentRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	otherIncomeRepo := newPgxOtherIncomeRepository(dbPool)
	schoolRepo := newPgxSchoolRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		FeeStructureRepo: feeStructureRepo,
		FeePaymentRepo:   feePaymentRepo,
		StudentRepo:      studentRepo,
		AccountRepo:      accountRepo,
		OtherIncomeRepo:  otherIncomeRepo,
		SchoolRepo:       schoolRepo,
		UserRepo:         userRepo,
	}
}
