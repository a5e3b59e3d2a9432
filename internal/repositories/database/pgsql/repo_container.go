package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      newPgxTransactionManager(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		SequenceRepo:   newPgxSequenceRepository(dbPool),
		EnrollmentRepo: newPgxEnrollmentRepository(dbPool),
		ReceiptRepo:    newPgxReceiptRepository(dbPool),
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		AdvanceRepo:    newPgxAdvanceRepository(dbPool),

		CostCenterRepo:   newPgxCostCenterRepository(dbPool),
		PeriodRepo:       newPgxPeriodRepository(dbPool),
		DiscountRuleRepo: newPgxDiscountRuleRepository(dbPool),
	}
}
