package services

import (
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...BaseOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	actor := NewActorResolver(cfg.SystemActorID)

	// Sequence and account services first since everything posts through them
	container.Sequence = NewSequenceService(repos.TxManager, repos.SequenceRepo, options...)
	container.Account = NewAccountService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, options...)
	container.Journal = NewJournalService(repos.TxManager, repos.JournalRepo, container.Account, container.Sequence,
		repos.CostCenterRepo, repos.PeriodRepo, actor, options...)

	container.CostCenter = NewCostCenterService(repos.TxManager, repos.CostCenterRepo, actor, options...)
	container.Period = NewPeriodService(repos.TxManager, repos.PeriodRepo, repos.JournalRepo, container.Account, actor, options...)
	container.DiscountRule = NewDiscountRuleService(repos.TxManager, repos.DiscountRuleRepo, actor, options...)

	container.Enrollment = NewEnrollmentService(repos.TxManager, repos.EnrollmentRepo, repos.DiscountRuleRepo, container.Account, container.Journal, actor, options...)
	container.Receipt = NewReceiptService(repos.TxManager, repos.ReceiptRepo, repos.EnrollmentRepo,
		container.Enrollment, container.Account, container.Journal, container.Sequence, actor, options...)
	container.Expense = NewExpenseService(repos.TxManager, repos.ExpenseRepo, container.Account, container.Journal, container.Sequence, actor, options...)
	container.Advance = NewAdvanceService(repos.TxManager, repos.AdvanceRepo, container.Account, container.Journal, container.Sequence, actor, options...)

	container.Reporting = NewReportingService(repos.AccountRepo, repos.JournalRepo, options...)
	container.Maintenance = NewMaintenanceService(container.Account, container.Journal, container.Enrollment,
		container.Receipt, repos.EnrollmentRepo, repos.ReceiptRepo, actor, options...)

	return container
}
