package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager      TransactionManager
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	SequenceRepo   SequenceRepository
	EnrollmentRepo EnrollmentRepositoryFacade
	ReceiptRepo    ReceiptRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	AdvanceRepo    AdvanceRepositoryFacade

	CostCenterRepo   CostCenterRepositoryFacade
	PeriodRepo       PeriodRepositoryFacade
	DiscountRuleRepo DiscountRuleRepositoryFacade
}
