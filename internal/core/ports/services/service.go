package services

// ServiceContainer holds instances of all the application services.
// It is used by the HTTP handlers and the maintenance CLI.
type ServiceContainer struct {
	Sequence    SequenceSvc
	Account     AccountSvcFacade
	Journal     JournalSvcFacade
	Enrollment  EnrollmentSvcFacade
	Receipt     ReceiptSvcFacade
	Expense     ExpenseSvcFacade
	Advance     AdvanceSvcFacade
	Reporting   ReportingSvcFacade
	Maintenance MaintenanceSvcFacade

	CostCenter   CostCenterSvcFacade
	Period       PeriodSvcFacade
	DiscountRule DiscountRuleSvcFacade
}
