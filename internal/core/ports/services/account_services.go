package services

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// AccountTree returns the chart as a forest of root nodes.
	AccountTree(ctx context.Context) ([]*domain.AccountNode, error)

	// Descendants enumerates the subtree below an account, skipping already visited nodes.
	Descendants(ctx context.Context, accountID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// GetOrCreate looks an account up by code and inserts it when missing.
	// An existing account's type is never changed.
	GetOrCreate(ctx context.Context, spec domain.AccountSpec, userID string) (*domain.Account, error)

	// EnsureKey get-or-creates the account addressed by key and all its ancestors.
	// Names and flags from spec apply to the keyed account only.
	EnsureKey(ctx context.Context, key domain.AccountKey, spec domain.AccountSpec, userID string) (*domain.Account, error)
}

// AccountFactorySvc resolves the well-known and per-entity accounts.
type AccountFactorySvc interface {
	GetCashAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetRevenueReturnsAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetAdvancesAccount(ctx context.Context, userID string) (*domain.Account, error)
	GetExpenseCategoryAccount(ctx context.Context, category domain.ExpenseCategory, userID string) (*domain.Account, error)
	GetOrCreateStudentARAccount(ctx context.Context, student domain.StudentRef, userID string) (*domain.Account, error)
	GetOrCreateEnrollmentARAccount(ctx context.Context, student domain.StudentRef, course domain.CourseRef, userID string) (*domain.Account, error)
	GetOrCreateCourseRevenueAccount(ctx context.Context, course domain.CourseRef, userID string) (*domain.Account, error)
	GetOrCreateCourseEarnedRevenueAccount(ctx context.Context, course domain.CourseRef, userID string) (*domain.Account, error)
	GetOrCreateEmployeeSalaryAccount(ctx context.Context, employee domain.EmployeeRef, userID string) (*domain.Account, error)
	GetOrCreateTeacherSalaryAccount(ctx context.Context, teacher domain.TeacherRef, userID string) (*domain.Account, error)
}

// AccountBalanceSvc maintains and checks the cached roll-up balances.
type AccountBalanceSvc interface {
	// BalanceOf computes the balance from posted transactions, optionally over the whole subtree.
	BalanceOf(ctx context.Context, accountID string, includeDescendants bool) (decimal.Decimal, error)

	// RollupBalance is own net plus the roll-up of every child; terminates on parent cycles.
	RollupBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ApplyPosting adds the signed effect of one line to the account and every ancestor.
	ApplyPosting(ctx context.Context, accountID string, isDebit bool, amount decimal.Decimal, userID string) error

	// ApplyPostings applies all lines of an entry, locking touched accounts once in id order.
	ApplyPostings(ctx context.Context, transactions []domain.Transaction, userID string) error

	// RebuildAll recomputes every cached balance from posted transactions, leaves first.
	RebuildAll(ctx context.Context, userID string) (*domain.RebuildReport, error)

	// VerifyBalances recomputes without writing and reports drift.
	VerifyBalances(ctx context.Context) (*domain.RebuildReport, error)

	// AttachParents infers missing parents from codes. With dryRun nothing is written.
	AttachParents(ctx context.Context, dryRun bool, userID string) ([]domain.ParentAttachment, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountFactorySvc
	AccountBalanceSvc
}
