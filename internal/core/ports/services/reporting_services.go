package services

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// ReportingSvcFacade answers read-only financial reports
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context, period domain.DateRange) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheetReport, error)
}

// MaintenanceSvcFacade holds operator-invoked consistency tools
type MaintenanceSvcFacade interface {
	// SetupChartOfAccounts creates the standard chart. Returns how many accounts were created.
	SetupChartOfAccounts(ctx context.Context, userID string) (int, error)
	RebuildAllBalances(ctx context.Context, userID string) (*domain.RebuildReport, error)
	VerifyBalances(ctx context.Context) (*domain.RebuildReport, error)
	AttachParents(ctx context.Context, dryRun bool, userID string) ([]domain.ParentAttachment, error)

	// Reconcile makes sure every student, enrollment and receipt has its accounts and entries.
	Reconcile(ctx context.Context, userID string) (*domain.ReconcileSummary, error)
}
