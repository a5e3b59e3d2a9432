package repositories

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// ExpenseRepositoryFacade defines persistence for expense entries
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.ExpenseEntry) error
	UpdateExpenseEntry(ctx context.Context, expenseID string, entryID string, userID string) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseEntry, error)
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseEntry, error)
}

// AdvanceRepositoryFacade defines persistence for employee advances and repayments
type AdvanceRepositoryFacade interface {
	SaveAdvance(ctx context.Context, advance domain.Advance) error
	// UpdateAdvance persists repaid amount, repaid flag and entry link.
	UpdateAdvance(ctx context.Context, advance domain.Advance) error
	FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error)
	FindAdvanceForUpdate(ctx context.Context, advanceID string) (*domain.Advance, error)
	ListAdvances(ctx context.Context, filter domain.AdvanceFilter) ([]domain.Advance, error)
	SaveRepayment(ctx context.Context, repayment domain.Repayment) error
	ListRepayments(ctx context.Context, advanceID string) ([]domain.Repayment, error)
}
