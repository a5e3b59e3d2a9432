package services

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

// ExpenseSvcFacade books expenses
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEntry, error)

	// CreateJournalEntry posts Dr expense / Cr cash for the expense. Idempotent.
	CreateJournalEntry(ctx context.Context, expenseID string, userID string) (*domain.JournalEntry, error)

	GetExpense(ctx context.Context, expenseID string) (*domain.ExpenseEntry, error)
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseEntry, error)
}

// AdvanceSvcFacade pays and collects employee advances
type AdvanceSvcFacade interface {
	CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, userID string) (*domain.Advance, error)

	// CreateAdvanceJournalEntry posts Dr advances / Cr cash. Idempotent.
	CreateAdvanceJournalEntry(ctx context.Context, advanceID string, userID string) (*domain.JournalEntry, error)

	// CreateRepayment records a partial repayment and posts Dr cash / Cr advances.
	CreateRepayment(ctx context.Context, advanceID string, req dto.CreateRepaymentRequest, userID string) (*domain.Repayment, error)

	GetAdvance(ctx context.Context, advanceID string) (*domain.Advance, []domain.Repayment, error)
	ListAdvances(ctx context.Context, filter domain.AdvanceFilter) ([]domain.Advance, error)
}
