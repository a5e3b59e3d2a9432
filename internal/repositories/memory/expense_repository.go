package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func (s *Store) SaveExpense(ctx context.Context, expense domain.ExpenseEntry) error {
	defer s.lock(ctx)()
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) UpdateExpenseEntry(ctx context.Context, expenseID string, entryID string, userID string) error {
	defer s.lock(ctx)()
	e, ok := s.expenses[expenseID]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.EntryID = &entryID
	e.LastUpdatedBy = userID
	s.expenses[expenseID] = e
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseEntry, error) {
	defer s.lock(ctx)()
	e, ok := s.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseEntry, error) {
	defer s.lock(ctx)()
	result := make([]domain.ExpenseEntry, 0)
	for _, e := range s.expenses {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if !filter.Range.Contains(e.Date) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Reference > result[j].Reference
	})
	return page(result, filter.Limit, filter.Offset), nil
}

func (s *Store) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	defer s.lock(ctx)()
	s.advances[advance.AdvanceID] = advance
	return nil
}

func (s *Store) UpdateAdvance(ctx context.Context, advance domain.Advance) error {
	defer s.lock(ctx)()
	existing, ok := s.advances[advance.AdvanceID]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.RepaidAmount = advance.RepaidAmount
	existing.IsRepaid = advance.IsRepaid
	existing.EntryID = advance.EntryID
	existing.LastUpdatedAt = advance.LastUpdatedAt
	existing.LastUpdatedBy = advance.LastUpdatedBy
	s.advances[advance.AdvanceID] = existing
	return nil
}

func (s *Store) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	defer s.lock(ctx)()
	a, ok := s.advances[advanceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *Store) FindAdvanceForUpdate(ctx context.Context, advanceID string) (*domain.Advance, error) {
	return s.FindAdvanceByID(ctx, advanceID)
}

func (s *Store) ListAdvances(ctx context.Context, filter domain.AdvanceFilter) ([]domain.Advance, error) {
	defer s.lock(ctx)()
	result := make([]domain.Advance, 0)
	for _, a := range s.advances {
		if filter.EmployeeID != nil && a.Employee.ID != *filter.EmployeeID {
			continue
		}
		if filter.Open != nil && *filter.Open == a.IsRepaid {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Reference > result[j].Reference
	})
	return page(result, filter.Limit, filter.Offset), nil
}

func (s *Store) SaveRepayment(ctx context.Context, repayment domain.Repayment) error {
	defer s.lock(ctx)()
	if _, ok := s.advances[repayment.AdvanceID]; !ok {
		return apperrors.ErrNotFound
	}
	s.repayments[repayment.RepaymentID] = repayment
	return nil
}

func (s *Store) ListRepayments(ctx context.Context, advanceID string) ([]domain.Repayment, error) {
	defer s.lock(ctx)()
	result := make([]domain.Repayment, 0)
	for _, r := range s.repayments {
		if r.AdvanceID == advanceID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Reference < result[j].Reference
	})
	return result, nil
}
