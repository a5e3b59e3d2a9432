package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	defer s.lock(ctx)()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	defer s.lock(ctx)()
	id, ok := s.accountCodes[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc := s.accounts[id]
	return &acc, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	defer s.lock(ctx)()
	return s.accountsByIDs(accountIDs), nil
}

func (s *Store) accountsByIDs(accountIDs []string) map[string]domain.Account {
	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok {
			result[id] = acc
		}
	}
	return result
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	defer s.lock(ctx)()
	result := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		result = append(result, acc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (s *Store) ListChildren(ctx context.Context, parentID string) ([]domain.Account, error) {
	defer s.lock(ctx)()
	result := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if acc.HasParent() && *acc.ParentAccountID == parentID {
			result = append(result, acc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	defer s.lock(ctx)()
	if _, ok := s.accountCodes[account.Code]; ok {
		return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
	}
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account id %s", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	s.accountCodes[account.Code] = account.AccountID
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	defer s.lock(ctx)()
	existing, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.Name = account.Name
	existing.NameLocal = account.NameLocal
	existing.ParentAccountID = account.ParentAccountID
	existing.IsActive = account.IsActive
	existing.IsCourseAccount = account.IsCourseAccount
	existing.CourseName = account.CourseName
	existing.IsStudentAccount = account.IsStudentAccount
	existing.StudentName = account.StudentName
	existing.LastUpdatedAt = account.LastUpdatedAt
	existing.LastUpdatedBy = account.LastUpdatedBy
	s.accounts[account.AccountID] = existing
	return nil
}

func (s *Store) SetAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	defer s.lock(ctx)()
	for id, balance := range balances {
		acc, ok := s.accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		acc.Balance = balance
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		s.accounts[id] = acc
	}
	return nil
}

func (s *Store) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	defer s.lock(ctx)()
	return s.accountsByIDs(accountIDs), nil
}

func (s *Store) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	defer s.lock(ctx)()
	for id, delta := range balanceChanges {
		acc, ok := s.accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		acc.Balance = acc.Balance.Add(delta)
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		s.accounts[id] = acc
	}
	return nil
}
