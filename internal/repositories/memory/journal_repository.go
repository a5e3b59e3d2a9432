package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/utils/accounting"
	"github.com/SscSPs/institute_ledger/internal/utils/pagination"
)

func (s *Store) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	defer s.lock(ctx)()
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

func (s *Store) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	defer s.lock(ctx)()
	txns := s.transactions[entryID]
	result := make([]domain.Transaction, len(txns))
	copy(result, txns)
	return result, nil
}

// ListEntries returns entries newest first by (date, created_at, id).
func (s *Store) ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	defer s.lock(ctx)()

	var cursor *pagination.Cursor
	if params.NextToken != nil && *params.NextToken != "" {
		c, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	rows := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if params.EntryType != nil && e.EntryType != *params.EntryType {
			continue
		}
		if params.Posted != nil && e.IsPosted != *params.Posted {
			continue
		}
		if !params.Range.Contains(e.Date) {
			continue
		}
		if cursor != nil && !cursor.Before(e.Date, e.CreatedAt, e.EntryID) {
			continue
		}
		rows = append(rows, e)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		c := pagination.Cursor{Date: b.Date, CreatedAt: b.CreatedAt, ID: b.EntryID}
		return c.After(a.Date, a.CreatedAt, a.EntryID)
	})

	limit := pagination.ClampLimit(params.Limit)
	var next *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.EntryID)
		next = &token
	}
	return rows, next, nil
}

// ListPostedLinesByAccount returns posted lines oldest first with the
// account's own running balance after each line.
func (s *Store) ListPostedLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	defer s.lock(ctx)()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	lines := make([]domain.LedgerLine, 0)
	for entryID, txns := range s.transactions {
		entry := s.entries[entryID]
		if !entry.IsPosted {
			continue
		}
		for _, txn := range txns {
			if txn.AccountID != accountID {
				continue
			}
			lines = append(lines, domain.LedgerLine{
				Transaction: txn,
				Reference:   entry.Reference,
				EntryDate:   entry.Date,
				EntryType:   entry.EntryType,
				EntryDesc:   entry.Description,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		c := pagination.Cursor{Date: a.EntryDate, CreatedAt: a.CreatedAt, ID: a.TransactionID}
		return c.After(b.EntryDate, b.CreatedAt, b.TransactionID)
	})

	running := decimal.Zero
	result := make([]domain.LedgerLine, 0)
	limit = pagination.ClampLimit(limit)
	var next *string
	for _, line := range lines {
		signed, err := accounting.CalculateSignedAmount(line.Transaction, acc.AccountType)
		if err != nil {
			return nil, nil, err
		}
		running = running.Add(signed)
		line.RunningBalance = running
		if cursor != nil && !cursor.After(line.EntryDate, line.CreatedAt, line.TransactionID) {
			continue
		}
		if len(result) == limit {
			last := result[len(result)-1]
			token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.TransactionID)
			next = &token
			break
		}
		result = append(result, line)
	}
	return result, next, nil
}

func (s *Store) SumPostedByAccount(ctx context.Context, dateRange domain.DateRange) (map[string]domain.AccountTotals, error) {
	defer s.lock(ctx)()
	totals := make(map[string]domain.AccountTotals)
	for entryID, txns := range s.transactions {
		entry := s.entries[entryID]
		if !entry.IsPosted || !dateRange.Contains(entry.Date) {
			continue
		}
		for _, txn := range txns {
			totals[txn.AccountID] = addLine(totals[txn.AccountID], txn)
		}
	}
	return totals, nil
}

func (s *Store) SumPostedForAccount(ctx context.Context, accountID string) (domain.AccountTotals, error) {
	defer s.lock(ctx)()
	total := domain.AccountTotals{Debit: decimal.Zero, Credit: decimal.Zero}
	for entryID, txns := range s.transactions {
		if !s.entries[entryID].IsPosted {
			continue
		}
		for _, txn := range txns {
			if txn.AccountID == accountID {
				total = addLine(total, txn)
			}
		}
	}
	return total, nil
}

func addLine(t domain.AccountTotals, txn domain.Transaction) domain.AccountTotals {
	if txn.IsDebit {
		t.Debit = t.Debit.Add(txn.Amount)
	} else {
		t.Credit = t.Credit.Add(txn.Amount)
	}
	return t
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error {
	defer s.lock(ctx)()
	if _, ok := s.entryRefs[entry.Reference]; ok {
		return fmt.Errorf("%w: journal reference %s", apperrors.ErrDuplicate, entry.Reference)
	}
	for _, txn := range transactions {
		if _, ok := s.accounts[txn.AccountID]; !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, txn.AccountID)
		}
	}
	s.entries[entry.EntryID] = entry
	s.entryRefs[entry.Reference] = entry.EntryID
	txns := make([]domain.Transaction, len(transactions))
	copy(txns, transactions)
	s.transactions[entry.EntryID] = txns
	return nil
}

func (s *Store) FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.FindEntryByID(ctx, entryID)
}

func (s *Store) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	defer s.lock(ctx)()
	entry, ok := s.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if entry.IsPosted {
		return fmt.Errorf("%w: entry %s already posted", apperrors.ErrConflict, entryID)
	}
	entry.IsPosted = true
	entry.PostedAt = &postedAt
	entry.PostedBy = &postedBy
	entry.LastUpdatedAt = postedAt
	entry.LastUpdatedBy = postedBy
	s.entries[entryID] = entry
	return nil
}

func (s *Store) MarkEntryReversed(ctx context.Context, entryID string, reversedByID string, userID string, now time.Time) error {
	defer s.lock(ctx)()
	entry, ok := s.entries[entryID]
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.ReversedByID = &reversedByID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.entries[entryID] = entry
	return nil
}

func (s *Store) NextValue(ctx context.Context, key string) (int64, error) {
	defer s.lock(ctx)()
	s.sequences[key]++
	return s.sequences[key], nil
}
