package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func testAccount(id, code string) domain.Account {
	now := time.Now()
	return domain.Account{
		AccountID:   id,
		Code:        code,
		Name:        code,
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "u", LastUpdatedAt: now, LastUpdatedBy: "u"},
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveAccount(ctx, testAccount("a1", "1000")))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.SaveAccount(ctx, testAccount("a2", "2000")))
		require.NoError(t, s.UpdateAccountBalances(ctx, map[string]decimal.Decimal{"a1": decimal.NewFromInt(5)}, "u", time.Now()))
		_, err := s.NextValue(ctx, "seq")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindAccountByCode(ctx, "2000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	acc, err := s.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	v, err := s.NextValue(ctx, "seq")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestNestedWithinTxJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			return s.SaveAccount(ctx, testAccount("a1", "1000"))
		})
	})
	require.NoError(t, err)

	_, err = s.FindAccountByCode(ctx, "1000")
	assert.NoError(t, err)
}

func TestSaveAccountRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveAccount(ctx, testAccount("a1", "1000")))

	err := s.SaveAccount(ctx, testAccount("a2", "1000"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestMarkEntryPostedTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.SaveAccount(ctx, testAccount("a1", "1000")))
	entry := domain.JournalEntry{EntryID: "e1", Reference: "JE-000001", Date: time.Now(), Description: "x", EntryType: domain.EntryManual}
	require.NoError(t, s.SaveEntry(ctx, entry, []domain.Transaction{{TransactionID: "t1", EntryID: "e1", AccountID: "a1", Amount: decimal.NewFromInt(1), IsDebit: true}}))

	require.NoError(t, s.MarkEntryPosted(ctx, "e1", "u", time.Now()))
	err := s.MarkEntryPosted(ctx, "e1", "u", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	err = s.SaveEntry(ctx, entry, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, items, page(items, 0, 0))
	assert.Equal(t, []int{2, 3}, page(items, 2, 1))
	assert.Equal(t, []int{}, page(items, 2, 9))
}
