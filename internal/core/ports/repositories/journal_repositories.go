package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries and their lines
type JournalReader interface {
	// FindEntryByID retrieves a journal entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindTransactionsByEntryID retrieves the lines of an entry.
	FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error)

	// ListEntries retrieves entries newest first with token pagination.
	ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error)

	// ListPostedLinesByAccount retrieves posted lines of one account oldest first.
	ListPostedLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)

	// SumPostedByAccount returns posted debit/credit totals of every account with postings in the range.
	SumPostedByAccount(ctx context.Context, dateRange domain.DateRange) (map[string]domain.AccountTotals, error)

	// SumPostedForAccount returns posted debit/credit totals of a single account.
	SumPostedForAccount(ctx context.Context, accountID string) (domain.AccountTotals, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry inserts a draft entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error

	// FindEntryForUpdate retrieves an entry and locks its row.
	FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// MarkEntryPosted stamps posted_at/posted_by. Only draft entries are updated.
	MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error

	// MarkEntryReversed links an entry to the entry that reversed it.
	MarkEntryReversed(ctx context.Context, entryID string, reversedByID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
