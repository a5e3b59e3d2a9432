package services

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.Transaction, error)
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
	AccountLedger(ctx context.Context, accountID string, params dto.LedgerParams) (*dto.AccountLedgerResponse, error)
}

// JournalWriterSvc defines the posting protocol
type JournalWriterSvc interface {
	// CreateEntry stores a draft entry with its lines.
	CreateEntry(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error)

	// PostEntry validates and applies a draft entry. Posting is terminal.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// CreateAndPost creates and posts an entry in one transaction.
	CreateAndPost(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry with every line flipped. The original stays posted.
	ReverseEntry(ctx context.Context, entryID string, userID string, description *string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
