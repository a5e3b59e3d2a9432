package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID      string          `db:"entry_id"`
	Reference    string          `db:"reference"`
	EntryDate    time.Time       `db:"entry_date"`
	Description  string          `db:"description"`
	EntryType    string          `db:"entry_type"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	IsPosted     bool            `db:"is_posted"`
	PostedAt     *time.Time      `db:"posted_at"`
	PostedBy     *string         `db:"posted_by"`
	ReversalOfID *string         `db:"reversal_of_id"`
	ReversedByID *string         `db:"reversed_by_id"`
	AuditFields
}

// LedgerLine is a transaction joined with its entry and the running
// balance of the account after the line.
type LedgerLine struct {
	Transaction
	Reference      string          `db:"reference"`
	EntryDate      time.Time       `db:"entry_date"`
	EntryType      string          `db:"entry_type"`
	EntryDesc      string          `db:"entry_description"`
	RunningBalance decimal.Decimal `db:"running_balance"`
}
