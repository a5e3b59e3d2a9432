package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies what produced a journal entry.
type EntryType string

const (
	EntryManual     EntryType = "MANUAL"
	EntryEnrollment EntryType = "ENROLLMENT"
	EntryPayment    EntryType = "PAYMENT"
	EntryCompletion EntryType = "COMPLETION"
	EntryExpense    EntryType = "EXPENSE"
	EntryAdjustment EntryType = "ADJUSTMENT"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryManual, EntryEnrollment, EntryPayment, EntryCompletion, EntryExpense, EntryAdjustment:
		return true
	}
	return false
}

// JournalEntry groups balanced transactions. It is created as a draft and
// posted exactly once; posting is terminal.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`
	Reference    string          `json:"reference"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	EntryType    EntryType       `json:"entryType"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	IsPosted     bool            `json:"isPosted"`
	PostedAt     *time.Time      `json:"postedAt"`
	PostedBy     *string         `json:"postedBy"`
	ReversalOfID *string         `json:"reversalOfID"` // set on entries that reverse another
	ReversedByID *string         `json:"reversedByID"` // set on entries that have been reversed
	AuditFields
}

// EntryLine is one requested debit or credit of a new entry.
type EntryLine struct {
	AccountID   string
	Amount      decimal.Decimal
	IsDebit     bool
	CostCenter  string
	Description string
}

// NewEntry is the input for creating a journal entry.
type NewEntry struct {
	Reference   string
	Date        time.Time
	Description string
	EntryType   EntryType
	Lines       []EntryLine
}

// LedgerLine is one transaction as seen from an account's ledger.
type LedgerLine struct {
	Transaction
	Reference      string          `json:"reference"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	EntryDesc      string          `json:"entryDescription"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// ListEntriesParams filters and paginates journal entry listings.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
	EntryType *EntryType
	Posted    *bool
	Range     DateRange
}
