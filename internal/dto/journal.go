package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit or credit line of a new journal entry.
type EntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	IsDebit     bool            `json:"isDebit"`
	CostCenter  string          `json:"costCenter" binding:"max=64"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	Reference   string             `json:"reference" binding:"max=64"` // Optional, generated when empty
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description" binding:"required"`
	EntryType   domain.EntryType   `json:"entryType" binding:"omitempty,oneof=MANUAL ENROLLMENT PAYMENT COMPLETION EXPENSE ADJUSTMENT"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	Post        bool               `json:"post"` // post immediately
}

// ToNewEntry converts the request to the domain input.
func (r CreateJournalEntryRequest) ToNewEntry() domain.NewEntry {
	entryType := r.EntryType
	if entryType == "" {
		entryType = domain.EntryManual
	}
	lines := make([]domain.EntryLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.EntryLine{
			AccountID:   l.AccountID,
			Amount:      l.Amount,
			IsDebit:     l.IsDebit,
			CostCenter:  l.CostCenter,
			Description: l.Description,
		}
	}
	return domain.NewEntry{
		Reference:   r.Reference,
		Date:        r.Date,
		Description: r.Description,
		EntryType:   entryType,
		Lines:       lines,
	}
}

// ReverseEntryRequest defines the optional data for a reversal.
type ReverseEntryRequest struct {
	Description *string `json:"description"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"` // DEBIT or CREDIT
	CostCenter    string          `json:"costCenter,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string           `json:"entryID"`
	Reference    string           `json:"reference"`
	Date         time.Time        `json:"date"`
	Description  string           `json:"description"`
	EntryType    domain.EntryType `json:"entryType"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	IsPosted     bool             `json:"isPosted"`
	PostedAt     *time.Time       `json:"postedAt,omitempty"`
	PostedBy     *string          `json:"postedBy,omitempty"`
	ReversalOfID *string          `json:"reversalOfID,omitempty"`
	ReversedByID *string          `json:"reversedByID,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	CreatedBy    string           `json:"createdBy"`
}

// GetJournalEntryResponse defines the combined response for an entry and its lines.
type GetJournalEntryResponse struct {
	Entry        JournalEntryResponse  `json:"entry"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int        `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken *string    `form:"nextToken"`
	EntryType *string    `form:"entryType" binding:"omitempty,oneof=MANUAL ENROLLMENT PAYMENT COMPLETION EXPENSE ADJUSTMENT"`
	Posted    *bool      `form:"posted"`
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ToDomain converts the query to repository params.
func (p ListJournalEntriesParams) ToDomain() domain.ListEntriesParams {
	params := domain.ListEntriesParams{
		Limit:     p.Limit,
		NextToken: p.NextToken,
		Posted:    p.Posted,
		Range:     domain.DateRange{From: p.From, To: p.To},
	}
	if p.EntryType != nil {
		t := domain.EntryType(*p.EntryType)
		params.EntryType = &t
	}
	return params
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// LedgerParams defines query parameters for an account ledger.
type LedgerParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// LedgerLineResponse is one line of an account ledger.
type LedgerLineResponse struct {
	TransactionID  string           `json:"transactionID"`
	EntryID        string           `json:"entryID"`
	Reference      string           `json:"reference"`
	Date           time.Time        `json:"date"`
	EntryType      domain.EntryType `json:"entryType"`
	Description    string           `json:"description"`
	Debit          decimal.Decimal  `json:"debit"`
	Credit         decimal.Decimal  `json:"credit"`
	RunningBalance decimal.Decimal  `json:"runningBalance"`
}

// AccountLedgerResponse wraps a page of ledger lines.
type AccountLedgerResponse struct {
	Account   AccountResponse      `json:"account"`
	Lines     []LedgerLineResponse `json:"lines"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = TransactionResponse{
			TransactionID: txn.TransactionID,
			AccountID:     txn.AccountID,
			Amount:        txn.Amount,
			Type:          txn.Side(),
			CostCenter:    txn.CostCenter,
			Description:   txn.Description,
		}
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		Reference:    e.Reference,
		Date:         e.Date,
		Description:  e.Description,
		EntryType:    e.EntryType,
		TotalAmount:  e.TotalAmount,
		IsPosted:     e.IsPosted,
		PostedAt:     e.PostedAt,
		PostedBy:     e.PostedBy,
		ReversalOfID: e.ReversalOfID,
		ReversedByID: e.ReversedByID,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToLedgerLineResponses converts ledger lines to DTOs.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	res := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		debit, credit := decimal.Zero, decimal.Zero
		if l.IsDebit {
			debit = l.Amount
		} else {
			credit = l.Amount
		}
		desc := l.Description
		if desc == "" {
			desc = l.EntryDesc
		}
		res[i] = LedgerLineResponse{
			TransactionID:  l.TransactionID,
			EntryID:        l.EntryID,
			Reference:      l.Reference,
			Date:           l.EntryDate,
			EntryType:      l.EntryType,
			Description:    desc,
			Debit:          debit,
			Credit:         credit,
			RunningBalance: l.RunningBalance,
		}
	}
	return res
}
