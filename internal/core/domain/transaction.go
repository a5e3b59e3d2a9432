package domain

import "github.com/shopspring/decimal"

// MinimumAmount is the smallest amount a transaction line may carry.
var MinimumAmount = decimal.RequireFromString("0.01")

// Transaction is a single debit or credit line of a journal entry.
// Transactions are immutable once created.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	IsDebit       bool            `json:"isDebit"`
	CostCenter    string          `json:"costCenter,omitempty"`
	Description   string          `json:"description,omitempty"`
	AuditFields
}

// Side returns DEBIT or CREDIT.
func (t Transaction) Side() string {
	if t.IsDebit {
		return "DEBIT"
	}
	return "CREDIT"
}
