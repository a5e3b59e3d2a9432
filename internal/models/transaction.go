package models

import "github.com/shopspring/decimal"

// Transaction is a row of the transactions table, one debit or credit line.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	EntryID       string          `db:"entry_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	IsDebit       bool            `db:"is_debit"`
	CostCenter    string          `db:"cost_center"`
	Description   string          `db:"description"`
	AuditFields
}
