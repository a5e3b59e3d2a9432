package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is money paid to an employee ahead of salary, repaid in parts.
type Advance struct {
	AdvanceID    string          `json:"advanceID"`
	Reference    string          `json:"reference"`
	Employee     EmployeeRef     `json:"employee"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Purpose      string          `json:"purpose"`
	RepaidAmount decimal.Decimal `json:"repaidAmount"`
	IsRepaid     bool            `json:"isRepaid"`
	EntryID      *string         `json:"entryID"`
	AuditFields
}

// Outstanding is the part of the advance not yet repaid.
func (a Advance) Outstanding() decimal.Decimal {
	return a.Amount.Sub(a.RepaidAmount)
}

// Repayment is one partial repayment of an advance.
type Repayment struct {
	RepaymentID string          `json:"repaymentID"`
	AdvanceID   string          `json:"advanceID"`
	Reference   string          `json:"reference"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
	EntryID     *string         `json:"entryID"`
	AuditFields
}

// AdvanceFilter narrows advance listings.
type AdvanceFilter struct {
	EmployeeID *int64
	Open       *bool
	Limit      int
	Offset     int
}
