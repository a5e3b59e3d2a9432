package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	Reference     string          `db:"reference"`
	ExpenseDate   time.Time       `db:"expense_date"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Vendor        string          `db:"vendor"`
	PaymentMethod string          `db:"payment_method"`
	EmployeeID    *int64          `db:"employee_id"`
	EmployeeName  *string         `db:"employee_name"`
	TeacherID     *int64          `db:"teacher_id"`
	TeacherName   *string         `db:"teacher_name"`
	EntryID       *string         `db:"entry_id"`
	AuditFields
}

// Advance is a row of the employee_advances table.
type Advance struct {
	AdvanceID    string          `db:"advance_id"`
	Reference    string          `db:"reference"`
	EmployeeID   int64           `db:"employee_id"`
	EmployeeName string          `db:"employee_name"`
	AdvanceDate  time.Time       `db:"advance_date"`
	Amount       decimal.Decimal `db:"amount"`
	Purpose      string          `db:"purpose"`
	RepaidAmount decimal.Decimal `db:"repaid_amount"`
	IsRepaid     bool            `db:"is_repaid"`
	EntryID      *string         `db:"entry_id"`
	AuditFields
}

// Repayment is a row of the advance_repayments table.
type Repayment struct {
	RepaymentID   string          `db:"repayment_id"`
	AdvanceID     string          `db:"advance_id"`
	Reference     string          `db:"reference"`
	RepaymentDate time.Time       `db:"repayment_date"`
	Amount        decimal.Decimal `db:"amount"`
	Notes         string          `db:"notes"`
	EntryID       *string         `db:"entry_id"`
	AuditFields
}
