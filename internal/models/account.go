package models

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account is a row of the accounts table.
// ParentAccountID is nullable; roots carry NULL.
type Account struct {
	AccountID        string          `db:"account_id"`
	Code             string          `db:"code"`
	Name             string          `db:"name"`
	NameLocal        string          `db:"name_local"`
	AccountType      AccountType     `db:"account_type"`
	ParentAccountID  *string         `db:"parent_account_id"`
	IsActive         bool            `db:"is_active"`
	IsCourseAccount  bool            `db:"is_course_account"`
	CourseName       string          `db:"course_name"`
	IsStudentAccount bool            `db:"is_student_account"`
	StudentName      string          `db:"student_name"`
	Balance          decimal.Decimal `db:"balance"`
	AuditFields
}
