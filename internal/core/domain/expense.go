package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseEntry is a cash outflow booked against an expense account.
type ExpenseEntry struct {
	ExpenseID     string          `json:"expenseID"`
	Reference     string          `json:"reference"`
	Date          time.Time       `json:"date"`
	Category      ExpenseCategory `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Vendor        string          `json:"vendor"`
	PaymentMethod string          `json:"paymentMethod"`
	Employee      *EmployeeRef    `json:"employee"`
	Teacher       *TeacherRef     `json:"teacher"`
	EntryID       *string         `json:"entryID"`
	AuditFields
}

// ExpenseAccountKey picks the account debited by the expense: the personal
// salary account when the category and payee match, else the category account.
func (e ExpenseEntry) ExpenseAccountKey() AccountKey {
	switch {
	case e.Category == CategorySalary && e.Employee != nil:
		return EmployeeSalaryKey(e.Employee.ID)
	case e.Category == CategoryTeacherSalary && e.Teacher != nil:
		return TeacherSalaryKey(e.Teacher.ID)
	}
	return ExpenseCategoryKey(e.Category)
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Category *ExpenseCategory
	Range    DateRange
	Limit    int
	Offset   int
}
