package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PersonRequest identifies an employee or teacher.
type PersonRequest struct {
	ID       int64  `json:"id" binding:"required,gt=0"`
	FullName string `json:"fullName" binding:"required"`
}

// CreateExpenseRequest defines the data needed to book an expense.
type CreateExpenseRequest struct {
	Date          *time.Time             `json:"date"`
	Category      domain.ExpenseCategory `json:"category" binding:"required,oneof=SALARY TEACHER_SALARY RENT UTILITIES SUPPLIES MARKETING MAINTENANCE OTHER"`
	Description   string                 `json:"description" binding:"required"`
	Amount        decimal.Decimal        `json:"amount" binding:"required,gt=0"`
	Vendor        string                 `json:"vendor"`
	PaymentMethod string                 `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK CARD TRANSFER"`
	Employee      *PersonRequest         `json:"employee"`
	Teacher       *PersonRequest         `json:"teacher"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Category *string    `form:"category" binding:"omitempty,oneof=SALARY TEACHER_SALARY RENT UTILITIES SUPPLIES MARKETING MAINTENANCE OTHER"`
	From     *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To       *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit    int        `form:"limit,default=50" binding:"min=1,max=200"`
	Offset   int        `form:"offset,default=0" binding:"min=0"`
}

// ToDomain converts the query to a repository filter.
func (p ListExpensesParams) ToDomain() domain.ExpenseFilter {
	filter := domain.ExpenseFilter{Range: domain.DateRange{From: p.From, To: p.To}, Limit: p.Limit, Offset: p.Offset}
	if p.Category != nil {
		c := domain.ExpenseCategory(*p.Category)
		filter.Category = &c
	}
	return filter
}

// CreateAdvanceRequest defines the data needed to pay an employee advance.
type CreateAdvanceRequest struct {
	Employee PersonRequest   `json:"employee" binding:"required"`
	Date     *time.Time      `json:"date"`
	Amount   decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Purpose  string          `json:"purpose"`
}

// CreateRepaymentRequest defines the data for a partial advance repayment.
type CreateRepaymentRequest struct {
	Date   *time.Time      `json:"date"`
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Notes  string          `json:"notes"`
}

// ListAdvancesParams defines query parameters for listing advances.
type ListAdvancesParams struct {
	EmployeeID *int64 `form:"employeeID"`
	Open       *bool  `form:"open"`
	Limit      int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ToDomain converts the query to a repository filter.
func (p ListAdvancesParams) ToDomain() domain.AdvanceFilter {
	return domain.AdvanceFilter{EmployeeID: p.EmployeeID, Open: p.Open, Limit: p.Limit, Offset: p.Offset}
}

// AdvanceResponse is an advance with its repayments.
type AdvanceResponse struct {
	domain.Advance
	Outstanding decimal.Decimal    `json:"outstanding"`
	Repayments  []domain.Repayment `json:"repayments"`
}
