package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingPeriod is a named date range. Once closed, no entry dated inside
// it may be posted.
type AccountingPeriod struct {
	PeriodID  string     `json:"periodID"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	IsClosed  bool       `json:"isClosed"`
	ClosedAt  *time.Time `json:"closedAt"`
	ClosedBy  *string    `json:"closedBy"`
	AuditFields
}

// Range returns the period as an inclusive date range ending at the last
// instant of EndDate's day.
func (p AccountingPeriod) Range() DateRange {
	from := p.StartDate
	to := p.EndDate.Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
	return DateRange{From: &from, To: &to}
}

// Covers reports whether t falls inside the period.
func (p AccountingPeriod) Covers(t time.Time) bool {
	return p.Range().Contains(t)
}

// Budget is the planned amount for one account over one period.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	AccountID      string          `json:"accountID"`
	PeriodID       string          `json:"periodID"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          string          `json:"notes"`
	AuditFields
}

// BudgetReport pairs a budget with the posted activity of its account
// subtree inside the period.
type BudgetReport struct {
	Budget
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	PeriodName      string          `json:"periodName"`
	ActualAmount    decimal.Decimal `json:"actualAmount"`
	Variance        decimal.Decimal `json:"variance"`
	VariancePercent decimal.Decimal `json:"variancePercent"`
}

// NewBudgetReport computes variance = actual - budgeted and its percentage of
// the budget, which is zero when nothing was budgeted.
func NewBudgetReport(b Budget, actual decimal.Decimal) BudgetReport {
	variance := actual.Sub(b.BudgetedAmount)
	pct := decimal.Zero
	if b.BudgetedAmount.IsPositive() {
		pct = variance.Div(b.BudgetedAmount).Mul(hundred).Round(2)
	}
	return BudgetReport{Budget: b, ActualAmount: actual, Variance: variance, VariancePercent: pct}
}
