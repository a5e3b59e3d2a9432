package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCenter is a row of the cost_centers table.
type CostCenter struct {
	Code        string `db:"code"`
	Name        string `db:"name"`
	NameLocal   string `db:"name_local"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// AccountingPeriod is a row of the accounting_periods table.
type AccountingPeriod struct {
	PeriodID  string     `db:"period_id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	EndDate   time.Time  `db:"end_date"`
	IsClosed  bool       `db:"is_closed"`
	ClosedAt  *time.Time `db:"closed_at"`
	ClosedBy  *string    `db:"closed_by"`
	AuditFields
}

// Budget is a row of the budgets table.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	AccountID      string          `db:"account_id"`
	PeriodID       string          `db:"period_id"`
	BudgetedAmount decimal.Decimal `db:"budgeted_amount"`
	Notes          string          `db:"notes"`
	AuditFields
}

// DiscountRule is a row of the discount_rules table.
type DiscountRule struct {
	RuleID          string          `db:"rule_id"`
	Reason          string          `db:"reason"`
	ReasonLocal     string          `db:"reason_local"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
