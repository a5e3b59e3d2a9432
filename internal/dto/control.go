package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCostCenterRequest registers a cost center.
type CreateCostCenterRequest struct {
	Code        string `json:"code" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=255"`
	NameLocal   string `json:"nameLocal" binding:"max=255"`
	Description string `json:"description"`
}

// CreatePeriodRequest defines an accounting period. Dates are inclusive.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=100"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CreateBudgetRequest plans an amount for an account over a period.
type CreateBudgetRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	PeriodID       string          `json:"periodID" binding:"required"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount" binding:"gte=0"`
	Notes          string          `json:"notes"`
}

// CreateDiscountRuleRequest defines a reusable enrollment discount.
type CreateDiscountRuleRequest struct {
	Reason          string          `json:"reason" binding:"required,max=100"`
	ReasonLocal     string          `json:"reasonLocal" binding:"max=100"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"gte=0,lte=100"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" binding:"gte=0"`
	Description     string          `json:"description"`
}

// ListActiveParams selects whether inactive registry rows are included.
type ListActiveParams struct {
	ActiveOnly bool `form:"activeOnly"`
}

// CurrentPeriodParams picks the date to find a period for; defaults to today.
type CurrentPeriodParams struct {
	Date *time.Time `form:"date" time_format:"2006-01-02" time_utc:"1"`
}
