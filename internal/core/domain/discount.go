package domain

import "github.com/shopspring/decimal"

// DiscountRule is a named, reusable discount applied when enrolling.
type DiscountRule struct {
	RuleID          string          `json:"ruleID"`
	Reason          string          `json:"reason"`
	ReasonLocal     string          `json:"reasonLocal"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
