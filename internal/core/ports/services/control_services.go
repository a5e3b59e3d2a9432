package services

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

// CostCenterSvcFacade maintains the registry journal lines are tagged against
type CostCenterSvcFacade interface {
	CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, userID string) (*domain.CostCenter, error)
	GetCostCenter(ctx context.Context, code string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, activeOnly bool) ([]domain.CostCenter, error)
	// DeactivateCostCenter keeps history but rejects new lines tagged with code.
	DeactivateCostCenter(ctx context.Context, code string, userID string) (*domain.CostCenter, error)
}

// PeriodSvcFacade manages accounting periods and their budgets
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error)
	GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)
	// CurrentPeriod returns the first period covering at, or ErrNotFound.
	CurrentPeriod(ctx context.Context, at time.Time) (*domain.AccountingPeriod, error)
	// ClosePeriod blocks posting of entries dated inside the period.
	ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.AccountingPeriod, error)

	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.BudgetReport, error)
	// GetBudget reports the budget against the posted activity of its account subtree.
	GetBudget(ctx context.Context, budgetID string) (*domain.BudgetReport, error)
	ListBudgets(ctx context.Context, periodID string) ([]domain.BudgetReport, error)
}

// DiscountRuleSvcFacade maintains reusable enrollment discounts
type DiscountRuleSvcFacade interface {
	CreateDiscountRule(ctx context.Context, req dto.CreateDiscountRuleRequest, userID string) (*domain.DiscountRule, error)
	GetDiscountRule(ctx context.Context, ruleID string) (*domain.DiscountRule, error)
	ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error)
	DeactivateDiscountRule(ctx context.Context, ruleID string, userID string) (*domain.DiscountRule, error)
}
