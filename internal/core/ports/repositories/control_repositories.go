package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// CostCenterReader looks up cost centers by code.
type CostCenterReader interface {
	FindCostCenterByCode(ctx context.Context, code string) (*domain.CostCenter, error)
}

// CostCenterRepositoryFacade defines persistence for the cost center registry
type CostCenterRepositoryFacade interface {
	CostCenterReader
	SaveCostCenter(ctx context.Context, center domain.CostCenter) error
	UpdateCostCenter(ctx context.Context, center domain.CostCenter) error
	ListCostCenters(ctx context.Context, activeOnly bool) ([]domain.CostCenter, error)
}

// PeriodReader answers whether a date may still be posted to.
type PeriodReader interface {
	// FindClosedPeriodCovering returns a closed period containing date, or ErrNotFound.
	FindClosedPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)
}

// PeriodRepositoryFacade defines persistence for accounting periods and their budgets
type PeriodRepositoryFacade interface {
	PeriodReader
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	FindPeriodForUpdate(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)
	// ListPeriods returns periods newest start date first.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// SaveBudget fails with ErrDuplicate when the account already has a budget in the period.
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, periodID string) ([]domain.Budget, error)
}

// DiscountRuleReader looks up discount rules.
type DiscountRuleReader interface {
	FindDiscountRuleByID(ctx context.Context, ruleID string) (*domain.DiscountRule, error)
}

// DiscountRuleRepositoryFacade defines persistence for discount rules
type DiscountRuleRepositoryFacade interface {
	DiscountRuleReader
	SaveDiscountRule(ctx context.Context, rule domain.DiscountRule) error
	UpdateDiscountRule(ctx context.Context, rule domain.DiscountRule) error
	ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error)
}
