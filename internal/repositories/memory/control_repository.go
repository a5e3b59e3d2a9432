package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func (s *Store) SaveCostCenter(ctx context.Context, center domain.CostCenter) error {
	defer s.lock(ctx)()
	if _, ok := s.costCenters[center.Code]; ok {
		return fmt.Errorf("%w: cost center %s", apperrors.ErrDuplicate, center.Code)
	}
	s.costCenters[center.Code] = center
	return nil
}

func (s *Store) UpdateCostCenter(ctx context.Context, center domain.CostCenter) error {
	defer s.lock(ctx)()
	if _, ok := s.costCenters[center.Code]; !ok {
		return fmt.Errorf("%w: cost center %s", apperrors.ErrNotFound, center.Code)
	}
	s.costCenters[center.Code] = center
	return nil
}

func (s *Store) FindCostCenterByCode(ctx context.Context, code string) (*domain.CostCenter, error) {
	defer s.lock(ctx)()
	center, ok := s.costCenters[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &center, nil
}

func (s *Store) ListCostCenters(ctx context.Context, activeOnly bool) ([]domain.CostCenter, error) {
	defer s.lock(ctx)()
	result := make([]domain.CostCenter, 0, len(s.costCenters))
	for _, center := range s.costCenters {
		if activeOnly && !center.IsActive {
			continue
		}
		result = append(result, center)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (s *Store) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	defer s.lock(ctx)()
	if _, ok := s.periods[period.PeriodID]; ok {
		return fmt.Errorf("%w: period %s", apperrors.ErrDuplicate, period.PeriodID)
	}
	s.periods[period.PeriodID] = period
	return nil
}

func (s *Store) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	defer s.lock(ctx)()
	if _, ok := s.periods[period.PeriodID]; !ok {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, period.PeriodID)
	}
	s.periods[period.PeriodID] = period
	return nil
}

func (s *Store) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	period, ok := s.periods[periodID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &period, nil
}

// FindPeriodForUpdate is FindPeriodByID; the transaction already holds the store lock.
func (s *Store) FindPeriodForUpdate(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	return s.FindPeriodByID(ctx, periodID)
}

func (s *Store) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	result := make([]domain.AccountingPeriod, 0, len(s.periods))
	for _, period := range s.periods {
		result = append(result, period)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].PeriodID < result[j].PeriodID
	})
	return result, nil
}

func (s *Store) FindClosedPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	for _, period := range s.periods {
		if period.IsClosed && period.Covers(date) {
			return &period, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) SaveBudget(ctx context.Context, budget domain.Budget) error {
	defer s.lock(ctx)()
	if _, ok := s.periods[budget.PeriodID]; !ok {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, budget.PeriodID)
	}
	for _, b := range s.budgets {
		if b.AccountID == budget.AccountID && b.PeriodID == budget.PeriodID {
			return fmt.Errorf("%w: budget for account %s in period %s", apperrors.ErrDuplicate, budget.AccountID, budget.PeriodID)
		}
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

func (s *Store) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	defer s.lock(ctx)()
	budget, ok := s.budgets[budgetID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &budget, nil
}

func (s *Store) ListBudgets(ctx context.Context, periodID string) ([]domain.Budget, error) {
	defer s.lock(ctx)()
	result := make([]domain.Budget, 0)
	for _, b := range s.budgets {
		if b.PeriodID == periodID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BudgetID < result[j].BudgetID })
	return result, nil
}

func (s *Store) SaveDiscountRule(ctx context.Context, rule domain.DiscountRule) error {
	defer s.lock(ctx)()
	for _, r := range s.discounts {
		if r.Reason == rule.Reason {
			return fmt.Errorf("%w: discount rule %q", apperrors.ErrDuplicate, rule.Reason)
		}
	}
	s.discounts[rule.RuleID] = rule
	return nil
}

func (s *Store) UpdateDiscountRule(ctx context.Context, rule domain.DiscountRule) error {
	defer s.lock(ctx)()
	if _, ok := s.discounts[rule.RuleID]; !ok {
		return fmt.Errorf("%w: discount rule %s", apperrors.ErrNotFound, rule.RuleID)
	}
	s.discounts[rule.RuleID] = rule
	return nil
}

func (s *Store) FindDiscountRuleByID(ctx context.Context, ruleID string) (*domain.DiscountRule, error) {
	defer s.lock(ctx)()
	rule, ok := s.discounts[ruleID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rule, nil
}

func (s *Store) ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error) {
	defer s.lock(ctx)()
	result := make([]domain.DiscountRule, 0, len(s.discounts))
	for _, r := range s.discounts {
		if activeOnly && !r.IsActive {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Reason < result[j].Reason })
	return result, nil
}
