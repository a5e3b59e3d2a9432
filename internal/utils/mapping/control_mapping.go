package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		Code:        d.Code,
		Name:        d.Name,
		NameLocal:   d.NameLocal,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		Code:        m.Code,
		Name:        m.Name,
		NameLocal:   m.NameLocal,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCostCenterSlice(ms []models.CostCenter) []domain.CostCenter {
	return mapSlice(ms, ToDomainCostCenter)
}

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsClosed:    d.IsClosed,
		ClosedAt:    d.ClosedAt,
		ClosedBy:    d.ClosedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		IsClosed:    m.IsClosed,
		ClosedAt:    m.ClosedAt,
		ClosedBy:    m.ClosedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	return mapSlice(ms, ToDomainPeriod)
}

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		AccountID:      d.AccountID,
		PeriodID:       d.PeriodID,
		BudgetedAmount: d.BudgetedAmount,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		AccountID:      m.AccountID,
		PeriodID:       m.PeriodID,
		BudgetedAmount: m.BudgetedAmount,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	return mapSlice(ms, ToDomainBudget)
}

// ToModelDiscountRule converts a domain DiscountRule to a model DiscountRule
func ToModelDiscountRule(d domain.DiscountRule) models.DiscountRule {
	return models.DiscountRule{
		RuleID:          d.RuleID,
		Reason:          d.Reason,
		ReasonLocal:     d.ReasonLocal,
		DiscountPercent: d.DiscountPercent,
		DiscountAmount:  d.DiscountAmount,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDiscountRule converts a model DiscountRule to a domain DiscountRule
func ToDomainDiscountRule(m models.DiscountRule) domain.DiscountRule {
	return domain.DiscountRule{
		RuleID:          m.RuleID,
		Reason:          m.Reason,
		ReasonLocal:     m.ReasonLocal,
		DiscountPercent: m.DiscountPercent,
		DiscountAmount:  m.DiscountAmount,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainDiscountRuleSlice(ms []models.DiscountRule) []domain.DiscountRule {
	return mapSlice(ms, ToDomainDiscountRule)
}

func mapSlice[M, D any](ms []M, fn func(M) D) []D {
	ds := make([]D, len(ms))
	for i, m := range ms {
		ds[i] = fn(m)
	}
	return ds
}
