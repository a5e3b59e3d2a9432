package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
)

// reportingService builds financial statements from own posted sums per
// account. Only own amounts are used so parents never double count children.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
}

// NewReportingService creates a new reporting service
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, options ...BaseOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalance, error) {
	accounts, totals, err := s.load(ctx, domain.DateRange{To: asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalance{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		net := t.Debit.Sub(t.Credit)
		if net.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			report.TotalDebit = report.TotalDebit.Add(net)
		} else {
			row.Credit = net.Neg()
			report.TotalCredit = report.TotalCredit.Add(net.Neg())
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// IncomeStatement generates revenue and expense totals for a period
func (s *reportingService) IncomeStatement(ctx context.Context, period domain.DateRange) (*domain.IncomeStatement, error) {
	if period.From != nil && period.To != nil && period.To.Before(*period.From) {
		return nil, fmt.Errorf("%w: period end is before its start", apperrors.ErrValidation)
	}
	accounts, totals, err := s.load(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatement{
		Range:         period,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, acc := range accounts {
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		net := t.Net(acc.AccountType)
		if net.IsZero() {
			continue
		}
		line := domain.AccountAmount{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, NetAmount: net}
		switch acc.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, line)
			report.TotalRevenue = report.TotalRevenue.Add(net)
		case domain.Expense:
			report.Expenses = append(report.Expenses, line)
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

// BalanceSheet generates assets, liabilities and equity as of a date. Revenue
// and expenses not closed to equity appear as retained earnings.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheetReport, error) {
	accounts, totals, err := s.load(ctx, domain.DateRange{To: asOf})
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}
	for _, acc := range accounts {
		t, ok := totals[acc.AccountID]
		if !ok {
			continue
		}
		net := t.Net(acc.AccountType)
		if net.IsZero() {
			continue
		}
		line := domain.AccountAmount{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, NetAmount: net}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(net)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(net)
		case domain.Expense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(net)
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.RetainedEarnings)
	return report, nil
}

func (s *reportingService) load(ctx context.Context, dateRange domain.DateRange) ([]domain.Account, map[string]domain.AccountTotals, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for report")
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	totals, err := s.journalRepo.SumPostedByAccount(ctx, dateRange)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum postings for report")
		return nil, nil, fmt.Errorf("failed to sum postings: %w", err)
	}
	return accounts, totals, nil
}
