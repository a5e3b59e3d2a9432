package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

// periodService closes accounting periods and compares budgets with the
// activity posted inside them.
type periodService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	periodRepo  portsrepo.PeriodRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	actor       ActorResolver
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(txManager portsrepo.TransactionManager, periodRepo portsrepo.PeriodRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, actor ActorResolver, options ...BaseOption) portssvc.PeriodSvcFacade {
	s := &periodService{
		txManager:   txManager,
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		actor:       actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: period name is required", apperrors.ErrValidation)
	}
	start := dayOf(req.StartDate)
	end := dayOf(req.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period ends before it starts", apperrors.ErrValidation)
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:    uuid.NewString(),
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogWarn(ctx, err, "Failed to create accounting period", slog.String("name", name))
		return nil, fmt.Errorf("failed to save accounting period: %w", err)
	}
	s.LogInfo(ctx, "Accounting period created", slog.String("period_id", period.PeriodID), slog.String("name", name))
	return &period, nil
}

func (s *periodService) GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: accounting period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to get accounting period %s: %w", periodID, err)
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounting periods")
		return nil, fmt.Errorf("failed to list accounting periods: %w", err)
	}
	return periods, nil
}

func (s *periodService) CurrentPeriod(ctx context.Context, at time.Time) (*domain.AccountingPeriod, error) {
	periods, err := s.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range periods {
		if periods[i].Covers(at) {
			return &periods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrNotFound, at.Format(time.DateOnly))
}

func (s *periodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.AccountingPeriod, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}
	var period *domain.AccountingPeriod
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		period, err = s.periodRepo.FindPeriodForUpdate(ctx, periodID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: accounting period %s", apperrors.ErrNotFound, periodID)
			}
			return err
		}
		if period.IsClosed {
			return fmt.Errorf("%w: %s", ErrPeriodAlreadyClosed, period.Name)
		}
		now := time.Now().UTC()
		period.IsClosed = true
		period.ClosedAt = &now
		period.ClosedBy = &actorID
		period.LastUpdatedAt = now
		period.LastUpdatedBy = actorID
		return s.periodRepo.UpdatePeriod(ctx, *period)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to close accounting period", slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Accounting period closed", slog.String("period_id", periodID), slog.String("name", period.Name))
	return period, nil
}

func (s *periodService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.BudgetReport, error) {
	if req.BudgetedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: budgeted amount cannot be negative", apperrors.ErrValidation)
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}
	if _, err := s.GetPeriod(ctx, req.PeriodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: accounting period %s does not exist", apperrors.ErrValidation, req.PeriodID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		AccountID:      req.AccountID,
		PeriodID:       req.PeriodID,
		BudgetedAmount: req.BudgetedAmount,
		Notes:          req.Notes,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.periodRepo.SaveBudget(ctx, budget); err != nil {
		s.LogWarn(ctx, err, "Failed to create budget", slog.String("account_id", req.AccountID), slog.String("period_id", req.PeriodID))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account %s already has a budget for this period", apperrors.ErrDuplicate, req.AccountID)
		}
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}
	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID), slog.String("amount", budget.BudgetedAmount.String()))
	return s.GetBudget(ctx, budget.BudgetID)
}

func (s *periodService) GetBudget(ctx context.Context, budgetID string) (*domain.BudgetReport, error) {
	budget, err := s.periodRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
		}
		return nil, fmt.Errorf("failed to get budget %s: %w", budgetID, err)
	}
	reports, err := s.budgetReports(ctx, budget.PeriodID, []domain.Budget{*budget})
	if err != nil {
		return nil, err
	}
	return &reports[0], nil
}

func (s *periodService) ListBudgets(ctx context.Context, periodID string) ([]domain.BudgetReport, error) {
	if _, err := s.GetPeriod(ctx, periodID); err != nil {
		return nil, err
	}
	budgets, err := s.periodRepo.ListBudgets(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return s.budgetReports(ctx, periodID, budgets)
}

// budgetReports sums the period's posted activity once and rolls it up over
// each budgeted account's subtree.
func (s *periodService) budgetReports(ctx context.Context, periodID string, budgets []domain.Budget) ([]domain.BudgetReport, error) {
	period, err := s.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountSvc.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.journalRepo.SumPostedByAccount(ctx, period.Range())
	if err != nil {
		s.LogError(ctx, err, "Failed to sum postings for budget", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to sum postings: %w", err)
	}
	byID := indexAccounts(accounts)
	children := childIndex(accounts)

	reports := make([]domain.BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		report := domain.NewBudgetReport(b, subtreeActivity(b.AccountID, byID, children, totals))
		report.PeriodName = period.Name
		if acc, ok := byID[b.AccountID]; ok {
			report.AccountCode = acc.Code
			report.AccountName = acc.Name
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// subtreeActivity adds each account's own posted net, signed by its own
// normal side, over the account and all its descendants.
func subtreeActivity(rootID string, byID map[string]domain.Account, children map[string][]string, totals map[string]domain.AccountTotals) decimal.Decimal {
	sum := decimal.Zero
	seen := map[string]bool{}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if acc, ok := byID[id]; ok {
			sum = sum.Add(totals[id].Net(acc.AccountType))
		}
		stack = append(stack, children[id]...)
	}
	return sum
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
