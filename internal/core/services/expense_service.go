package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type expenseService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	expenseRepo portsrepo.ExpenseRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	journalSvc  portssvc.JournalSvcFacade
	sequenceSvc portssvc.SequenceSvc
	actor       ActorResolver
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(txManager portsrepo.TransactionManager, expenseRepo portsrepo.ExpenseRepositoryFacade, accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade, sequenceSvc portssvc.SequenceSvc, actor ActorResolver, options ...BaseOption) portssvc.ExpenseSvcFacade {
	s := &expenseService{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
		sequenceSvc: sequenceSvc,
		actor:       actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEntry, error) {
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, req.Category)
	}
	if req.Amount.LessThan(domain.MinimumAmount) {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: expense description is required", apperrors.ErrValidation)
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "CASH"
	}

	expense := domain.ExpenseEntry{
		ExpenseID:     uuid.NewString(),
		Date:          date,
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		Vendor:        req.Vendor,
		PaymentMethod: paymentMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if req.Employee != nil {
		expense.Employee = &domain.EmployeeRef{ID: req.Employee.ID, FullName: req.Employee.FullName}
	}
	if req.Teacher != nil {
		expense.Teacher = &domain.TeacherRef{ID: req.Teacher.ID, FullName: req.Teacher.FullName}
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		expense.Reference, err = s.sequenceSvc.NextReference(ctx, SeqExpense, "EX-", 6)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to save expense: %w", err)
		}
		entry, err := s.postExpense(ctx, &expense, actorID)
		if err != nil {
			return err
		}
		expense.EntryID = &entry.EntryID
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create expense", slog.String("category", string(req.Category)))
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded", slog.String("reference", expense.Reference), slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) CreateJournalEntry(ctx context.Context, expenseID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		expense, err := s.GetExpense(ctx, expenseID)
		if err != nil {
			return err
		}
		if expense.EntryID != nil {
			entry, _, err = s.journalSvc.GetEntry(ctx, *expense.EntryID)
			return err
		}
		actorID, err := s.actor.Resolve(userID, expense.CreatedBy)
		if err != nil {
			return err
		}
		entry, err = s.postExpense(ctx, expense, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.ExpenseEntry, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseEntry, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// postExpense posts Dr expense account / Cr cash and links the entry.
func (s *expenseService) postExpense(ctx context.Context, expense *domain.ExpenseEntry, userID string) (*domain.JournalEntry, error) {
	debitAcc, err := s.expenseAccount(ctx, expense, userID)
	if err != nil {
		return nil, err
	}
	cashAcc, err := s.accountSvc.GetCashAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
		Reference:   expense.Reference,
		Date:        expense.Date,
		Description: expense.Description,
		EntryType:   domain.EntryExpense,
		Lines: []domain.EntryLine{
			{AccountID: debitAcc.AccountID, Amount: expense.Amount, IsDebit: true},
			{AccountID: cashAcc.AccountID, Amount: expense.Amount, IsDebit: false},
		},
	}, userID)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.UpdateExpenseEntry(ctx, expense.ExpenseID, entry.EntryID, userID); err != nil {
		return nil, fmt.Errorf("failed to link expense entry: %w", err)
	}
	return entry, nil
}

func (s *expenseService) expenseAccount(ctx context.Context, expense *domain.ExpenseEntry, userID string) (*domain.Account, error) {
	key := expense.ExpenseAccountKey()
	switch key.Kind {
	case domain.KindEmployeeSalary:
		return s.accountSvc.GetOrCreateEmployeeSalaryAccount(ctx, *expense.Employee, userID)
	case domain.KindTeacherSalary:
		return s.accountSvc.GetOrCreateTeacherSalaryAccount(ctx, *expense.Teacher, userID)
	}
	return s.accountSvc.GetExpenseCategoryAccount(ctx, expense.Category, userID)
}
