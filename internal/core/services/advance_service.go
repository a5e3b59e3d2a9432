package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type advanceService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	advanceRepo portsrepo.AdvanceRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	journalSvc  portssvc.JournalSvcFacade
	sequenceSvc portssvc.SequenceSvc
	actor       ActorResolver
}

// NewAdvanceService creates a new AdvanceService.
func NewAdvanceService(txManager portsrepo.TransactionManager, advanceRepo portsrepo.AdvanceRepositoryFacade, accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade, sequenceSvc portssvc.SequenceSvc, actor ActorResolver, options ...BaseOption) portssvc.AdvanceSvcFacade {
	s := &advanceService{
		txManager:   txManager,
		advanceRepo: advanceRepo,
		accountSvc:  accountSvc,
		journalSvc:  journalSvc,
		sequenceSvc: sequenceSvc,
		actor:       actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.AdvanceSvcFacade = (*advanceService)(nil)

func (s *advanceService) CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, userID string) (*domain.Advance, error) {
	if req.Amount.LessThan(domain.MinimumAmount) {
		return nil, ErrInvalidAmount
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
	advance := domain.Advance{
		AdvanceID:    uuid.NewString(),
		Employee:     domain.EmployeeRef{ID: req.Employee.ID, FullName: req.Employee.FullName},
		Date:         date,
		Amount:       req.Amount,
		Purpose:      req.Purpose,
		RepaidAmount: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		advance.Reference, err = s.sequenceSvc.NextReference(ctx, SeqAdvance, "ADV-", 6)
		if err != nil {
			return err
		}
		if err := s.advanceRepo.SaveAdvance(ctx, advance); err != nil {
			return fmt.Errorf("failed to save advance: %w", err)
		}
		entry, err := s.postAdvance(ctx, &advance, actorID)
		if err != nil {
			return err
		}
		advance.EntryID = &entry.EntryID
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create advance", slog.Int64("employee_id", req.Employee.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Advance paid", slog.String("reference", advance.Reference), slog.String("amount", advance.Amount.String()))
	return &advance, nil
}

func (s *advanceService) CreateAdvanceJournalEntry(ctx context.Context, advanceID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		advance, err := s.lock(ctx, advanceID)
		if err != nil {
			return err
		}
		if advance.EntryID != nil {
			entry, _, err = s.journalSvc.GetEntry(ctx, *advance.EntryID)
			return err
		}
		actorID, err := s.actor.Resolve(userID, advance.CreatedBy)
		if err != nil {
			return err
		}
		entry, err = s.postAdvance(ctx, advance, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *advanceService) CreateRepayment(ctx context.Context, advanceID string, req dto.CreateRepaymentRequest, userID string) (*domain.Repayment, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	var repayment *domain.Repayment
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		advance, err := s.lock(ctx, advanceID)
		if err != nil {
			return err
		}
		if advance.EntryID == nil {
			return ErrAdvanceNotDisbursed
		}
		if req.Amount.GreaterThan(advance.Outstanding()) {
			return fmt.Errorf("%w: repayment %s exceeds outstanding %s", ErrPaymentExceedsDue, req.Amount, advance.Outstanding())
		}

		now := time.Now().UTC()
		date := now
		if req.Date != nil {
			date = *req.Date
		}
		reference, err := s.sequenceSvc.NextReference(ctx, SeqRepayment, "REP-", 6)
		if err != nil {
			return err
		}

		cashAcc, err := s.accountSvc.GetCashAccount(ctx, actorID)
		if err != nil {
			return err
		}
		advancesAcc, err := s.accountSvc.GetAdvancesAccount(ctx, actorID)
		if err != nil {
			return err
		}
		entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
			Reference:   reference,
			Date:        date,
			Description: fmt.Sprintf("Advance repayment %s: %s", advance.Reference, advance.Employee.FullName),
			EntryType:   domain.EntryPayment,
			Lines: []domain.EntryLine{
				{AccountID: cashAcc.AccountID, Amount: req.Amount, IsDebit: true},
				{AccountID: advancesAcc.AccountID, Amount: req.Amount, IsDebit: false},
			},
		}, actorID)
		if err != nil {
			return err
		}

		repayment = &domain.Repayment{
			RepaymentID: uuid.NewString(),
			AdvanceID:   advance.AdvanceID,
			Reference:   reference,
			Date:        date,
			Amount:      req.Amount,
			Notes:       req.Notes,
			EntryID:     &entry.EntryID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.advanceRepo.SaveRepayment(ctx, *repayment); err != nil {
			return fmt.Errorf("failed to save repayment: %w", err)
		}

		advance.RepaidAmount = advance.RepaidAmount.Add(req.Amount)
		advance.IsRepaid = !advance.Outstanding().IsPositive()
		advance.LastUpdatedAt = now
		advance.LastUpdatedBy = actorID
		if err := s.advanceRepo.UpdateAdvance(ctx, *advance); err != nil {
			return fmt.Errorf("failed to update advance: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to record repayment", slog.String("advance_id", advanceID))
		return nil, err
	}

	s.LogInfo(ctx, "Advance repayment recorded", slog.String("advance_id", advanceID), slog.String("reference", repayment.Reference))
	return repayment, nil
}

func (s *advanceService) GetAdvance(ctx context.Context, advanceID string) (*domain.Advance, []domain.Repayment, error) {
	advance, err := s.advanceRepo.FindAdvanceByID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: advance %s", apperrors.ErrNotFound, advanceID)
		}
		return nil, nil, fmt.Errorf("failed to get advance %s: %w", advanceID, err)
	}
	repayments, err := s.advanceRepo.ListRepayments(ctx, advanceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list repayments of advance %s: %w", advanceID, err)
	}
	return advance, repayments, nil
}

func (s *advanceService) ListAdvances(ctx context.Context, filter domain.AdvanceFilter) ([]domain.Advance, error) {
	advances, err := s.advanceRepo.ListAdvances(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list advances")
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	return advances, nil
}

func (s *advanceService) lock(ctx context.Context, advanceID string) (*domain.Advance, error) {
	advance, err := s.advanceRepo.FindAdvanceForUpdate(ctx, advanceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: advance %s", apperrors.ErrNotFound, advanceID)
		}
		return nil, err
	}
	return advance, nil
}

// postAdvance posts Dr employee advances / Cr cash and links the entry.
func (s *advanceService) postAdvance(ctx context.Context, advance *domain.Advance, userID string) (*domain.JournalEntry, error) {
	advancesAcc, err := s.accountSvc.GetAdvancesAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	cashAcc, err := s.accountSvc.GetCashAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
		Reference:   advance.Reference,
		Date:        advance.Date,
		Description: fmt.Sprintf("Advance to %s", advance.Employee.FullName),
		EntryType:   domain.EntryExpense,
		Lines: []domain.EntryLine{
			{AccountID: advancesAcc.AccountID, Amount: advance.Amount, IsDebit: true},
			{AccountID: cashAcc.AccountID, Amount: advance.Amount, IsDebit: false},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	advance.EntryID = &entry.EntryID
	advance.LastUpdatedAt = time.Now().UTC()
	advance.LastUpdatedBy = userID
	if err := s.advanceRepo.UpdateAdvance(ctx, *advance); err != nil {
		return nil, fmt.Errorf("failed to link advance entry: %w", err)
	}
	return entry, nil
}
