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
	"github.com/SscSPs/institute_ledger/internal/utils/accounting"
	"github.com/SscSPs/institute_ledger/internal/utils/pagination"
)

// journalService provides the draft/post/reverse protocol for journal entries.
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	sequenceSvc portssvc.SequenceSvc
	costCenters portsrepo.CostCenterReader
	periods     portsrepo.PeriodReader
	actor       ActorResolver
}

// NewJournalService creates a new JournalService.
func NewJournalService(txManager portsrepo.TransactionManager, journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, sequenceSvc portssvc.SequenceSvc, costCenters portsrepo.CostCenterReader, periods portsrepo.PeriodReader, actor ActorResolver, options ...BaseOption) portssvc.JournalSvcFacade {
	s := &journalService{
		txManager:   txManager,
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		sequenceSvc: sequenceSvc,
		costCenters: costCenters,
		periods:     periods,
		actor:       actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.Transaction, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	txns, err := s.journalRepo.FindTransactionsByEntryID(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get lines of journal entry %s: %w", entryID, err)
	}
	return entry, txns, nil
}

func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	domainParams := params.ToDomain()
	domainParams.Limit = pagination.ClampLimit(domainParams.Limit)
	if domainParams.NextToken != nil {
		if _, err := pagination.DecodeToken(*domainParams.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, domainParams)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

func (s *journalService) AccountLedger(ctx context.Context, accountID string, params dto.LedgerParams) (*dto.AccountLedgerResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if params.NextToken != nil {
		if _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	lines, nextToken, err := s.journalRepo.ListPostedLinesByAccount(ctx, accountID, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account ledger", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger of account %s: %w", accountID, err)
	}

	return &dto.AccountLedgerResponse{
		Account:   dto.ToAccountResponse(account),
		Lines:     dto.ToLedgerLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

func (s *journalService) CreateEntry(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	var created *domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, _, err = s.createEntry(ctx, entry, actorID, nil)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create journal entry")
		return nil, err
	}
	return created, nil
}

func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	var posted *domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		posted, err = s.postEntry(ctx, entryID, actorID)
		return err
	})
	if err != nil {
		s.recordFailure(ctx, err, entryID)
		return nil, err
	}

	s.Metrics.EntryPosted(string(posted.EntryType))
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", posted.EntryID), slog.String("reference", posted.Reference))
	return posted, nil
}

func (s *journalService) CreateAndPost(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	var posted *domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		created, _, err := s.createEntry(ctx, entry, actorID, nil)
		if err != nil {
			return err
		}
		posted, err = s.postEntry(ctx, created.EntryID, actorID)
		return err
	})
	if err != nil {
		s.recordFailure(ctx, err, entry.Reference)
		return nil, err
	}

	s.Metrics.EntryPosted(string(posted.EntryType))
	s.LogInfo(ctx, "Journal entry created and posted", slog.String("entry_id", posted.EntryID), slog.String("reference", posted.Reference))
	return posted, nil
}

func (s *journalService) ReverseEntry(ctx context.Context, entryID string, userID string, description *string) (*domain.JournalEntry, error) {
	actorID, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}

	var reversal *domain.JournalEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.journalRepo.FindEntryForUpdate(ctx, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
			}
			return err
		}
		if !original.IsPosted {
			return ErrEntryNotPosted
		}
		if original.ReversedByID != nil {
			return ErrAlreadyReversed
		}

		txns, err := s.journalRepo.FindTransactionsByEntryID(ctx, entryID)
		if err != nil {
			return err
		}
		lines := make([]domain.EntryLine, len(txns))
		for i, txn := range txns {
			lines[i] = domain.EntryLine{
				AccountID:   txn.AccountID,
				Amount:      txn.Amount,
				IsDebit:     !txn.IsDebit,
				CostCenter:  txn.CostCenter,
				Description: txn.Description,
			}
		}

		desc := fmt.Sprintf("Reversal of %s", original.Reference)
		if description != nil && strings.TrimSpace(*description) != "" {
			desc = *description
		}
		originalID := original.EntryID
		created, _, err := s.createEntry(ctx, domain.NewEntry{
			Date:        time.Now().UTC(),
			Description: desc,
			EntryType:   domain.EntryAdjustment,
			Lines:       lines,
		}, actorID, &originalID)
		if err != nil {
			return err
		}
		reversal, err = s.postEntry(ctx, created.EntryID, actorID)
		if err != nil {
			return err
		}
		return s.journalRepo.MarkEntryReversed(ctx, original.EntryID, reversal.EntryID, actorID, time.Now().UTC())
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.Metrics.EntryPosted(string(reversal.EntryType))
	s.Metrics.EntryReversed()
	s.LogInfo(ctx, "Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	return reversal, nil
}

// createEntry validates the requested lines and stores a draft. Must run inside a transaction.
func (s *journalService) createEntry(ctx context.Context, entry domain.NewEntry, userID string, reversalOf *string) (*domain.JournalEntry, []domain.Transaction, error) {
	if strings.TrimSpace(entry.Description) == "" {
		return nil, nil, fmt.Errorf("%w: journal entry description is required", apperrors.ErrValidation)
	}
	if entry.EntryType == "" {
		entry.EntryType = domain.EntryManual
	}
	if !entry.EntryType.IsValid() {
		return nil, nil, fmt.Errorf("%w: invalid entry type %q", apperrors.ErrValidation, entry.EntryType)
	}
	if len(entry.Lines) < 2 {
		return nil, nil, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	for _, line := range entry.Lines {
		if line.Amount.LessThan(domain.MinimumAmount) {
			return nil, nil, fmt.Errorf("%w: line on account %s has amount %s", ErrInvalidAmount, line.AccountID, line.Amount)
		}
		account, err := s.accountSvc.GetAccountByID(ctx, line.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, line.AccountID)
			}
			return nil, nil, err
		}
		if !account.IsActive {
			return nil, nil, fmt.Errorf("%w: %s", ErrInactiveAccount, account.Code)
		}
		// Reversals keep the original tags even if the cost center was retired since.
		if reversalOf == nil {
			if err := checkCostCenter(ctx, s.costCenters, line.CostCenter); err != nil {
				return nil, nil, err
			}
		}
	}

	reference := strings.TrimSpace(entry.Reference)
	if reference == "" {
		var err error
		reference, err = s.sequenceSvc.NextReference(ctx, SeqJournalEntry, "JE-", 6)
		if err != nil {
			return nil, nil, err
		}
	}

	date := entry.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	entryID := uuid.NewString()

	txns := make([]domain.Transaction, len(entry.Lines))
	total := decimal.Zero
	for i, line := range entry.Lines {
		txns[i] = domain.Transaction{
			TransactionID: uuid.NewString(),
			EntryID:       entryID,
			AccountID:     line.AccountID,
			Amount:        line.Amount,
			IsDebit:       line.IsDebit,
			CostCenter:    line.CostCenter,
			Description:   line.Description,
			AuditFields:   audit,
		}
		if line.IsDebit {
			total = total.Add(line.Amount)
		}
	}

	journalEntry := domain.JournalEntry{
		EntryID:      entryID,
		Reference:    reference,
		Date:         date,
		Description:  entry.Description,
		EntryType:    entry.EntryType,
		TotalAmount:  total,
		ReversalOfID: reversalOf,
		AuditFields:  audit,
	}
	if err := s.journalRepo.SaveEntry(ctx, journalEntry, txns); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, fmt.Errorf("%w: journal reference %s", apperrors.ErrDuplicate, reference)
		}
		return nil, nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return &journalEntry, txns, nil
}

// postEntry applies a locked draft to balances and stamps it posted. Must run inside a transaction.
func (s *journalService) postEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryForUpdate(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, err
	}
	if entry.IsPosted {
		return nil, ErrAlreadyPosted
	}
	if period, err := s.periods.FindClosedPeriodCovering(ctx, entry.Date); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrPeriodClosed, period.Name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	txns, err := s.journalRepo.FindTransactionsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(txns); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
	}

	if err := s.accountSvc.ApplyPostings(ctx, txns, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to mark journal entry %s posted: %w", entryID, err)
	}
	entry.IsPosted = true
	entry.PostedAt = &now
	entry.PostedBy = &userID
	return entry, nil
}

func (s *journalService) recordFailure(ctx context.Context, err error, ref string) {
	reason := "error"
	switch {
	case errors.Is(err, ErrUnbalancedEntry):
		reason = "unbalanced"
	case errors.Is(err, ErrAlreadyPosted):
		reason = "already_posted"
	case errors.Is(err, ErrInactiveAccount):
		reason = "inactive_account"
	case errors.Is(err, ErrPeriodClosed):
		reason = "period_closed"
	case errors.Is(err, apperrors.ErrValidation):
		reason = "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		reason = "not_found"
	}
	s.Metrics.PostingFailed(reason)
	s.LogWarn(ctx, err, "Journal posting rejected", slog.String("entry", ref), slog.String("reason", reason))
}
