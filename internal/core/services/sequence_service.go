package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
)

// Sequence keys and reference prefixes.
const (
	SeqJournalEntry = "journal_entry"
	SeqExpense      = "expense_entry"
	SeqAdvance      = "employee_advance"
	SeqRepayment    = "advance_repayment"
)

type sequenceService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repo      portsrepo.SequenceRepository
}

// NewSequenceService creates a new sequence service.
func NewSequenceService(txManager portsrepo.TransactionManager, repo portsrepo.SequenceRepository, options ...BaseOption) portssvc.SequenceSvc {
	s := &sequenceService{txManager: txManager, repo: repo}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

func (s *sequenceService) Next(ctx context.Context, key string) (int64, error) {
	if strings.TrimSpace(key) == "" {
		return 0, fmt.Errorf("%w: sequence key is required", apperrors.ErrValidation)
	}

	var value int64
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		value, err = s.repo.NextValue(ctx, key)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to advance sequence", slog.String("key", key))
		return 0, fmt.Errorf("failed to advance sequence %s: %w", key, err)
	}

	s.Metrics.SequenceIssued()
	return value, nil
}

func (s *sequenceService) NextReference(ctx context.Context, key string, prefix string, width int) (string, error) {
	value, err := s.Next(ctx, key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, value), nil
}
