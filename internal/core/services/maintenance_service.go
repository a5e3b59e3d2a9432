package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
)

// maintenanceService holds the operator tools behind ledgerctl.
type maintenanceService struct {
	BaseService
	accountSvc     portssvc.AccountSvcFacade
	journalSvc     portssvc.JournalSvcFacade
	enrollmentSvc  portssvc.EnrollmentSvcFacade
	receiptSvc     portssvc.ReceiptSvcFacade
	enrollmentRepo portsrepo.EnrollmentReader
	receiptRepo    portsrepo.ReceiptRepositoryFacade
	actor          ActorResolver
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	accountSvc portssvc.AccountSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	enrollmentSvc portssvc.EnrollmentSvcFacade,
	receiptSvc portssvc.ReceiptSvcFacade,
	enrollmentRepo portsrepo.EnrollmentReader,
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	actor ActorResolver,
	options ...BaseOption,
) portssvc.MaintenanceSvcFacade {
	s := &maintenanceService{
		accountSvc:     accountSvc,
		journalSvc:     journalSvc,
		enrollmentSvc:  enrollmentSvc,
		receiptSvc:     receiptSvc,
		enrollmentRepo: enrollmentRepo,
		receiptRepo:    receiptRepo,
		actor:          actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.MaintenanceSvcFacade = (*maintenanceService)(nil)

func (s *maintenanceService) SetupChartOfAccounts(ctx context.Context, userID string) (int, error) {
	created := 0
	for _, key := range domain.ChartKeys() {
		_, err := s.accountSvc.GetAccountByCode(ctx, key.Code())
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return created, err
		}
		if _, err := s.accountSvc.EnsureKey(ctx, key, domain.AccountSpec{}, userID); err != nil {
			return created, fmt.Errorf("failed to create account %s: %w", key.Code(), err)
		}
		created++
	}
	s.LogInfo(ctx, "Chart of accounts ready", slog.Int("created", created))
	return created, nil
}

func (s *maintenanceService) RebuildAllBalances(ctx context.Context, userID string) (*domain.RebuildReport, error) {
	return s.accountSvc.RebuildAll(ctx, userID)
}

func (s *maintenanceService) VerifyBalances(ctx context.Context) (*domain.RebuildReport, error) {
	return s.accountSvc.VerifyBalances(ctx)
}

func (s *maintenanceService) AttachParents(ctx context.Context, dryRun bool, userID string) ([]domain.ParentAttachment, error) {
	return s.accountSvc.AttachParents(ctx, dryRun, userID)
}

// Reconcile is best effort per record: failures are logged and the sweep continues.
func (s *maintenanceService) Reconcile(ctx context.Context, userID string) (*domain.ReconcileSummary, error) {
	operator, err := s.actor.Resolve(userID)
	if err != nil {
		return nil, err
	}
	summary := &domain.ReconcileSummary{}

	enrollments, err := s.enrollmentRepo.ListEnrollments(ctx, domain.EnrollmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	receipts, err := s.receiptRepo.ListReceipts(ctx, domain.ReceiptFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	students := make(map[int64]domain.StudentRef)
	for _, enr := range enrollments {
		students[enr.Student.ID] = enr.Student
	}
	for _, r := range receipts {
		if _, ok := students[r.Student.ID]; !ok {
			students[r.Student.ID] = r.Student
		}
	}
	for _, student := range students {
		actorID, err := s.actor.Resolve(userID, student.RegistrarID)
		if err != nil {
			return nil, err
		}
		if _, err := s.accountSvc.GetOrCreateStudentARAccount(ctx, student, actorID); err != nil {
			s.LogWarn(ctx, err, "Could not ensure student AR account", slog.Int64("student_id", student.ID))
			continue
		}
		summary.StudentAccountsEnsured++
	}

	for _, enr := range enrollments {
		summary.EnrollmentsChecked++
		if enr.IsWithdrawn {
			continue
		}
		if err := s.enrollmentSvc.EnsureAccounts(ctx, enr.EnrollmentID, userID); err != nil {
			s.LogWarn(ctx, err, "Could not ensure enrollment accounts", slog.String("enrollment_id", enr.EnrollmentID))
			continue
		}
		entry, err := s.enrollmentSvc.PostOpeningEntry(ctx, enr.EnrollmentID, userID)
		if err != nil {
			s.LogWarn(ctx, err, "Could not post opening entry", slog.String("enrollment_id", enr.EnrollmentID))
			continue
		}
		if entry != nil {
			summary.OpeningEntriesPosted++
		}
		if _, err := s.enrollmentSvc.CheckAndCloseIfPaid(ctx, enr.EnrollmentID); err != nil {
			s.LogWarn(ctx, err, "Could not refresh enrollment status", slog.String("enrollment_id", enr.EnrollmentID))
		}
	}

	for _, r := range receipts {
		summary.ReceiptsChecked++
		if r.EntryID == nil {
			if _, err := s.receiptSvc.CreateAccrualJournalEntry(ctx, r.ReceiptID, userID); err != nil {
				s.LogWarn(ctx, err, "Could not create receipt entry", slog.String("receipt_number", r.ReceiptNumber))
				continue
			}
			summary.ReceiptEntriesCreated++
			continue
		}
		entry, _, err := s.journalSvc.GetEntry(ctx, *r.EntryID)
		if err != nil {
			s.LogWarn(ctx, err, "Could not load receipt entry", slog.String("receipt_number", r.ReceiptNumber))
			continue
		}
		if entry.IsPosted {
			continue
		}
		poster, err := s.actor.Resolve(userID, r.CreatedBy)
		if err != nil {
			return nil, err
		}
		if _, err := s.journalSvc.PostEntry(ctx, entry.EntryID, poster); err != nil {
			s.LogWarn(ctx, err, "Could not post receipt entry", slog.String("receipt_number", r.ReceiptNumber))
			continue
		}
		summary.ReceiptEntriesPosted++
	}

	report, err := s.accountSvc.RebuildAll(ctx, operator)
	if err != nil {
		return summary, fmt.Errorf("failed to rebuild balances: %w", err)
	}
	summary.BalanceDrifts = len(report.Drifts)

	s.LogInfo(ctx, "Reconciliation finished",
		slog.Int("students", summary.StudentAccountsEnsured),
		slog.Int("opening_entries", summary.OpeningEntriesPosted),
		slog.Int("receipt_entries", summary.ReceiptEntriesCreated+summary.ReceiptEntriesPosted),
		slog.Int("drifts", summary.BalanceDrifts))
	return summary, nil
}
