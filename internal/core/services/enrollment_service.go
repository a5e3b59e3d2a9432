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

// enrollmentService manages the accrual lifecycle of enrollments:
// opening receivable, payment closing, withdrawal and revenue recognition.
type enrollmentService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	discountRules  portsrepo.DiscountRuleReader
	accountSvc     portssvc.AccountSvcFacade
	journalSvc     portssvc.JournalSvcFacade
	actor          ActorResolver
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(txManager portsrepo.TransactionManager, enrollmentRepo portsrepo.EnrollmentRepositoryFacade, discountRules portsrepo.DiscountRuleReader, accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade, actor ActorResolver, options ...BaseOption) portssvc.EnrollmentSvcFacade {
	s := &enrollmentService{
		txManager:      txManager,
		enrollmentRepo: enrollmentRepo,
		discountRules:  discountRules,
		accountSvc:     accountSvc,
		journalSvc:     journalSvc,
		actor:          actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

func (s *enrollmentService) GetEnrollment(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment %s", apperrors.ErrNotFound, enrollmentID)
		}
		return nil, fmt.Errorf("failed to get enrollment %s: %w", enrollmentID, err)
	}
	return enrollment, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListEnrollments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollments")
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) ARBalance(ctx context.Context, enrollmentID string) (decimal.Decimal, error) {
	enrollment, err := s.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.arBalance(ctx, enrollment)
}

func (s *enrollmentService) CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest, userID string) (*domain.Enrollment, error) {
	if req.TotalAmount.IsNegative() || req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts cannot be negative", apperrors.ErrValidation)
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundredPercent) {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 100", apperrors.ErrValidation)
	}

	pct, fixed, reason := req.DiscountPercent, req.DiscountAmount, req.DiscountReason
	if req.DiscountRuleID != nil {
		if !pct.IsZero() || !fixed.IsZero() {
			return nil, fmt.Errorf("%w: give either a discount rule or explicit discount amounts", apperrors.ErrValidation)
		}
		rule, err := s.discountRule(ctx, *req.DiscountRuleID)
		if err != nil {
			return nil, err
		}
		pct, fixed, reason = rule.DiscountPercent, rule.DiscountAmount, rule.Reason
	}

	student := req.Student.ToDomain()
	course := req.Course.ToDomain()
	actorID, err := s.actor.Resolve(userID, student.RegistrarID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.EnrollmentDate != nil {
		date = *req.EnrollmentDate
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "CASH"
	}

	enrollment := domain.Enrollment{
		EnrollmentID:    uuid.NewString(),
		Student:         student,
		Course:          course,
		EnrollmentDate:  date,
		TotalAmount:     req.TotalAmount,
		DiscountPercent: pct,
		DiscountAmount:  fixed,
		DiscountReason:  reason,
		NetAmount:       domain.NetAmount(req.TotalAmount, pct, fixed),
		PaymentMethod:   paymentMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.enrollmentRepo.FindEnrollmentByStudentCourse(ctx, student.ID, course.ID); err == nil {
			return fmt.Errorf("%w: student %d is already enrolled in course %d", apperrors.ErrDuplicate, student.ID, course.ID)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err := s.enrollmentRepo.SaveEnrollment(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to save enrollment: %w", err)
		}
		if err := s.EnsureAccounts(ctx, enrollment.EnrollmentID, actorID); err != nil {
			return err
		}
		_, err := s.PostOpeningEntry(ctx, enrollment.EnrollmentID, actorID)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create enrollment", slog.Int64("student_id", student.ID), slog.Int64("course_id", course.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Enrollment created", slog.String("enrollment_id", enrollment.EnrollmentID), slog.String("net_amount", enrollment.NetAmount.String()))
	return s.GetEnrollment(ctx, enrollment.EnrollmentID)
}

func (s *enrollmentService) EnsureAccounts(ctx context.Context, enrollmentID string, userID string) error {
	enrollment, err := s.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		return err
	}
	actorID, err := s.actor.Resolve(userID, enrollment.Student.RegistrarID)
	if err != nil {
		return err
	}
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accountSvc.GetOrCreateCourseRevenueAccount(ctx, enrollment.Course, actorID); err != nil {
			return err
		}
		_, err := s.accountSvc.GetOrCreateEnrollmentARAccount(ctx, enrollment.Student, enrollment.Course, actorID)
		return err
	})
}

func (s *enrollmentService) PostOpeningEntry(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.lock(ctx, enrollmentID)
		if err != nil {
			return err
		}
		posted, err = s.postOpening(ctx, enrollment, userID)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to post opening entry", slog.String("enrollment_id", enrollmentID))
		return nil, err
	}
	return posted, nil
}

func (s *enrollmentService) CheckAndCloseIfPaid(ctx context.Context, enrollmentID string) (bool, error) {
	closed := false
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.lock(ctx, enrollmentID)
		if err != nil {
			return err
		}
		closed = enrollment.IsClosed()
		if enrollment.IsWithdrawn {
			return nil
		}
		// Nothing has been accrued yet; a zero AR does not mean paid.
		if enrollment.OpeningEntryID == nil && enrollment.NetAmount.IsPositive() {
			return nil
		}

		ar, err := s.arBalance(ctx, enrollment)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if ar.IsPositive() {
			if !closed {
				return nil
			}
			// A reversed payment put the receivable back.
			enrollment.ClosedAt = nil
			enrollment.LastUpdatedAt = now
			if err := s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment); err != nil {
				return fmt.Errorf("failed to reopen enrollment %s: %w", enrollmentID, err)
			}
			closed = false
			s.LogInfo(ctx, "Enrollment reopened", slog.String("enrollment_id", enrollmentID), slog.String("ar_balance", ar.String()))
			return nil
		}
		if closed {
			return nil
		}

		enrollment.ClosedAt = &now
		enrollment.LastUpdatedAt = now
		if err := s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment); err != nil {
			return fmt.Errorf("failed to close enrollment %s: %w", enrollmentID, err)
		}
		closed = true
		s.LogInfo(ctx, "Enrollment fully paid and closed", slog.String("enrollment_id", enrollmentID))
		return nil
	})
	if err != nil {
		return false, err
	}
	return closed, nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, enrollmentID string, req dto.WithdrawEnrollmentRequest, userID string) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.lock(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if enrollment.IsWithdrawn {
			return ErrEnrollmentWithdrawn
		}
		if enrollment.CompletionEntryID != nil {
			return ErrEnrollmentCompleted
		}
		actorID, err := s.actor.Resolve(userID, enrollment.Student.RegistrarID)
		if err != nil {
			return err
		}

		// paid is derived from the receivable, so the accrual has to exist first.
		if _, err := s.postOpening(ctx, enrollment, actorID); err != nil {
			return err
		}
		ar, err := s.arBalance(ctx, enrollment)
		if err != nil {
			return err
		}
		paid := enrollment.NetAmount.Sub(ar)
		if paid.IsNegative() {
			paid = decimal.Zero
		}

		refund := paid
		if req.RefundAmount != nil {
			refund = *req.RefundAmount
		}
		if refund.IsNegative() || refund.GreaterThan(paid) {
			return fmt.Errorf("%w: refund %s must be between 0 and the paid amount %s", apperrors.ErrValidation, refund, paid)
		}
		writeOff := decimal.Zero
		if ar.IsPositive() {
			writeOff = ar
		}

		lines := make([]domain.EntryLine, 0, 4)
		if refund.IsPositive() {
			returnsAcc, err := s.accountSvc.GetRevenueReturnsAccount(ctx, actorID)
			if err != nil {
				return err
			}
			cashAcc, err := s.accountSvc.GetCashAccount(ctx, actorID)
			if err != nil {
				return err
			}
			lines = append(lines,
				domain.EntryLine{AccountID: returnsAcc.AccountID, Amount: refund, IsDebit: true, Description: "Refund"},
				domain.EntryLine{AccountID: cashAcc.AccountID, Amount: refund, IsDebit: false, Description: "Refund"},
			)
		}
		if writeOff.IsPositive() {
			returnsAcc, err := s.accountSvc.GetRevenueReturnsAccount(ctx, actorID)
			if err != nil {
				return err
			}
			arAcc, err := s.accountSvc.GetOrCreateEnrollmentARAccount(ctx, enrollment.Student, enrollment.Course, actorID)
			if err != nil {
				return err
			}
			lines = append(lines,
				domain.EntryLine{AccountID: returnsAcc.AccountID, Amount: writeOff, IsDebit: true, Description: "Receivable write-off"},
				domain.EntryLine{AccountID: arAcc.AccountID, Amount: writeOff, IsDebit: false, Description: "Receivable write-off"},
			)
		}

		now := time.Now().UTC()
		var entryID *string
		if len(lines) > 0 {
			entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
				Date:        now,
				Description: fmt.Sprintf("Withdrawal: %s - %s", enrollment.Student.FullName, enrollment.Course.Name),
				EntryType:   domain.EntryAdjustment,
				Lines:       lines,
			}, actorID)
			if err != nil {
				return err
			}
			entryID = &entry.EntryID
		}

		withdrawal = &domain.Withdrawal{
			WithdrawalID:     uuid.NewString(),
			EnrollmentID:     enrollment.EnrollmentID,
			RefundedAmount:   refund,
			WrittenOffAmount: writeOff,
			EntryID:          entryID,
			Reason:           req.Reason,
			PerformedBy:      actorID,
			WithdrawnAt:      now,
		}
		if err := s.enrollmentRepo.SaveWithdrawal(ctx, *withdrawal); err != nil {
			return fmt.Errorf("failed to save withdrawal: %w", err)
		}

		enrollment.IsWithdrawn = true
		enrollment.IsCompleted = true
		enrollment.CompletionDate = &now
		enrollment.ClosedAt = &now
		enrollment.LastUpdatedAt = now
		enrollment.LastUpdatedBy = actorID
		if err := s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment); err != nil {
			return fmt.Errorf("failed to update enrollment %s: %w", enrollmentID, err)
		}
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to withdraw enrollment", slog.String("enrollment_id", enrollmentID))
		return nil, err
	}

	s.LogInfo(ctx, "Enrollment withdrawn",
		slog.String("enrollment_id", enrollmentID),
		slog.String("refunded", withdrawal.RefundedAmount.String()),
		slog.String("written_off", withdrawal.WrittenOffAmount.String()))
	return withdrawal, nil
}

func (s *enrollmentService) CompleteEnrollment(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error) {
	var completion *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.lock(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if enrollment.IsWithdrawn {
			return ErrEnrollmentWithdrawn
		}
		if enrollment.CompletionEntryID != nil {
			completion, _, err = s.journalSvc.GetEntry(ctx, *enrollment.CompletionEntryID)
			return err
		}
		actorID, err := s.actor.Resolve(userID, enrollment.Student.RegistrarID)
		if err != nil {
			return err
		}
		if _, err := s.postOpening(ctx, enrollment, actorID); err != nil {
			return err
		}

		now := time.Now().UTC()
		if enrollment.NetAmount.IsPositive() {
			deferredAcc, err := s.accountSvc.GetOrCreateCourseRevenueAccount(ctx, enrollment.Course, actorID)
			if err != nil {
				return err
			}
			earnedAcc, err := s.accountSvc.GetOrCreateCourseEarnedRevenueAccount(ctx, enrollment.Course, actorID)
			if err != nil {
				return err
			}
			completion, err = s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
				Date:        now,
				Description: fmt.Sprintf("Revenue recognition: %s - %s", enrollment.Student.FullName, enrollment.Course.Name),
				EntryType:   domain.EntryCompletion,
				Lines: []domain.EntryLine{
					{AccountID: deferredAcc.AccountID, Amount: enrollment.NetAmount, IsDebit: true},
					{AccountID: earnedAcc.AccountID, Amount: enrollment.NetAmount, IsDebit: false},
				},
			}, actorID)
			if err != nil {
				return err
			}
			enrollment.CompletionEntryID = &completion.EntryID
		}

		enrollment.IsCompleted = true
		enrollment.CompletionDate = &now
		enrollment.LastUpdatedAt = now
		enrollment.LastUpdatedBy = actorID
		return s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment)
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to complete enrollment", slog.String("enrollment_id", enrollmentID))
		return nil, err
	}
	return completion, nil
}

// postOpening posts the opening accrual of a locked enrollment and links it.
// Returns nil when the entry already exists or there is nothing to accrue.
func (s *enrollmentService) postOpening(ctx context.Context, enrollment *domain.Enrollment, userID string) (*domain.JournalEntry, error) {
	if enrollment.OpeningEntryID != nil || !enrollment.NetAmount.IsPositive() {
		return nil, nil
	}
	if enrollment.IsWithdrawn {
		return nil, ErrEnrollmentWithdrawn
	}
	actorID, err := s.actor.Resolve(userID, enrollment.Student.RegistrarID)
	if err != nil {
		return nil, err
	}

	arAcc, err := s.accountSvc.GetOrCreateEnrollmentARAccount(ctx, enrollment.Student, enrollment.Course, actorID)
	if err != nil {
		return nil, err
	}
	revenueAcc, err := s.accountSvc.GetOrCreateCourseRevenueAccount(ctx, enrollment.Course, actorID)
	if err != nil {
		return nil, err
	}

	entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
		Date:        enrollment.EnrollmentDate,
		Description: fmt.Sprintf("Enrollment accrual: %s - %s", enrollment.Student.FullName, enrollment.Course.Name),
		EntryType:   domain.EntryEnrollment,
		Lines: []domain.EntryLine{
			{AccountID: arAcc.AccountID, Amount: enrollment.NetAmount, IsDebit: true},
			{AccountID: revenueAcc.AccountID, Amount: enrollment.NetAmount, IsDebit: false},
		},
	}, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	enrollment.OpeningEntryID = &entry.EntryID
	enrollment.LastUpdatedAt = now
	enrollment.LastUpdatedBy = actorID
	if err := s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment); err != nil {
		return nil, fmt.Errorf("failed to link opening entry: %w", err)
	}
	s.LogInfo(ctx, "Opening entry posted", slog.String("enrollment_id", enrollment.EnrollmentID), slog.String("entry_id", entry.EntryID))
	return entry, nil
}

func (s *enrollmentService) lock(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindEnrollmentForUpdate(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment %s", apperrors.ErrNotFound, enrollmentID)
		}
		return nil, err
	}
	return enrollment, nil
}

// arBalance is the own posted balance of the enrollment AR account; zero when
// the account does not exist yet.
func (s *enrollmentService) arBalance(ctx context.Context, enrollment *domain.Enrollment) (decimal.Decimal, error) {
	arAcc, err := s.accountSvc.GetAccountByCode(ctx, enrollment.ARKey().Code())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return s.accountSvc.BalanceOf(ctx, arAcc.AccountID, false)
}

var hundredPercent = decimal.NewFromInt(100)

func (s *enrollmentService) discountRule(ctx context.Context, ruleID string) (*domain.DiscountRule, error) {
	rule, err := s.discountRules.FindDiscountRuleByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: discount rule %s does not exist", apperrors.ErrValidation, ruleID)
		}
		return nil, err
	}
	if !rule.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrInactiveDiscount, rule.Reason)
	}
	return rule, nil
}
