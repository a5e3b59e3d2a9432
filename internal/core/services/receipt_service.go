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

type receiptService struct {
	BaseService
	txManager      portsrepo.TransactionManager
	receiptRepo    portsrepo.ReceiptRepositoryFacade
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade
	enrollmentSvc  portssvc.EnrollmentSvcFacade
	accountSvc     portssvc.AccountSvcFacade
	journalSvc     portssvc.JournalSvcFacade
	sequenceSvc    portssvc.SequenceSvc
	actor          ActorResolver
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(
	txManager portsrepo.TransactionManager,
	receiptRepo portsrepo.ReceiptRepositoryFacade,
	enrollmentRepo portsrepo.EnrollmentRepositoryFacade,
	enrollmentSvc portssvc.EnrollmentSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalSvc portssvc.JournalSvcFacade,
	sequenceSvc portssvc.SequenceSvc,
	actor ActorResolver,
	options ...BaseOption,
) portssvc.ReceiptSvcFacade {
	s := &receiptService{
		txManager:      txManager,
		receiptRepo:    receiptRepo,
		enrollmentRepo: enrollmentRepo,
		enrollmentSvc:  enrollmentSvc,
		accountSvc:     accountSvc,
		journalSvc:     journalSvc,
		sequenceSvc:    sequenceSvc,
		actor:          actor,
	}
	applyBaseOptions(&s.BaseService, options)
	return s
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error) {
	if req.PaidAmount.LessThan(domain.MinimumAmount) {
		return nil, ErrInvalidAmount
	}
	student := req.Student.ToDomain()
	actorID, err := s.actor.Resolve(userID, student.RegistrarID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	var receipt *domain.Receipt
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		enrollment, err := s.resolveEnrollment(ctx, req, student)
		if err != nil {
			return err
		}

		amount, pct, fixed := req.Amount, req.DiscountPercent, req.DiscountAmount
		var course *domain.CourseRef
		if req.Course != nil {
			c := req.Course.ToDomain()
			course = &c
		}
		var enrollmentID *string
		if enrollment != nil {
			if enrollment.IsWithdrawn {
				return ErrEnrollmentWithdrawn
			}
			if amount.IsZero() {
				amount, pct, fixed = enrollment.TotalAmount, enrollment.DiscountPercent, enrollment.DiscountAmount
			}
			c := enrollment.Course
			course = &c
			id := enrollment.EnrollmentID
			enrollmentID = &id
		}
		net := domain.NetAmount(amount, pct, fixed)

		// The amount due comes from the enrollment when there is one; legacy
		// receipts are capped by their own net amount.
		due, previous := net, decimal.Zero
		switch {
		case enrollment != nil:
			due = enrollment.NetAmount
			previous, err = s.receiptRepo.SumPaidByEnrollment(ctx, enrollment.EnrollmentID)
		case course != nil:
			previous, err = s.receiptRepo.SumPaidByStudentCourse(ctx, student.ID, course.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to sum previous payments: %w", err)
		}
		if previous.Add(req.PaidAmount).GreaterThan(due) {
			return fmt.Errorf("%w: paid %s plus %s exceeds %s", ErrPaymentExceedsDue, previous, req.PaidAmount, due)
		}

		number, err := s.nextReceiptNumber(ctx, student, date)
		if err != nil {
			return err
		}

		paymentMethod := req.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = "CASH"
		}
		receipt = &domain.Receipt{
			ReceiptID:       uuid.NewString(),
			ReceiptNumber:   number,
			Student:         student,
			Course:          course,
			EnrollmentID:    enrollmentID,
			Date:            date,
			Amount:          amount,
			DiscountPercent: pct,
			DiscountAmount:  fixed,
			NetAmount:       net,
			PaidAmount:      req.PaidAmount,
			PaymentMethod:   paymentMethod,
			Notes:           req.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.receiptRepo.SaveReceipt(ctx, *receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}

		entry, err := s.postAccrual(ctx, receipt, enrollment, actorID)
		if err != nil {
			return err
		}
		receipt.EntryID = &entry.EntryID
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create receipt", slog.Int64("student_id", student.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Receipt created", slog.String("receipt_number", receipt.ReceiptNumber), slog.String("paid", receipt.PaidAmount.String()))

	if receipt.EnrollmentID != nil {
		if _, err := s.enrollmentSvc.CheckAndCloseIfPaid(ctx, *receipt.EnrollmentID); err != nil {
			s.LogWarn(ctx, err, "Close-if-paid check failed after receipt", slog.String("enrollment_id", *receipt.EnrollmentID))
		}
	}
	return receipt, nil
}

func (s *receiptService) CreateAccrualJournalEntry(ctx context.Context, receiptID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		receipt, err := s.GetReceipt(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt.EntryID != nil {
			entry, _, err = s.journalSvc.GetEntry(ctx, *receipt.EntryID)
			return err
		}

		actorID, err := s.actor.Resolve(userID, receipt.Student.RegistrarID, receipt.CreatedBy)
		if err != nil {
			return err
		}
		var enrollment *domain.Enrollment
		if receipt.EnrollmentID != nil {
			enrollment, err = s.enrollmentRepo.FindEnrollmentByID(ctx, *receipt.EnrollmentID)
			if err != nil {
				return fmt.Errorf("failed to load enrollment of receipt %s: %w", receipt.ReceiptNumber, err)
			}
		}
		entry, err = s.postAccrual(ctx, receipt, enrollment, actorID)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create receipt journal entry", slog.String("receipt_id", receiptID))
		return nil, err
	}
	return entry, nil
}

func (s *receiptService) ReverseReceipt(ctx context.Context, receiptID string, userID string, description *string) (*domain.JournalEntry, error) {
	var reversal *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		receipt, err := s.GetReceipt(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt.EntryID == nil {
			return fmt.Errorf("%w: receipt %s has no journal entry", ErrEntryNotPosted, receipt.ReceiptNumber)
		}
		actorID, err := s.actor.Resolve(userID, receipt.Student.RegistrarID)
		if err != nil {
			return err
		}
		if description == nil {
			d := fmt.Sprintf("Reversal of receipt %s", receipt.ReceiptNumber)
			description = &d
		}

		reversal, err = s.journalSvc.ReverseEntry(ctx, *receipt.EntryID, actorID, description)
		if err != nil {
			return err
		}
		if receipt.EnrollmentID != nil {
			if _, err := s.enrollmentSvc.CheckAndCloseIfPaid(ctx, *receipt.EnrollmentID); err != nil {
				return fmt.Errorf("failed to refresh enrollment %s: %w", *receipt.EnrollmentID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to reverse receipt", slog.String("receipt_id", receiptID))
		return nil, err
	}

	s.LogInfo(ctx, "Receipt reversed", slog.String("receipt_id", receiptID), slog.String("reversal_id", reversal.EntryID))
	return reversal, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: receipt %s", apperrors.ErrNotFound, receiptID)
		}
		return nil, fmt.Errorf("failed to get receipt %s: %w", receiptID, err)
	}
	return receipt, nil
}

func (s *receiptService) ListReceipts(ctx context.Context, filter domain.ReceiptFilter) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceipts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receipts")
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

// resolveEnrollment finds and locks the enrollment a receipt pays for: the
// explicit id first, else the student's enrollment in the given course.
func (s *receiptService) resolveEnrollment(ctx context.Context, req dto.CreateReceiptRequest, student domain.StudentRef) (*domain.Enrollment, error) {
	enrollmentID := ""
	switch {
	case req.EnrollmentID != nil && *req.EnrollmentID != "":
		enrollmentID = *req.EnrollmentID
	case req.Course != nil:
		found, err := s.enrollmentRepo.FindEnrollmentByStudentCourse(ctx, student.ID, req.Course.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		enrollmentID = found.EnrollmentID
	default:
		return nil, nil
	}

	enrollment, err := s.enrollmentRepo.FindEnrollmentForUpdate(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment %s", apperrors.ErrNotFound, enrollmentID)
		}
		return nil, err
	}
	if enrollment.Student.ID != student.ID {
		return nil, fmt.Errorf("%w: enrollment %s belongs to another student", apperrors.ErrValidation, enrollmentID)
	}
	return enrollment, nil
}

func (s *receiptService) nextReceiptNumber(ctx context.Context, student domain.StudentRef, date time.Time) (string, error) {
	code := student.ReceiptCode()
	day := date.Format("20060102")
	key := fmt.Sprintf("receipt:%s:%s", code, day)
	return s.sequenceSvc.NextReference(ctx, key, fmt.Sprintf("RC-%s-%s-", code, day), 3)
}

// postAccrual posts Dr cash / Cr receivable for the receipt and links the entry.
func (s *receiptService) postAccrual(ctx context.Context, receipt *domain.Receipt, enrollment *domain.Enrollment, userID string) (*domain.JournalEntry, error) {
	cashAcc, err := s.accountSvc.GetCashAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	var arAcc *domain.Account
	if enrollment != nil {
		arAcc, err = s.accountSvc.GetOrCreateEnrollmentARAccount(ctx, enrollment.Student, enrollment.Course, userID)
	} else {
		arAcc, err = s.accountSvc.GetOrCreateStudentARAccount(ctx, receipt.Student, userID)
	}
	if err != nil {
		return nil, err
	}

	entry, err := s.journalSvc.CreateAndPost(ctx, domain.NewEntry{
		Reference:   receipt.ReceiptNumber,
		Date:        receipt.Date,
		Description: fmt.Sprintf("Receipt %s: %s", receipt.ReceiptNumber, receipt.Student.FullName),
		EntryType:   domain.EntryPayment,
		Lines: []domain.EntryLine{
			{AccountID: cashAcc.AccountID, Amount: receipt.PaidAmount, IsDebit: true},
			{AccountID: arAcc.AccountID, Amount: receipt.PaidAmount, IsDebit: false},
		},
	}, userID)
	if err != nil {
		return nil, err
	}
	if err := s.receiptRepo.UpdateReceiptEntry(ctx, receipt.ReceiptID, entry.EntryID, userID); err != nil {
		return nil, fmt.Errorf("failed to link receipt entry: %w", err)
	}
	return entry, nil
}
