package services

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// EnrollmentReaderSvc defines read operations for enrollments
type EnrollmentReaderSvc interface {
	GetEnrollment(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)
	ListEnrollments(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)

	// ARBalance is the live receivable: debits minus credits on the enrollment's AR account.
	ARBalance(ctx context.Context, enrollmentID string) (decimal.Decimal, error)
}

// EnrollmentAccrualSvc drives the receivable/revenue lifecycle of one enrollment
type EnrollmentAccrualSvc interface {
	CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest, userID string) (*domain.Enrollment, error)
	EnsureAccounts(ctx context.Context, enrollmentID string, userID string) error

	// PostOpeningEntry posts Dr AR / Cr deferred revenue once. Returns nil when nothing was posted.
	PostOpeningEntry(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error)

	// CheckAndCloseIfPaid closes the enrollment once its AR balance is zero or less,
	// and reopens a closed one whose AR is positive again. Withdrawn enrollments stay closed.
	CheckAndCloseIfPaid(ctx context.Context, enrollmentID string) (bool, error)

	Withdraw(ctx context.Context, enrollmentID string, req dto.WithdrawEnrollmentRequest, userID string) (*domain.Withdrawal, error)

	// CompleteEnrollment recognizes the deferred revenue as earned.
	CompleteEnrollment(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error)
}

// EnrollmentSvcFacade combines all enrollment-related service interfaces
type EnrollmentSvcFacade interface {
	EnrollmentReaderSvc
	EnrollmentAccrualSvc
}
