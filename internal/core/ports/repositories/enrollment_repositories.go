package repositories

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

// EnrollmentReader defines read operations for enrollments
type EnrollmentReader interface {
	FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)
	FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error)
	ListEnrollments(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error)
	ListWithdrawals(ctx context.Context, enrollmentID string) ([]domain.Withdrawal, error)
}

// EnrollmentWriter defines write operations for enrollments
type EnrollmentWriter interface {
	SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	UpdateEnrollment(ctx context.Context, enrollment domain.Enrollment) error
	// FindEnrollmentForUpdate locks the enrollment row for the current transaction.
	FindEnrollmentForUpdate(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)
	SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces
type EnrollmentRepositoryFacade interface {
	EnrollmentReader
	EnrollmentWriter
}
