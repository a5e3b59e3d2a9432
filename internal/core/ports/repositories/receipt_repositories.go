package repositories

import (
	"context"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptRepositoryFacade defines persistence for student receipts
type ReceiptRepositoryFacade interface {
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
	// UpdateReceiptEntry links a receipt to the journal entry it produced.
	UpdateReceiptEntry(ctx context.Context, receiptID string, entryID string, userID string) error
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, filter domain.ReceiptFilter) ([]domain.Receipt, error)

	// SumPaidByEnrollment totals paid_amount over receipts linked to the enrollment.
	SumPaidByEnrollment(ctx context.Context, enrollmentID string) (decimal.Decimal, error)

	// SumPaidByStudentCourse totals paid_amount over receipts of the student for the course.
	SumPaidByStudentCourse(ctx context.Context, studentID, courseID int64) (decimal.Decimal, error)
}
