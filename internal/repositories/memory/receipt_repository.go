package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func (s *Store) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	defer s.lock(ctx)()
	for _, r := range s.receipts {
		if r.ReceiptNumber == receipt.ReceiptNumber {
			return fmt.Errorf("%w: receipt number %s", apperrors.ErrDuplicate, receipt.ReceiptNumber)
		}
	}
	s.receipts[receipt.ReceiptID] = receipt
	return nil
}

func (s *Store) UpdateReceiptEntry(ctx context.Context, receiptID string, entryID string, userID string) error {
	defer s.lock(ctx)()
	r, ok := s.receipts[receiptID]
	if !ok {
		return apperrors.ErrNotFound
	}
	r.EntryID = &entryID
	r.LastUpdatedBy = userID
	s.receipts[receiptID] = r
	return nil
}

func (s *Store) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	defer s.lock(ctx)()
	r, ok := s.receipts[receiptID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (s *Store) ListReceipts(ctx context.Context, filter domain.ReceiptFilter) ([]domain.Receipt, error) {
	defer s.lock(ctx)()
	result := make([]domain.Receipt, 0)
	for _, r := range s.receipts {
		if filter.StudentID != nil && r.Student.ID != *filter.StudentID {
			continue
		}
		if filter.EnrollmentID != nil && (r.EnrollmentID == nil || *r.EnrollmentID != *filter.EnrollmentID) {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ReceiptNumber > result[j].ReceiptNumber
	})
	return page(result, filter.Limit, filter.Offset), nil
}

func (s *Store) SumPaidByEnrollment(ctx context.Context, enrollmentID string) (decimal.Decimal, error) {
	defer s.lock(ctx)()
	total := decimal.Zero
	for _, r := range s.receipts {
		if r.EnrollmentID != nil && *r.EnrollmentID == enrollmentID && !s.receiptReversed(r) {
			total = total.Add(r.PaidAmount)
		}
	}
	return total, nil
}

func (s *Store) SumPaidByStudentCourse(ctx context.Context, studentID, courseID int64) (decimal.Decimal, error) {
	defer s.lock(ctx)()
	total := decimal.Zero
	for _, r := range s.receipts {
		if r.Student.ID == studentID && r.Course != nil && r.Course.ID == courseID && !s.receiptReversed(r) {
			total = total.Add(r.PaidAmount)
		}
	}
	return total, nil
}

// receiptReversed reports whether the receipt's journal entry has been
// reversed. Callers hold the lock.
func (s *Store) receiptReversed(r domain.Receipt) bool {
	if r.EntryID == nil {
		return false
	}
	entry, ok := s.entries[*r.EntryID]
	return ok && entry.ReversedByID != nil
}
