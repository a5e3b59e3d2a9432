package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
)

func (s *Store) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	defer s.lock(ctx)()
	enr, ok := s.enrollments[enrollmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &enr, nil
}

func (s *Store) FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	defer s.lock(ctx)()
	for _, enr := range s.enrollments {
		if enr.Student.ID == studentID && enr.Course.ID == courseID {
			return &enr, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListEnrollments(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	defer s.lock(ctx)()
	result := make([]domain.Enrollment, 0)
	for _, enr := range s.enrollments {
		if filter.StudentID != nil && enr.Student.ID != *filter.StudentID {
			continue
		}
		if filter.CourseID != nil && enr.Course.ID != *filter.CourseID {
			continue
		}
		if filter.Open != nil && *filter.Open != (!enr.IsClosed() && !enr.IsWithdrawn) {
			continue
		}
		result = append(result, enr)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EnrollmentDate.Equal(result[j].EnrollmentDate) {
			return result[i].EnrollmentDate.After(result[j].EnrollmentDate)
		}
		return result[i].EnrollmentID < result[j].EnrollmentID
	})
	return page(result, filter.Limit, filter.Offset), nil
}

func (s *Store) ListWithdrawals(ctx context.Context, enrollmentID string) ([]domain.Withdrawal, error) {
	defer s.lock(ctx)()
	result := make([]domain.Withdrawal, 0)
	for _, w := range s.withdrawals {
		if w.EnrollmentID == enrollmentID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WithdrawnAt.Before(result[j].WithdrawnAt) })
	return result, nil
}

func (s *Store) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	defer s.lock(ctx)()
	for _, enr := range s.enrollments {
		if enr.Student.ID == enrollment.Student.ID && enr.Course.ID == enrollment.Course.ID {
			return fmt.Errorf("%w: enrollment for student %d and course %d", apperrors.ErrDuplicate, enr.Student.ID, enr.Course.ID)
		}
	}
	s.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (s *Store) UpdateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	defer s.lock(ctx)()
	if _, ok := s.enrollments[enrollment.EnrollmentID]; !ok {
		return apperrors.ErrNotFound
	}
	s.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (s *Store) FindEnrollmentForUpdate(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	return s.FindEnrollmentByID(ctx, enrollmentID)
}

func (s *Store) SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	defer s.lock(ctx)()
	s.withdrawals[withdrawal.WithdrawalID] = withdrawal
	return nil
}
