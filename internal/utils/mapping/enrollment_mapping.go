package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelEnrollment converts a domain Enrollment to a model Enrollment
func ToModelEnrollment(d domain.Enrollment) models.Enrollment {
	return models.Enrollment{
		EnrollmentID:      d.EnrollmentID,
		StudentID:         d.Student.ID,
		StudentCode:       d.Student.Code,
		StudentName:       d.Student.FullName,
		RegistrarID:       d.Student.RegistrarID,
		CourseID:          d.Course.ID,
		CourseName:        d.Course.Name,
		EnrollmentDate:    d.EnrollmentDate,
		TotalAmount:       d.TotalAmount,
		DiscountPercent:   d.DiscountPercent,
		DiscountAmount:    d.DiscountAmount,
		DiscountReason:    d.DiscountReason,
		NetAmount:         d.NetAmount,
		PaymentMethod:     d.PaymentMethod,
		IsCompleted:       d.IsCompleted,
		CompletionDate:    d.CompletionDate,
		OpeningEntryID:    d.OpeningEntryID,
		CompletionEntryID: d.CompletionEntryID,
		ClosedAt:          d.ClosedAt,
		IsWithdrawn:       d.IsWithdrawn,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEnrollment converts a model Enrollment to a domain Enrollment
func ToDomainEnrollment(m models.Enrollment) domain.Enrollment {
	return domain.Enrollment{
		EnrollmentID: m.EnrollmentID,
		Student: domain.StudentRef{
			ID:          m.StudentID,
			Code:        m.StudentCode,
			FullName:    m.StudentName,
			RegistrarID: m.RegistrarID,
		},
		Course:            domain.CourseRef{ID: m.CourseID, Name: m.CourseName},
		EnrollmentDate:    m.EnrollmentDate,
		TotalAmount:       m.TotalAmount,
		DiscountPercent:   m.DiscountPercent,
		DiscountAmount:    m.DiscountAmount,
		DiscountReason:    m.DiscountReason,
		NetAmount:         m.NetAmount,
		PaymentMethod:     m.PaymentMethod,
		IsCompleted:       m.IsCompleted,
		CompletionDate:    m.CompletionDate,
		OpeningEntryID:    m.OpeningEntryID,
		CompletionEntryID: m.CompletionEntryID,
		ClosedAt:          m.ClosedAt,
		IsWithdrawn:       m.IsWithdrawn,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEnrollmentSlice converts a slice of model Enrollments to domain Enrollments
func ToDomainEnrollmentSlice(ms []models.Enrollment) []domain.Enrollment {
	ds := make([]domain.Enrollment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEnrollment(m)
	}
	return ds
}

// ToModelWithdrawal converts a domain Withdrawal to a model Withdrawal
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	return models.Withdrawal(d)
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal(m)
}
