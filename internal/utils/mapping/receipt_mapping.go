package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelReceipt converts a domain Receipt to a model Receipt
func ToModelReceipt(d domain.Receipt) models.Receipt {
	m := models.Receipt{
		ReceiptID:       d.ReceiptID,
		ReceiptNumber:   d.ReceiptNumber,
		StudentID:       d.Student.ID,
		StudentCode:     d.Student.Code,
		StudentName:     d.Student.FullName,
		RegistrarID:     d.Student.RegistrarID,
		EnrollmentID:    d.EnrollmentID,
		ReceiptDate:     d.Date,
		Amount:          d.Amount,
		DiscountPercent: d.DiscountPercent,
		DiscountAmount:  d.DiscountAmount,
		NetAmount:       d.NetAmount,
		PaidAmount:      d.PaidAmount,
		PaymentMethod:   d.PaymentMethod,
		Notes:           d.Notes,
		EntryID:         d.EntryID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Course != nil {
		m.CourseID = &d.Course.ID
		m.CourseName = &d.Course.Name
	}
	return m
}

// ToDomainReceipt converts a model Receipt to a domain Receipt
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	d := domain.Receipt{
		ReceiptID:     m.ReceiptID,
		ReceiptNumber: m.ReceiptNumber,
		Student: domain.StudentRef{
			ID:          m.StudentID,
			Code:        m.StudentCode,
			FullName:    m.StudentName,
			RegistrarID: m.RegistrarID,
		},
		EnrollmentID:    m.EnrollmentID,
		Date:            m.ReceiptDate,
		Amount:          m.Amount,
		DiscountPercent: m.DiscountPercent,
		DiscountAmount:  m.DiscountAmount,
		NetAmount:       m.NetAmount,
		PaidAmount:      m.PaidAmount,
		PaymentMethod:   m.PaymentMethod,
		Notes:           m.Notes,
		EntryID:         m.EntryID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.CourseID != nil {
		course := domain.CourseRef{ID: *m.CourseID}
		if m.CourseName != nil {
			course.Name = *m.CourseName
		}
		d.Course = &course
	}
	return d
}

// ToDomainReceiptSlice converts a slice of model Receipts to domain Receipts
func ToDomainReceiptSlice(ms []models.Receipt) []domain.Receipt {
	ds := make([]domain.Receipt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReceipt(m)
	}
	return ds
}
