package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelExpense converts a domain ExpenseEntry to a model Expense
func ToModelExpense(d domain.ExpenseEntry) models.Expense {
	m := models.Expense{
		ExpenseID:     d.ExpenseID,
		Reference:     d.Reference,
		ExpenseDate:   d.Date,
		Category:      string(d.Category),
		Description:   d.Description,
		Amount:        d.Amount,
		Vendor:        d.Vendor,
		PaymentMethod: d.PaymentMethod,
		EntryID:       d.EntryID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Employee != nil {
		m.EmployeeID = &d.Employee.ID
		m.EmployeeName = &d.Employee.FullName
	}
	if d.Teacher != nil {
		m.TeacherID = &d.Teacher.ID
		m.TeacherName = &d.Teacher.FullName
	}
	return m
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.ExpenseEntry {
	d := domain.ExpenseEntry{
		ExpenseID:     m.ExpenseID,
		Reference:     m.Reference,
		Date:          m.ExpenseDate,
		Category:      domain.ExpenseCategory(m.Category),
		Description:   m.Description,
		Amount:        m.Amount,
		Vendor:        m.Vendor,
		PaymentMethod: m.PaymentMethod,
		EntryID:       m.EntryID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.EmployeeID != nil {
		d.Employee = &domain.EmployeeRef{ID: *m.EmployeeID, FullName: deref(m.EmployeeName)}
	}
	if m.TeacherID != nil {
		d.Teacher = &domain.TeacherRef{ID: *m.TeacherID, FullName: deref(m.TeacherName)}
	}
	return d
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.ExpenseEntry {
	ds := make([]domain.ExpenseEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelAdvance converts a domain Advance to a model Advance
func ToModelAdvance(d domain.Advance) models.Advance {
	return models.Advance{
		AdvanceID:    d.AdvanceID,
		Reference:    d.Reference,
		EmployeeID:   d.Employee.ID,
		EmployeeName: d.Employee.FullName,
		AdvanceDate:  d.Date,
		Amount:       d.Amount,
		Purpose:      d.Purpose,
		RepaidAmount: d.RepaidAmount,
		IsRepaid:     d.IsRepaid,
		EntryID:      d.EntryID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdvance converts a model Advance to a domain Advance
func ToDomainAdvance(m models.Advance) domain.Advance {
	return domain.Advance{
		AdvanceID:    m.AdvanceID,
		Reference:    m.Reference,
		Employee:     domain.EmployeeRef{ID: m.EmployeeID, FullName: m.EmployeeName},
		Date:         m.AdvanceDate,
		Amount:       m.Amount,
		Purpose:      m.Purpose,
		RepaidAmount: m.RepaidAmount,
		IsRepaid:     m.IsRepaid,
		EntryID:      m.EntryID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRepayment converts a domain Repayment to a model Repayment
func ToModelRepayment(d domain.Repayment) models.Repayment {
	return models.Repayment{
		RepaymentID:   d.RepaymentID,
		AdvanceID:     d.AdvanceID,
		Reference:     d.Reference,
		RepaymentDate: d.Date,
		Amount:        d.Amount,
		Notes:         d.Notes,
		EntryID:       d.EntryID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRepayment converts a model Repayment to a domain Repayment
func ToDomainRepayment(m models.Repayment) domain.Repayment {
	return domain.Repayment{
		RepaymentID: m.RepaymentID,
		AdvanceID:   m.AdvanceID,
		Reference:   m.Reference,
		Date:        m.RepaymentDate,
		Amount:      m.Amount,
		Notes:       m.Notes,
		EntryID:     m.EntryID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
