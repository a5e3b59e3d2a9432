package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var parent *string
	if d.HasParent() {
		parent = d.ParentAccountID
	}
	return models.Account{
		AccountID:        d.AccountID,
		Code:             d.Code,
		Name:             d.Name,
		NameLocal:        d.NameLocal,
		AccountType:      models.AccountType(d.AccountType),
		ParentAccountID:  parent,
		IsActive:         d.IsActive,
		IsCourseAccount:  d.IsCourseAccount,
		CourseName:       d.CourseName,
		IsStudentAccount: d.IsStudentAccount,
		StudentName:      d.StudentName,
		Balance:          d.Balance,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		Code:             m.Code,
		Name:             m.Name,
		NameLocal:        m.NameLocal,
		AccountType:      domain.AccountType(m.AccountType),
		ParentAccountID:  m.ParentAccountID,
		IsActive:         m.IsActive,
		IsCourseAccount:  m.IsCourseAccount,
		CourseName:       m.CourseName,
		IsStudentAccount: m.IsStudentAccount,
		StudentName:      m.StudentName,
		Balance:          m.Balance,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
