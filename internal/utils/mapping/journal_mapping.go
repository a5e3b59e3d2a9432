package mapping

import (
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		Reference:    d.Reference,
		EntryDate:    d.Date,
		Description:  d.Description,
		EntryType:    string(d.EntryType),
		TotalAmount:  d.TotalAmount,
		IsPosted:     d.IsPosted,
		PostedAt:     d.PostedAt,
		PostedBy:     d.PostedBy,
		ReversalOfID: d.ReversalOfID,
		ReversedByID: d.ReversedByID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		Reference:    m.Reference,
		Date:         m.EntryDate,
		Description:  m.Description,
		EntryType:    domain.EntryType(m.EntryType),
		TotalAmount:  m.TotalAmount,
		IsPosted:     m.IsPosted,
		PostedAt:     m.PostedAt,
		PostedBy:     m.PostedBy,
		ReversalOfID: m.ReversalOfID,
		ReversedByID: m.ReversedByID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		EntryID:       d.EntryID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		IsDebit:       d.IsDebit,
		CostCenter:    d.CostCenter,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		EntryID:       m.EntryID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		IsDebit:       m.IsDebit,
		CostCenter:    m.CostCenter,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToDomainLedgerLine converts a joined ledger row to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		Transaction:    ToDomainTransaction(m.Transaction),
		Reference:      m.Reference,
		EntryDate:      m.EntryDate,
		EntryType:      domain.EntryType(m.EntryType),
		EntryDesc:      m.EntryDesc,
		RunningBalance: m.RunningBalance,
	}
}
