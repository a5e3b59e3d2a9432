// Package memory is an in-process implementation of every repository port.
// A single mutex serializes transactions; a failed transaction restores the
// snapshot taken when it began. It backs the service tests and local runs
// without PostgreSQL.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
)

type txKey struct{}

// Store holds all ledger state in memory.
type Store struct {
	mu sync.Mutex
	data
}

type data struct {
	accounts     map[string]domain.Account
	accountCodes map[string]string
	entries      map[string]domain.JournalEntry
	entryRefs    map[string]string
	transactions map[string][]domain.Transaction
	sequences    map[string]int64
	enrollments  map[string]domain.Enrollment
	withdrawals  map[string]domain.Withdrawal
	receipts     map[string]domain.Receipt
	expenses     map[string]domain.ExpenseEntry
	advances     map[string]domain.Advance
	repayments   map[string]domain.Repayment
	costCenters  map[string]domain.CostCenter
	periods      map[string]domain.AccountingPeriod
	budgets      map[string]domain.Budget
	discounts    map[string]domain.DiscountRule
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: data{
		accounts:     map[string]domain.Account{},
		accountCodes: map[string]string{},
		entries:      map[string]domain.JournalEntry{},
		entryRefs:    map[string]string{},
		transactions: map[string][]domain.Transaction{},
		sequences:    map[string]int64{},
		enrollments:  map[string]domain.Enrollment{},
		withdrawals:  map[string]domain.Withdrawal{},
		receipts:     map[string]domain.Receipt{},
		expenses:     map[string]domain.ExpenseEntry{},
		advances:     map[string]domain.Advance{},
		repayments:   map[string]domain.Repayment{},
		costCenters:  map[string]domain.CostCenter{},
		periods:      map[string]domain.AccountingPeriod{},
		budgets:      map[string]domain.Budget{},
		discounts:    map[string]domain.DiscountRule{},
	}}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      s,
		AccountRepo:    s,
		JournalRepo:    s,
		SequenceRepo:   s,
		EnrollmentRepo: s,
		ReceiptRepo:    s,
		ExpenseRepo:    s,
		AdvanceRepo:    s,

		CostCenterRepo:   s,
		PeriodRepo:       s,
		DiscountRuleRepo: s,
	}
}

var (
	_ portsrepo.TransactionManager         = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade    = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade    = (*Store)(nil)
	_ portsrepo.SequenceRepository         = (*Store)(nil)
	_ portsrepo.EnrollmentRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReceiptRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade    = (*Store)(nil)
	_ portsrepo.AdvanceRepositoryFacade    = (*Store)(nil)

	_ portsrepo.CostCenterRepositoryFacade   = (*Store)(nil)
	_ portsrepo.PeriodRepositoryFacade       = (*Store)(nil)
	_ portsrepo.DiscountRuleRepositoryFacade = (*Store)(nil)
)

// WithinTx runs fn holding the store lock. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock takes the store lock for a single call made outside a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// clone copies every map. Stored values are replaced, never mutated in place,
// so a shallow copy is a consistent snapshot.
func (d data) clone() data {
	return data{
		accounts:     maps.Clone(d.accounts),
		accountCodes: maps.Clone(d.accountCodes),
		entries:      maps.Clone(d.entries),
		entryRefs:    maps.Clone(d.entryRefs),
		transactions: maps.Clone(d.transactions),
		sequences:    maps.Clone(d.sequences),
		enrollments:  maps.Clone(d.enrollments),
		withdrawals:  maps.Clone(d.withdrawals),
		receipts:     maps.Clone(d.receipts),
		expenses:     maps.Clone(d.expenses),
		advances:     maps.Clone(d.advances),
		repayments:   maps.Clone(d.repayments),
		costCenters:  maps.Clone(d.costCenters),
		periods:      maps.Clone(d.periods),
		budgets:      maps.Clone(d.budgets),
		discounts:    maps.Clone(d.discounts),
	}
}

// page applies offset and limit; a limit of zero or less returns everything.
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
