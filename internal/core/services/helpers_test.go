package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/platform/config"
	"github.com/SscSPs/institute_ledger/internal/repositories/memory"
)

const (
	testUser    = "user-accountant"
	systemActor = "user-system"
)

// ledgerSuite wires every service over a fresh in-memory store with the
// standard chart already created.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.svc = newContainer(s.store, systemActor)
	_, err := s.svc.Maintenance.SetupChartOfAccounts(s.ctx, testUser)
	s.Require().NoError(err)
}

func newContainer(store *memory.Store, systemActorID string, options ...services.BaseOption) *portssvc.ServiceContainer {
	return services.NewServiceContainer(&config.Config{SystemActorID: systemActorID}, store.Provider(), options...)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *ledgerSuite) account(code string) *domain.Account {
	acc, err := s.svc.Account.GetAccountByCode(s.ctx, code)
	s.Require().NoError(err, "account %s", code)
	return acc
}

// cached returns the stored roll-up balance of the account with code.
func (s *ledgerSuite) cached(code string) decimal.Decimal {
	return s.account(code).Balance
}

func (s *ledgerSuite) assertCached(code string, want string) {
	s.T().Helper()
	got := s.cached(code)
	s.Truef(dec(want).Equal(got), "balance of %s: want %s, got %s", code, want, got)
}

func (s *ledgerSuite) line(code string, amount string, debit bool) domain.EntryLine {
	return domain.EntryLine{AccountID: s.account(code).AccountID, Amount: dec(amount), IsDebit: debit}
}

func (s *ledgerSuite) newEntry(description string, lines ...domain.EntryLine) domain.NewEntry {
	return domain.NewEntry{
		Date:        time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: description,
		EntryType:   domain.EntryManual,
		Lines:       lines,
	}
}

// snapshot captures the cached balance of every account by code.
func (s *ledgerSuite) snapshot() map[string]decimal.Decimal {
	accounts, err := s.svc.Account.ListAccounts(s.ctx)
	s.Require().NoError(err)
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		balances[acc.Code] = acc.Balance
	}
	return balances
}

func (s *ledgerSuite) assertSameBalances(want, got map[string]decimal.Decimal) {
	s.T().Helper()
	s.Require().Len(got, len(want))
	for code, balance := range want {
		s.Truef(balance.Equal(got[code]), "balance of %s: want %s, got %s", code, balance, got[code])
	}
}

var (
	student42 = dto.StudentRequest{ID: 42, FullName: "Lina Haddad", RegistrarID: "user-registrar"}
	course3   = dto.CourseRequest{ID: 3, Name: "English B1"}
)

// enroll creates an enrollment of student42 in course3 for the given amounts.
func (s *ledgerSuite) enroll(total, pct, fixed string) *domain.Enrollment {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	enr, err := s.svc.Enrollment.CreateEnrollment(s.ctx, dto.CreateEnrollmentRequest{
		Student:         student42,
		Course:          course3,
		EnrollmentDate:  &date,
		TotalAmount:     dec(total),
		DiscountPercent: dec(pct),
		DiscountAmount:  dec(fixed),
	}, testUser)
	s.Require().NoError(err)
	return enr
}

func (s *ledgerSuite) pay(enrollmentID string, paid string) (*domain.Receipt, error) {
	date := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	return s.svc.Receipt.CreateReceipt(s.ctx, dto.CreateReceiptRequest{
		EnrollmentID: &enrollmentID,
		Student:      student42,
		Date:         &date,
		PaidAmount:   dec(paid),
	}, testUser)
}

func (s *ledgerSuite) countEntries(entryType domain.EntryType) int {
	t := string(entryType)
	resp, err := s.svc.Journal.ListEntries(s.ctx, dto.ListJournalEntriesParams{Limit: 200, EntryType: &t})
	s.Require().NoError(err)
	return len(resp.Entries)
}
