package pgsql_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	container "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/platform/config"
	"github.com/SscSPs/institute_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/institute_ledger/pkg/database"
)

const testUser = "user-accountant"

// PostgresSuite runs the services against a real PostgreSQL started with
// testcontainers. It only runs with TEST_DB_DRIVER=postgres.
type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	url       string
	pool      *pgxpool.Pool
	svc       *portssvc.ServiceContainer
}

func TestPostgresSuite(t *testing.T) {
	if os.Getenv("TEST_DB_DRIVER") != "postgres" {
		t.Skip("set TEST_DB_DRIVER=postgres to run PostgreSQL integration tests")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	pg, err := container.Run(s.ctx,
		"postgres:16-alpine",
		container.WithDatabase("ledger"),
		container.WithUsername("postgres"),
		container.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			)))
	s.Require().NoError(err)
	s.container = pg

	s.url, err = pg.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	migrations, err := filepath.Abs("../../../../migrations")
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(s.url, "file://"+migrations, slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, s.url, true)
	s.Require().NoError(err)
}

func (s *PostgresSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE budgets, accounting_periods, cost_centers, discount_rules,
		advance_repayments, employee_advances, expenses, receipts,
		enrollment_withdrawals, enrollments, transactions, journal_entries, sequences, accounts CASCADE`)
	s.Require().NoError(err)

	s.svc = services.NewServiceContainer(&config.Config{SystemActorID: "user-system"}, pgsql.NewRepositoryProvider(s.pool))
	_, err = s.svc.Maintenance.SetupChartOfAccounts(s.ctx, testUser)
	s.Require().NoError(err)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *PostgresSuite) balance(code string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccountByCode(s.ctx, code)
	s.Require().NoError(err, "account %s", code)
	return acc.Balance
}

func (s *PostgresSuite) TestEnrollmentAndPaymentRoundTrip() {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	enr, err := s.svc.Enrollment.CreateEnrollment(s.ctx, dto.CreateEnrollmentRequest{
		Student:         dto.StudentRequest{ID: 42, FullName: "Lina Haddad", RegistrarID: "user-registrar"},
		Course:          dto.CourseRequest{ID: 3, Name: "English B1"},
		EnrollmentDate:  &date,
		TotalAmount:     dec("1200"),
		DiscountPercent: dec("10"),
		DiscountAmount:  dec("80"),
	}, testUser)
	s.Require().NoError(err)
	s.True(dec("1000").Equal(enr.NetAmount))

	_, err = s.svc.Receipt.CreateReceipt(s.ctx, dto.CreateReceiptRequest{
		EnrollmentID: &enr.EnrollmentID,
		Student:      dto.StudentRequest{ID: 42, FullName: "Lina Haddad"},
		PaidAmount:   dec("600"),
	}, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Receipt.CreateReceipt(s.ctx, dto.CreateReceiptRequest{
		EnrollmentID: &enr.EnrollmentID,
		Student:      dto.StudentRequest{ID: 42, FullName: "Lina Haddad"},
		PaidAmount:   dec("500"),
	}, testUser)
	s.ErrorIs(err, services.ErrPaymentExceedsDue)

	s.True(dec("400").Equal(s.balance("1251-C003-S0042")))
	s.True(dec("1000").Equal(s.balance("2101-003")))
	s.True(dec("600").Equal(s.balance("1211")))

	report, err := s.svc.Maintenance.VerifyBalances(s.ctx)
	s.Require().NoError(err)
	s.Empty(report.Drifts)

	reloaded, err := s.svc.Enrollment.GetEnrollment(s.ctx, enr.EnrollmentID)
	s.Require().NoError(err)
	s.Equal("Lina Haddad", reloaded.Student.FullName)
	s.NotNil(reloaded.OpeningEntryID)
}

func (s *PostgresSuite) TestLedgerRunningBalanceAcrossPages() {
	cash, err := s.svc.Account.GetAccountByCode(s.ctx, "1211")
	s.Require().NoError(err)
	capital, err := s.svc.Account.GetAccountByCode(s.ctx, "3100")
	s.Require().NoError(err)

	for i, amount := range []string{"100", "50", "25"} {
		_, err := s.svc.Journal.CreateAndPost(s.ctx, domain.NewEntry{
			Date:        time.Date(2025, 1, 5+i, 0, 0, 0, 0, time.UTC),
			Description: "capital injection",
			EntryType:   domain.EntryManual,
			Lines: []domain.EntryLine{
				{AccountID: cash.AccountID, Amount: dec(amount), IsDebit: true},
				{AccountID: capital.AccountID, Amount: dec(amount), IsDebit: false},
			},
		}, testUser)
		s.Require().NoError(err)
	}

	first, err := s.svc.Journal.AccountLedger(s.ctx, cash.AccountID, dto.LedgerParams{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(first.Lines, 2)
	s.Require().NotNil(first.NextToken)
	s.True(dec("150").Equal(first.Lines[1].RunningBalance))

	second, err := s.svc.Journal.AccountLedger(s.ctx, cash.AccountID, dto.LedgerParams{Limit: 2, NextToken: first.NextToken})
	s.Require().NoError(err)
	s.Require().Len(second.Lines, 1)
	s.Nil(second.NextToken)
	s.True(dec("175").Equal(second.Lines[0].RunningBalance))
}

func (s *PostgresSuite) TestDoublePostAndDuplicateCode() {
	cash, err := s.svc.Account.GetAccountByCode(s.ctx, "1211")
	s.Require().NoError(err)
	capital, err := s.svc.Account.GetAccountByCode(s.ctx, "3100")
	s.Require().NoError(err)

	entry, err := s.svc.Journal.CreateAndPost(s.ctx, domain.NewEntry{
		Date:        time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "opening capital",
		EntryType:   domain.EntryManual,
		Lines: []domain.EntryLine{
			{AccountID: cash.AccountID, Amount: dec("10"), IsDebit: true},
			{AccountID: capital.AccountID, Amount: dec("10"), IsDebit: false},
		},
	}, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Journal.PostEntry(s.ctx, entry.EntryID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1211", Name: "Cash again", AccountType: domain.Asset}, testUser)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PostgresSuite) TestConcurrentSequenceValues() {
	const callers = 50
	values := make([]int64, callers)
	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			v, err := s.svc.Sequence.Next(s.ctx, "receipt:S0042:20250105")
			values[i] = v
			return err
		})
	}
	s.Require().NoError(g.Wait())

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		s.Equal(int64(i+1), v)
	}
}

func (s *PostgresSuite) TestClosedPeriodAndBudget() {
	period, err := s.svc.Period.CreatePeriod(s.ctx, dto.CreatePeriodRequest{
		Name:      "January 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}, testUser)
	s.Require().NoError(err)
	_, err = s.svc.CostCenter.CreateCostCenter(s.ctx, dto.CreateCostCenterRequest{Code: "ADMIN", Name: "Administration"}, testUser)
	s.Require().NoError(err)

	rent, err := s.svc.Account.GetAccountByCode(s.ctx, "5200")
	s.Require().NoError(err)
	cash, err := s.svc.Account.GetAccountByCode(s.ctx, "1211")
	s.Require().NoError(err)
	entry := domain.NewEntry{
		Date:        time.Date(2025, 1, 31, 22, 0, 0, 0, time.UTC),
		Description: "January rent",
		Lines: []domain.EntryLine{
			{AccountID: rent.AccountID, Amount: dec("300"), IsDebit: true, CostCenter: "ADMIN"},
			{AccountID: cash.AccountID, Amount: dec("300")},
		},
	}
	_, err = s.svc.Journal.CreateAndPost(s.ctx, entry, testUser)
	s.Require().NoError(err)

	report, err := s.svc.Period.CreateBudget(s.ctx, dto.CreateBudgetRequest{
		AccountID: rent.AccountID, PeriodID: period.PeriodID, BudgetedAmount: dec("250"),
	}, testUser)
	s.Require().NoError(err)
	s.True(dec("300").Equal(report.ActualAmount))
	s.True(dec("20").Equal(report.VariancePercent))

	_, err = s.svc.Period.ClosePeriod(s.ctx, period.PeriodID, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Journal.CreateAndPost(s.ctx, entry, testUser)
	s.ErrorIs(err, services.ErrPeriodClosed)

	_, err = s.svc.Period.CreateBudget(s.ctx, dto.CreateBudgetRequest{AccountID: rent.AccountID, PeriodID: period.PeriodID}, testUser)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}
