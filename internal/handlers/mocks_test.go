package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// The mocks embed the facade they stand in for. Methods a test does not
// override fall through to the nil interface and panic, which fails the test.

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
	portssvc.AccountSvcFacade
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) BalanceOf(ctx context.Context, accountID string, includeDescendants bool) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, includeDescendants)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
	portssvc.JournalSvcFacade
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, []domain.Transaction, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.Transaction), args.Error(2)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) AccountLedger(ctx context.Context, accountID string, params dto.LedgerParams) (*dto.AccountLedgerResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountLedgerResponse), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateAndPost(ctx context.Context, entry domain.NewEntry, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, entryID string, userID string, description *string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock EnrollmentService ---
type MockEnrollmentService struct {
	mock.Mock
	portssvc.EnrollmentSvcFacade
}

func (m *MockEnrollmentService) GetEnrollment(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentService) ARBalance(ctx context.Context, enrollmentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEnrollmentService) CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest, userID string) (*domain.Enrollment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentService) PostOpeningEntry(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, enrollmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEnrollmentService) Withdraw(ctx context.Context, enrollmentID string, req dto.WithdrawEnrollmentRequest, userID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, enrollmentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockEnrollmentService) CompleteEnrollment(ctx context.Context, enrollmentID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, enrollmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
	portssvc.ReceiptSvcFacade
}

func (m *MockReceiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, userID string) (*domain.Receipt, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptService) ReverseReceipt(ctx context.Context, receiptID string, userID string, description *string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, receiptID, userID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock AdvanceService ---
type MockAdvanceService struct {
	mock.Mock
	portssvc.AdvanceSvcFacade
}

func (m *MockAdvanceService) GetAdvance(ctx context.Context, advanceID string) (*domain.Advance, []domain.Repayment, error) {
	args := m.Called(ctx, advanceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Advance), args.Get(1).([]domain.Repayment), args.Error(2)
}

func (m *MockAdvanceService) CreateRepayment(ctx context.Context, advanceID string, req dto.CreateRepaymentRequest, userID string) (*domain.Repayment, error) {
	args := m.Called(ctx, advanceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Repayment), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf *time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, period domain.DateRange) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf *time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
	portssvc.PeriodSvcFacade
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, periodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.BudgetReport, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetReport), args.Error(1)
}

func (m *MockPeriodService) CurrentPeriod(ctx context.Context, at time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

// --- Mock CostCenterService ---
type MockCostCenterService struct {
	mock.Mock
	portssvc.CostCenterSvcFacade
}

func (m *MockCostCenterService) CreateCostCenter(ctx context.Context, req dto.CreateCostCenterRequest, userID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

var _ portssvc.CostCenterSvcFacade = (*MockCostCenterService)(nil)

// --- Mock DiscountRuleService ---
type MockDiscountRuleService struct {
	mock.Mock
	portssvc.DiscountRuleSvcFacade
}

func (m *MockDiscountRuleService) ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountRule), args.Error(1)
}

var _ portssvc.DiscountRuleSvcFacade = (*MockDiscountRuleService)(nil)
