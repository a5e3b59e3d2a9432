package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type ExpenseServiceTestSuite struct {
	ledgerSuite
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense() {
	expense, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category:    domain.CategoryRent,
		Description: "January rent",
		Amount:      dec("250"),
		Vendor:      "Landlord",
	}, testUser)
	suite.Require().NoError(err)

	suite.Equal("EX-000001", expense.Reference)
	suite.Equal("CASH", expense.PaymentMethod)
	suite.Require().NotNil(expense.EntryID)

	entry, _, err := suite.svc.Journal.GetEntry(suite.ctx, *expense.EntryID)
	suite.Require().NoError(err)
	suite.Equal(domain.EntryExpense, entry.EntryType)
	suite.Equal(expense.Reference, entry.Reference)

	suite.assertCached("5200", "250")
	suite.assertCached("5000", "250")
	suite.assertCached(cashCode, "-250")

	again, err := suite.svc.Expense.CreateJournalEntry(suite.ctx, expense.ExpenseID, testUser)
	suite.Require().NoError(err)
	suite.Equal(entry.EntryID, again.EntryID)
	suite.assertCached("5200", "250")
}

func (suite *ExpenseServiceTestSuite) TestSalaryGoesToPersonalAccount() {
	_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category:    domain.CategorySalary,
		Description: "March salary",
		Amount:      dec("900"),
		Employee:    &dto.PersonRequest{ID: 7, FullName: "Omar Saleh"},
	}, testUser)
	suite.Require().NoError(err)

	salary := suite.account("5100-0007")
	suite.Equal("Salary - Omar Saleh", salary.Name)
	suite.Equal(suite.account("5100").AccountID, *salary.ParentAccountID)
	suite.assertCached("5100-0007", "900")
	suite.assertCached("5100", "900")

	_, err = suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category:    domain.CategoryTeacherSalary,
		Description: "March lessons",
		Amount:      dec("400"),
		Teacher:     &dto.PersonRequest{ID: 3, FullName: "Rana Aziz"},
	}, testUser)
	suite.Require().NoError(err)
	suite.assertCached("5110-0003", "400")
}

func (suite *ExpenseServiceTestSuite) TestExpenseValidation() {
	_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category: "TRAVEL", Description: "Trip", Amount: dec("10"),
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category: domain.CategoryOther, Description: "Nothing", Amount: decimal.Zero,
	}, testUser)
	suite.ErrorIs(err, services.ErrInvalidAmount)
}

func (suite *ExpenseServiceTestSuite) TestListExpensesByCategory() {
	for _, c := range []domain.ExpenseCategory{domain.CategoryRent, domain.CategoryUtilities, domain.CategoryRent} {
		_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
			Category: c, Description: string(c), Amount: dec("10"),
		}, testUser)
		suite.Require().NoError(err)
	}
	rent := domain.CategoryRent
	list, err := suite.svc.Expense.ListExpenses(suite.ctx, domain.ExpenseFilter{Category: &rent})
	suite.Require().NoError(err)
	suite.Len(list, 2)
}

func (suite *ExpenseServiceTestSuite) TestAdvanceAndRepayments() {
	advance, err := suite.svc.Advance.CreateAdvance(suite.ctx, dto.CreateAdvanceRequest{
		Employee: dto.PersonRequest{ID: 7, FullName: "Omar Saleh"},
		Amount:   dec("500"),
		Purpose:  "Rent deposit",
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal("ADV-000001", advance.Reference)
	suite.Require().NotNil(advance.EntryID)
	suite.assertCached("1300", "500")
	suite.assertCached(cashCode, "-500")

	_, err = suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: decimal.Zero}, testUser)
	suite.ErrorIs(err, services.ErrInvalidAmount)

	first, err := suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: dec("200")}, testUser)
	suite.Require().NoError(err)
	suite.Equal("REP-000001", first.Reference)

	_, err = suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: dec("400")}, testUser)
	suite.ErrorIs(err, services.ErrPaymentExceedsDue)

	_, err = suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: dec("300")}, testUser)
	suite.Require().NoError(err)

	reloaded, repayments, err := suite.svc.Advance.GetAdvance(suite.ctx, advance.AdvanceID)
	suite.Require().NoError(err)
	suite.True(reloaded.IsRepaid)
	suite.True(reloaded.Outstanding().IsZero())
	suite.Len(repayments, 2)
	suite.assertCached("1300", "0")
	suite.assertCached(cashCode, "0")

	open := true
	list, err := suite.svc.Advance.ListAdvances(suite.ctx, domain.AdvanceFilter{Open: &open})
	suite.Require().NoError(err)
	suite.Empty(list)
}

func (suite *ExpenseServiceTestSuite) TestRepaymentNeedsDisbursement() {
	now := time.Now().UTC()
	advance := domain.Advance{
		AdvanceID:    "adv-legacy",
		Reference:    "ADV-LEGACY",
		Employee:     domain.EmployeeRef{ID: 8, FullName: "Legacy"},
		Date:         now,
		Amount:       dec("100"),
		RepaidAmount: decimal.Zero,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: testUser, LastUpdatedAt: now, LastUpdatedBy: testUser},
	}
	suite.Require().NoError(suite.store.SaveAdvance(suite.ctx, advance))

	_, err := suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: dec("10")}, testUser)
	suite.ErrorIs(err, services.ErrAdvanceNotDisbursed)

	entry, err := suite.svc.Advance.CreateAdvanceJournalEntry(suite.ctx, advance.AdvanceID, testUser)
	suite.Require().NoError(err)
	suite.assertCached("1300", "100")

	again, err := suite.svc.Advance.CreateAdvanceJournalEntry(suite.ctx, advance.AdvanceID, testUser)
	suite.Require().NoError(err)
	suite.Equal(entry.EntryID, again.EntryID)

	_, err = suite.svc.Advance.CreateRepayment(suite.ctx, advance.AdvanceID, dto.CreateRepaymentRequest{Amount: dec("10")}, testUser)
	suite.NoError(err)
}
