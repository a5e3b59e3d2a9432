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

type AccountServiceTestSuite struct {
	ledgerSuite
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (suite *AccountServiceTestSuite) TestSetupChartIsIdempotent() {
	created, err := suite.svc.Maintenance.SetupChartOfAccounts(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Zero(created)

	cash := suite.account("1211")
	suite.Equal(domain.Asset, cash.AccountType)
	suite.Require().True(cash.HasParent())
	suite.Equal(suite.account("1200").AccountID, *cash.ParentAccountID)

	returns := suite.account("5800")
	suite.Equal(domain.Expense, returns.AccountType)
	suite.Equal(suite.account("5000").AccountID, *returns.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestEnsureKeyCreatesAncestors() {
	acc, err := suite.svc.Account.GetOrCreateEnrollmentARAccount(suite.ctx,
		domain.StudentRef{ID: 42, FullName: "Lina Haddad"}, domain.CourseRef{ID: 3, Name: "English B1"}, testUser)
	suite.Require().NoError(err)

	suite.Equal("1251-C003-S0042", acc.Code)
	suite.Equal("AR Lina Haddad - English B1", acc.Name)
	suite.True(acc.IsStudentAccount)

	course := suite.account("1251-C003")
	suite.Equal("Enrollment Receivables - English B1", course.Name)
	suite.Equal(course.AccountID, *acc.ParentAccountID)
	suite.Equal(suite.account("1251").AccountID, *course.ParentAccountID)

	again, err := suite.svc.Account.GetOrCreateEnrollmentARAccount(suite.ctx,
		domain.StudentRef{ID: 42, FullName: "Lina Haddad"}, domain.CourseRef{ID: 3, Name: "English B1"}, testUser)
	suite.Require().NoError(err)
	suite.Equal(acc.AccountID, again.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateNeverChangesType() {
	first, err := suite.svc.Account.GetOrCreate(suite.ctx, domain.AccountSpec{Code: "1400", Name: "Deposits", AccountType: domain.Asset, ParentCode: "1000"}, testUser)
	suite.Require().NoError(err)

	second, err := suite.svc.Account.GetOrCreate(suite.ctx, domain.AccountSpec{Code: "1400", Name: "Other", AccountType: domain.Liability}, testUser)
	suite.Require().NoError(err)
	suite.Equal(first.AccountID, second.AccountID)
	suite.Equal(domain.Asset, second.AccountType)
	suite.Equal("Deposits", second.Name)
}

func (suite *AccountServiceTestSuite) TestCreateAccountValidation() {
	_, err := suite.svc.Account.CreateAccount(suite.ctx, dto.CreateAccountRequest{Code: "1211", Name: "Cash again", AccountType: domain.Asset}, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.svc.Account.CreateAccount(suite.ctx, dto.CreateAccountRequest{Code: "1410", Name: "Orphan", AccountType: domain.Asset, ParentCode: "1499"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Account.CreateAccount(suite.ctx, dto.CreateAccountRequest{Code: "1420", Name: "Odd", AccountType: "PROFIT"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	acc, err := suite.svc.Account.CreateAccount(suite.ctx, dto.CreateAccountRequest{Code: "1430", Name: "Petty Cash", AccountType: domain.Asset, ParentCode: "1200"}, testUser)
	suite.Require().NoError(err)
	suite.True(acc.IsActive)
	suite.True(acc.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestPostingRollsUpToAncestors() {
	_, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.newEntry("Owner contribution",
		suite.line("1211", "100", true),
		suite.line("3100", "100", false),
	), testUser)
	suite.Require().NoError(err)

	suite.assertCached("1211", "100")
	suite.assertCached("1200", "100")
	suite.assertCached("1000", "100")
	suite.assertCached("3100", "100")
	suite.assertCached("3000", "100")
	suite.assertCached("2000", "0")

	own, err := suite.svc.Account.BalanceOf(suite.ctx, suite.account("1000").AccountID, false)
	suite.Require().NoError(err)
	suite.True(own.IsZero())

	subtree, err := suite.svc.Account.BalanceOf(suite.ctx, suite.account("1000").AccountID, true)
	suite.Require().NoError(err)
	suite.True(dec("100").Equal(subtree))
}

func (suite *AccountServiceTestSuite) TestApplyPostingRejectsTinyAmounts() {
	err := suite.svc.Account.ApplyPosting(suite.ctx, suite.account("1211").AccountID, true, dec("0.001"), testUser)
	suite.ErrorIs(err, services.ErrInvalidAmount)
	suite.assertCached("1211", "0")
}

func (suite *AccountServiceTestSuite) TestRebuildMatchesIncremental() {
	enr := suite.enroll("1200", "10", "80")
	_, err := suite.pay(enr.EnrollmentID, "600")
	suite.Require().NoError(err)
	_, err = suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Category: domain.CategoryRent, Description: "January rent", Amount: dec("150"),
	}, testUser)
	suite.Require().NoError(err)

	incremental := suite.snapshot()

	verify, err := suite.svc.Account.VerifyBalances(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(verify.Drifts)
	suite.False(verify.Applied)

	// Corrupt the cache behind the service's back.
	cash := suite.account("1211")
	suite.Require().NoError(suite.store.SetAccountBalances(suite.ctx, map[string]decimal.Decimal{cash.AccountID: dec("999")}, testUser, time.Now()))

	verify, err = suite.svc.Account.VerifyBalances(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(verify.Drifts, 1)
	suite.Equal("1211", verify.Drifts[0].Code)
	suite.True(dec("450").Equal(verify.Drifts[0].Computed))

	report, err := suite.svc.Account.RebuildAll(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.True(report.Applied)
	suite.Len(report.Drifts, 1)
	suite.assertSameBalances(incremental, suite.snapshot())

	again, err := suite.svc.Maintenance.RebuildAllBalances(suite.ctx, testUser)
	suite.Require().NoError(err)
	suite.Empty(again.Drifts)
}

func (suite *AccountServiceTestSuite) TestParentCycleTerminates() {
	a, err := suite.svc.Account.GetOrCreate(suite.ctx, domain.AccountSpec{Code: "7000", Name: "Loop A", AccountType: domain.Asset}, testUser)
	suite.Require().NoError(err)
	b, err := suite.svc.Account.GetOrCreate(suite.ctx, domain.AccountSpec{Code: "7000-1", Name: "Loop B", AccountType: domain.Asset, ParentCode: "7000"}, testUser)
	suite.Require().NoError(err)

	a.ParentAccountID = &b.AccountID
	suite.Require().NoError(suite.store.UpdateAccount(suite.ctx, *a))

	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, suite.newEntry("Into the loop",
		suite.line("7000-1", "50", true),
		suite.line("3100", "50", false),
	), testUser)
	suite.Require().NoError(err)
	suite.assertCached("7000-1", "50")
	suite.assertCached("7000", "50")

	rollup, err := suite.svc.Account.RollupBalance(suite.ctx, a.AccountID)
	suite.Require().NoError(err)
	suite.True(dec("50").Equal(rollup))

	descendants, err := suite.svc.Account.Descendants(suite.ctx, a.AccountID)
	suite.Require().NoError(err)
	suite.Len(descendants, 1)

	tree, err := suite.svc.Account.AccountTree(suite.ctx)
	suite.Require().NoError(err)
	suite.NotEmpty(tree)

	_, err = suite.svc.Account.RebuildAll(suite.ctx, testUser)
	suite.NoError(err)
}

func (suite *AccountServiceTestSuite) TestAccountTree() {
	tree, err := suite.svc.Account.AccountTree(suite.ctx)
	suite.Require().NoError(err)

	codes := make([]string, 0, len(tree))
	for _, root := range tree {
		codes = append(codes, root.Code)
	}
	suite.Equal([]string{"1000", "2000", "3000", "4000", "5000"}, codes)

	assets := tree[0]
	suite.Require().Len(assets.Children, 2)
	suite.Equal("1200", assets.Children[0].Code)
	suite.Equal("1300", assets.Children[1].Code)
}

func (suite *AccountServiceTestSuite) TestDeactivatedAccountRejectsLines() {
	petty, err := suite.svc.Account.GetOrCreate(suite.ctx, domain.AccountSpec{Code: "1212", Name: "Petty Cash", AccountType: domain.Asset, ParentCode: "1200"}, testUser)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.svc.Account.DeactivateAccount(suite.ctx, petty.AccountID, testUser))

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("Top up",
		suite.line("1212", "10", true),
		suite.line("1211", "10", false),
	), testUser)
	suite.ErrorIs(err, services.ErrInactiveAccount)
}

func (suite *AccountServiceTestSuite) TestRebuildMatchesIncrementalInAnyOrder() {
	entries := []func() domain.NewEntry{
		func() domain.NewEntry {
			return suite.newEntry("Capital", suite.line("1211", "1000", true), suite.line("3100", "1000", false))
		},
		func() domain.NewEntry {
			return suite.newEntry("Rent", suite.line("5200", "150", true), suite.line("1211", "150", false))
		},
		func() domain.NewEntry {
			return suite.newEntry("Advance", suite.line("1300", "200", true), suite.line("1211", "200", false))
		},
		func() domain.NewEntry {
			return suite.newEntry("Supplies on credit",
				suite.line("5400", "40", true),
				suite.line("5900", "15.50", true),
				suite.line("2100", "55.50", false),
			)
		},
	}
	orders := []struct {
		name  string
		order []int
	}{
		{"in sequence", []int{0, 1, 2, 3}},
		{"reversed", []int{3, 2, 1, 0}},
		{"interleaved", []int{2, 0, 3, 1}},
		{"expenses first", []int{1, 3, 0, 2}},
	}

	var first map[string]decimal.Decimal
	for _, tc := range orders {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			for _, i := range tc.order {
				_, err := suite.svc.Journal.CreateAndPost(suite.ctx, entries[i](), testUser)
				suite.Require().NoError(err)
			}
			incremental := suite.snapshot()

			report, err := suite.svc.Account.RebuildAll(suite.ctx, testUser)
			suite.Require().NoError(err)
			suite.Empty(report.Drifts)
			suite.assertSameBalances(incremental, suite.snapshot())

			if first == nil {
				first = incremental
				return
			}
			suite.assertSameBalances(first, incremental)
		})
	}
	suite.assertCached("1000", "850")
}

func (suite *AccountServiceTestSuite) TestAttachParentsMovesRollup() {
	for _, spec := range []domain.AccountSpec{
		{Code: "600", Name: "Legacy", AccountType: domain.Expense},
		{Code: "6000", Name: "Legacy child", AccountType: domain.Expense},
		{Code: "6000-01", Name: "Legacy grandchild", AccountType: domain.Expense},
	} {
		_, err := suite.svc.Account.GetOrCreate(suite.ctx, spec, testUser)
		suite.Require().NoError(err)
	}
	_, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.newEntry("Legacy spend",
		suite.line("6000-01", "70", true),
		suite.line("6000", "30", true),
		suite.line("1211", "100", false),
	), testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Maintenance.AttachParents(suite.ctx, true, testUser)
	suite.Require().NoError(err)
	suite.assertCached("600", "0")

	attached, err := suite.svc.Maintenance.AttachParents(suite.ctx, false, testUser)
	suite.Require().NoError(err)
	suite.Len(attached, 2)

	suite.assertCached("6000-01", "70")
	suite.assertCached("6000", "100")
	suite.assertCached("600", "100")

	verify, err := suite.svc.Maintenance.VerifyBalances(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(verify.Drifts)
}

func (suite *AccountServiceTestSuite) TestAttachParents() {
	for _, spec := range []domain.AccountSpec{
		{Code: "600", Name: "Legacy", AccountType: domain.Expense},
		{Code: "6000", Name: "Legacy child", AccountType: domain.Expense},
		{Code: "6000-01", Name: "Legacy grandchild", AccountType: domain.Expense},
		{Code: "6001", Name: "Legacy sibling", AccountType: domain.Expense},
	} {
		_, err := suite.svc.Account.GetOrCreate(suite.ctx, spec, testUser)
		suite.Require().NoError(err)
	}

	preview, err := suite.svc.Maintenance.AttachParents(suite.ctx, true, testUser)
	suite.Require().NoError(err)
	suite.Len(preview, 3)
	suite.False(suite.account("6000-01").HasParent(), "dry run must not write")

	attached, err := suite.svc.Maintenance.AttachParents(suite.ctx, false, testUser)
	suite.Require().NoError(err)
	suite.ElementsMatch(preview, attached)

	suite.Equal(suite.account("6000").AccountID, *suite.account("6000-01").ParentAccountID)
	suite.Equal(suite.account("600").AccountID, *suite.account("6000").ParentAccountID)
	suite.Equal(suite.account("600").AccountID, *suite.account("6001").ParentAccountID)
	suite.False(suite.account("600").HasParent())

	again, err := suite.svc.Maintenance.AttachParents(suite.ctx, false, testUser)
	suite.Require().NoError(err)
	suite.Empty(again)
}
