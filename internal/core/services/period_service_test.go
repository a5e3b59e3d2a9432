package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
)

type PeriodServiceTestSuite struct {
	ledgerSuite
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func (suite *PeriodServiceTestSuite) january() *domain.AccountingPeriod {
	period, err := suite.svc.Period.CreatePeriod(suite.ctx, dto.CreatePeriodRequest{
		Name:      "January 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}, testUser)
	suite.Require().NoError(err)
	return period
}

func (suite *PeriodServiceTestSuite) expense(code, amount string, date time.Time) {
	entry := suite.newEntry("Expense "+code, suite.line(code, amount, true), suite.line("1211", amount, false))
	entry.Date = date
	_, err := suite.svc.Journal.CreateAndPost(suite.ctx, entry, testUser)
	suite.Require().NoError(err)
}

func (suite *PeriodServiceTestSuite) TestCreatePeriodRejectsReversedDates() {
	_, err := suite.svc.Period.CreatePeriod(suite.ctx, dto.CreatePeriodRequest{
		Name:      "Backwards",
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestCurrentPeriod() {
	period := suite.january()

	got, err := suite.svc.Period.CurrentPeriod(suite.ctx, time.Date(2025, 1, 31, 18, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Equal(period.PeriodID, got.PeriodID)

	_, err = suite.svc.Period.CurrentPeriod(suite.ctx, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PeriodServiceTestSuite) TestClosedPeriodBlocksPosting() {
	period := suite.january()
	suite.expense("5200", "150", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))

	closed, err := suite.svc.Period.ClosePeriod(suite.ctx, period.PeriodID, testUser)
	suite.Require().NoError(err)
	suite.True(closed.IsClosed)
	suite.Require().NotNil(closed.ClosedBy)
	suite.Equal(testUser, *closed.ClosedBy)

	_, err = suite.svc.Period.ClosePeriod(suite.ctx, period.PeriodID, testUser)
	suite.ErrorIs(err, services.ErrPeriodAlreadyClosed)
	suite.ErrorIs(err, apperrors.ErrConflict)

	before := suite.snapshot()
	late := suite.newEntry("Late rent", suite.line("5200", "20", true), suite.line("1211", "20", false))
	late.Date = time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, late, testUser)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.assertSameBalances(before, suite.snapshot())

	// A draft created earlier cannot be posted either.
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, late, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.Journal.PostEntry(suite.ctx, draft.EntryID, testUser)
	suite.ErrorIs(err, services.ErrPeriodClosed)

	suite.expense("5200", "20", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	suite.assertCached("5200", "170")
}

func (suite *PeriodServiceTestSuite) TestBudgetRollsUpSubtree() {
	period := suite.january()
	suite.expense("5200", "150", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	suite.expense("5400", "40", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
	suite.expense("5400", "100", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC))

	report, err := suite.svc.Period.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		AccountID:      suite.account("5000").AccountID,
		PeriodID:       period.PeriodID,
		BudgetedAmount: dec("150"),
	}, testUser)
	suite.Require().NoError(err)
	suite.Equal("5000", report.AccountCode)
	suite.Equal("January 2025", report.PeriodName)
	suite.True(dec("190").Equal(report.ActualAmount), "actual %s", report.ActualAmount)
	suite.True(dec("40").Equal(report.Variance))
	suite.True(dec("26.67").Equal(report.VariancePercent), "percent %s", report.VariancePercent)

	unbudgeted, err := suite.svc.Period.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		AccountID: suite.account("5400").AccountID,
		PeriodID:  period.PeriodID,
	}, testUser)
	suite.Require().NoError(err)
	suite.True(dec("40").Equal(unbudgeted.ActualAmount))
	suite.True(unbudgeted.VariancePercent.IsZero())

	_, err = suite.svc.Period.CreateBudget(suite.ctx, dto.CreateBudgetRequest{
		AccountID:      suite.account("5000").AccountID,
		PeriodID:       period.PeriodID,
		BudgetedAmount: dec("10"),
	}, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	reports, err := suite.svc.Period.ListBudgets(suite.ctx, period.PeriodID)
	suite.Require().NoError(err)
	suite.Len(reports, 2)
}

func (suite *PeriodServiceTestSuite) TestBudgetNeedsKnownAccountAndPeriod() {
	period := suite.january()
	_, err := suite.svc.Period.CreateBudget(suite.ctx, dto.CreateBudgetRequest{AccountID: "missing", PeriodID: period.PeriodID}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Period.CreateBudget(suite.ctx, dto.CreateBudgetRequest{AccountID: suite.account("5000").AccountID, PeriodID: "missing"}, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Period.ListBudgets(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PeriodServiceTestSuite) TestCostCenterTagging() {
	_, err := suite.svc.CostCenter.CreateCostCenter(suite.ctx, dto.CreateCostCenterRequest{Code: "LANG", Name: "Languages"}, testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.CostCenter.CreateCostCenter(suite.ctx, dto.CreateCostCenterRequest{Code: "LANG", Name: "Again"}, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	tagged := func(center string) domain.NewEntry {
		debit := suite.line("5400", "12", true)
		debit.CostCenter = center
		return suite.newEntry("Workbooks", debit, suite.line("1211", "12", false))
	}

	entry, err := suite.svc.Journal.CreateAndPost(suite.ctx, tagged("LANG"), testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, tagged("ART"), testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	center, err := suite.svc.CostCenter.DeactivateCostCenter(suite.ctx, "LANG", testUser)
	suite.Require().NoError(err)
	suite.False(center.IsActive)

	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, tagged("LANG"), testUser)
	suite.ErrorIs(err, services.ErrInactiveCostCenter)

	active, err := suite.svc.CostCenter.ListCostCenters(suite.ctx, true)
	suite.Require().NoError(err)
	suite.Empty(active)

	// The reversal copies the retired tag.
	reversal, err := suite.svc.Journal.ReverseEntry(suite.ctx, entry.EntryID, testUser, nil)
	suite.Require().NoError(err)
	_, txns, err := suite.svc.Journal.GetEntry(suite.ctx, reversal.EntryID)
	suite.Require().NoError(err)
	for _, txn := range txns {
		if txn.AccountID == suite.account("5400").AccountID {
			suite.Equal("LANG", txn.CostCenter)
		}
	}
	suite.assertCached("5400", "0")
}

func (suite *PeriodServiceTestSuite) TestEnrollWithDiscountRule() {
	rule, err := suite.svc.DiscountRule.CreateDiscountRule(suite.ctx, dto.CreateDiscountRuleRequest{
		Reason:          "Sibling",
		DiscountPercent: dec("10"),
		DiscountAmount:  dec("50"),
	}, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.DiscountRule.CreateDiscountRule(suite.ctx, dto.CreateDiscountRuleRequest{Reason: "Sibling"}, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	req := dto.CreateEnrollmentRequest{
		Student:        student42,
		Course:         course3,
		EnrollmentDate: &date,
		TotalAmount:    dec("1000"),
		DiscountRuleID: &rule.RuleID,
	}

	mixed := req
	mixed.DiscountPercent = dec("5")
	_, err = suite.svc.Enrollment.CreateEnrollment(suite.ctx, mixed, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	enr, err := suite.svc.Enrollment.CreateEnrollment(suite.ctx, req, testUser)
	suite.Require().NoError(err)
	suite.True(dec("850").Equal(enr.NetAmount), "net %s", enr.NetAmount)
	suite.Equal("Sibling", enr.DiscountReason)
	ar, err := suite.svc.Enrollment.ARBalance(suite.ctx, enr.EnrollmentID)
	suite.Require().NoError(err)
	suite.True(dec("850").Equal(ar))

	_, err = suite.svc.DiscountRule.DeactivateDiscountRule(suite.ctx, rule.RuleID, testUser)
	suite.Require().NoError(err)
	other := req
	other.Student = dto.StudentRequest{ID: 43, FullName: "Omar Haddad", RegistrarID: "user-registrar"}
	_, err = suite.svc.Enrollment.CreateEnrollment(suite.ctx, other, testUser)
	suite.ErrorIs(err, services.ErrInactiveDiscount)

	missing := "no-such-rule"
	other.DiscountRuleID = &missing
	_, err = suite.svc.Enrollment.CreateEnrollment(suite.ctx, other, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
