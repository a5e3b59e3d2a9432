package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ControlHandlerTestSuite struct {
	handlerSuite
}

func TestControlHandler(t *testing.T) {
	suite.Run(t, new(ControlHandlerTestSuite))
}

func (suite *ControlHandlerTestSuite) TestClosePeriod() {
	closedAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	period := &domain.AccountingPeriod{PeriodID: "p-1", Name: "January 2025", IsClosed: true, ClosedAt: &closedAt, ClosedBy: &suite.userID}
	suite.mockPeriodService.On("ClosePeriod", mock.Anything, "p-1", suite.userID).Return(period, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/p-1/close", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.AccountingPeriod
	suite.decode(w, &resp)
	suite.True(resp.IsClosed)
	suite.Equal(suite.userID, *resp.ClosedBy)
	suite.assertMocks()
}

func (suite *ControlHandlerTestSuite) TestClosePeriodTwice() {
	suite.mockPeriodService.On("ClosePeriod", mock.Anything, "p-1", suite.userID).
		Return(nil, fmt.Errorf("%w: January 2025", services.ErrPeriodAlreadyClosed)).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/p-1/close", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}

func (suite *ControlHandlerTestSuite) TestCurrentPeriodParsesDate() {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.mockPeriodService.On("CurrentPeriod", mock.Anything, day).
		Return(&domain.AccountingPeriod{PeriodID: "p-1", Name: "January 2025"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/current?date=2025-01-15", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.assertMocks()
}

func (suite *ControlHandlerTestSuite) TestCreateBudget() {
	report := &domain.BudgetReport{
		Budget:       domain.Budget{BudgetID: "b-1", AccountID: "acc-rent", PeriodID: "p-1", BudgetedAmount: decimal.NewFromInt(500)},
		ActualAmount: decimal.NewFromInt(600),
		Variance:     decimal.NewFromInt(100),
	}
	suite.mockPeriodService.On("CreateBudget", mock.Anything,
		mock.MatchedBy(func(r dto.CreateBudgetRequest) bool {
			return r.AccountID == "acc-rent" && r.BudgetedAmount.Equal(decimal.NewFromInt(500))
		}), suite.userID,
	).Return(report, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/budgets", gin.H{
		"accountID":      "acc-rent",
		"periodID":       "p-1",
		"budgetedAmount": "500",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.BudgetReport
	suite.decode(w, &resp)
	suite.True(decimal.NewFromInt(100).Equal(resp.Variance))
	suite.assertMocks()
}

func (suite *ControlHandlerTestSuite) TestCreateBudgetRejectsNegativeAmount() {
	w := suite.do(http.MethodPost, "/api/v1/budgets", gin.H{
		"accountID":      "acc-rent",
		"periodID":       "p-1",
		"budgetedAmount": "-1",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPeriodService.AssertNotCalled(suite.T(), "CreateBudget", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ControlHandlerTestSuite) TestCreateCostCenterDuplicate() {
	suite.mockCostCenterService.On("CreateCostCenter", mock.Anything,
		mock.MatchedBy(func(r dto.CreateCostCenterRequest) bool { return r.Code == "LANG" }), suite.userID,
	).Return(nil, fmt.Errorf("%w: cost center LANG already exists", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/cost-centers", gin.H{"code": "LANG", "name": "Languages"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}

func (suite *ControlHandlerTestSuite) TestListActiveDiscountRules() {
	rules := []domain.DiscountRule{{RuleID: "r-1", Reason: "Sibling", DiscountPercent: decimal.NewFromInt(10), IsActive: true}}
	suite.mockDiscountService.On("ListDiscountRules", mock.Anything, true).Return(rules, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/discount-rules?activeOnly=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []domain.DiscountRule
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("Sibling", resp[0].Reason)
	suite.assertMocks()
}
