package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EnrollmentHandlerTestSuite struct {
	handlerSuite
}

func TestEnrollmentHandler(t *testing.T) {
	suite.Run(t, new(EnrollmentHandlerTestSuite))
}

func (suite *EnrollmentHandlerTestSuite) TestCreateEnrollment() {
	enrollment := &domain.Enrollment{EnrollmentID: "enr-1", NetAmount: decimal.NewFromInt(900)}
	suite.mockEnrollmentService.On("CreateEnrollment", mock.Anything,
		mock.MatchedBy(func(r dto.CreateEnrollmentRequest) bool {
			return r.Student.ID == 42 && r.Course.ID == 3 && r.TotalAmount.Equal(decimal.NewFromInt(1000))
		}), suite.userID,
	).Return(enrollment, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/enrollments", gin.H{
		"student":        gin.H{"id": 42, "fullName": "Lina Haddad"},
		"course":         gin.H{"id": 3, "name": "Arabic A1"},
		"totalAmount":    "1000",
		"discountAmount": "100",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.Enrollment
	suite.decode(w, &resp)
	suite.Equal("enr-1", resp.EnrollmentID)
	suite.assertMocks()
}

func (suite *EnrollmentHandlerTestSuite) TestCreateEnrollmentRejectsDiscountAboveHundred() {
	w := suite.do(http.MethodPost, "/api/v1/enrollments", gin.H{
		"student":         gin.H{"id": 42, "fullName": "Lina Haddad"},
		"course":          gin.H{"id": 3, "name": "Arabic A1"},
		"totalAmount":     "1000",
		"discountPercent": "150",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEnrollmentService.AssertNotCalled(suite.T(), "CreateEnrollment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EnrollmentHandlerTestSuite) TestARBalance() {
	opening := "entry-1"
	enrollment := &domain.Enrollment{EnrollmentID: "enr-1", NetAmount: decimal.NewFromInt(1000), OpeningEntryID: &opening}
	suite.mockEnrollmentService.On("GetEnrollment", mock.Anything, "enr-1").Return(enrollment, nil).Once()
	suite.mockEnrollmentService.On("ARBalance", mock.Anything, "enr-1").Return(decimal.NewFromInt(400), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/enrollments/enr-1/ar-balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ARBalanceResponse
	suite.decode(w, &resp)
	suite.True(decimal.NewFromInt(400).Equal(resp.ARBalance))
	suite.True(decimal.NewFromInt(600).Equal(resp.Paid))
	suite.False(resp.Closed)
	suite.assertMocks()
}

func (suite *EnrollmentHandlerTestSuite) TestOpeningEntryAlreadyPosted() {
	suite.mockEnrollmentService.On("PostOpeningEntry", mock.Anything, "enr-1", suite.userID).Return(nil, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/enrollments/enr-1/opening-entry", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.assertMocks()
}

func (suite *EnrollmentHandlerTestSuite) TestWithdraw() {
	refund := decimal.NewFromInt(200)
	withdrawal := &domain.Withdrawal{EnrollmentID: "enr-1", RefundedAmount: refund, WrittenOffAmount: decimal.NewFromInt(400)}
	suite.mockEnrollmentService.On("Withdraw", mock.Anything, "enr-1",
		mock.MatchedBy(func(r dto.WithdrawEnrollmentRequest) bool {
			return r.RefundAmount != nil && r.RefundAmount.Equal(refund) && r.Reason == "moved away"
		}), suite.userID,
	).Return(withdrawal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/enrollments/enr-1/withdraw", gin.H{"refundAmount": "200", "reason": "moved away"})

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.Withdrawal
	suite.decode(w, &resp)
	suite.True(decimal.NewFromInt(400).Equal(resp.WrittenOffAmount))
	suite.assertMocks()
}

func (suite *EnrollmentHandlerTestSuite) TestWithdrawTwiceConflicts() {
	suite.mockEnrollmentService.On("Withdraw", mock.Anything, "enr-1", dto.WithdrawEnrollmentRequest{}, suite.userID).
		Return(nil, services.ErrEnrollmentWithdrawn).Once()

	w := suite.do(http.MethodPost, "/api/v1/enrollments/enr-1/withdraw", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}

func (suite *EnrollmentHandlerTestSuite) TestCompleteFailureIsNotLeaked() {
	suite.mockEnrollmentService.On("CompleteEnrollment", mock.Anything, "enr-1", suite.userID).
		Return(nil, errors.New("pq: connection refused")).Once()

	w := suite.do(http.MethodPost, "/api/v1/enrollments/enr-1/complete", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
	suite.assertMocks()
}

// --- Receipts and advances ---

type PaymentHandlerTestSuite struct {
	handlerSuite
}

func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (suite *PaymentHandlerTestSuite) TestCreateReceipt() {
	enrollmentID := "enr-1"
	receipt := &domain.Receipt{ReceiptID: "r1", ReceiptNumber: "RC-S0042-20250105-001", EnrollmentID: &enrollmentID}
	suite.mockReceiptService.On("CreateReceipt", mock.Anything,
		mock.MatchedBy(func(r dto.CreateReceiptRequest) bool {
			return r.EnrollmentID != nil && *r.EnrollmentID == enrollmentID && r.PaidAmount.Equal(decimal.NewFromInt(600))
		}), suite.userID,
	).Return(receipt, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts", gin.H{
		"enrollmentID": enrollmentID,
		"student":      gin.H{"id": 42, "fullName": "Lina Haddad"},
		"paidAmount":   "600",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.Receipt
	suite.decode(w, &resp)
	suite.Equal("RC-S0042-20250105-001", resp.ReceiptNumber)
	suite.assertMocks()
}

func (suite *PaymentHandlerTestSuite) TestCreateReceiptRequiresPositivePayment() {
	w := suite.do(http.MethodPost, "/api/v1/receipts", gin.H{
		"student":    gin.H{"id": 42, "fullName": "Lina Haddad"},
		"paidAmount": "0",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReceiptService.AssertNotCalled(suite.T(), "CreateReceipt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestCreateReceiptOverpayment() {
	suite.mockReceiptService.On("CreateReceipt", mock.Anything, mock.Anything, suite.userID).Return(nil, services.ErrPaymentExceedsDue).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts", gin.H{
		"enrollmentID": "enr-1",
		"student":      gin.H{"id": 42, "fullName": "Lina Haddad"},
		"paidAmount":   "5000",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "exceeds")
	suite.assertMocks()
}

func (suite *PaymentHandlerTestSuite) TestGetAdvanceIncludesOutstanding() {
	advance := &domain.Advance{AdvanceID: "adv-1", Amount: decimal.NewFromInt(500), RepaidAmount: decimal.NewFromInt(200)}
	repayments := []domain.Repayment{{RepaymentID: "rep-1", AdvanceID: "adv-1", Amount: decimal.NewFromInt(200)}}
	suite.mockAdvanceService.On("GetAdvance", mock.Anything, "adv-1").Return(advance, repayments, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/advances/adv-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AdvanceResponse
	suite.decode(w, &resp)
	suite.True(decimal.NewFromInt(300).Equal(resp.Outstanding))
	suite.Len(resp.Repayments, 1)
	suite.assertMocks()
}

func (suite *PaymentHandlerTestSuite) TestRepaymentBeforeDisbursement() {
	suite.mockAdvanceService.On("CreateRepayment", mock.Anything, "adv-1", mock.AnythingOfType("dto.CreateRepaymentRequest"), suite.userID).
		Return(nil, services.ErrAdvanceNotDisbursed).Once()

	w := suite.do(http.MethodPost, "/api/v1/advances/adv-1/repayments", gin.H{"amount": "50"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}

func (suite *PaymentHandlerTestSuite) TestReverseReceipt() {
	reversal := &domain.JournalEntry{EntryID: "e2", Reference: "JE-000007", IsPosted: true}
	suite.mockReceiptService.On("ReverseReceipt", mock.Anything, "r1", suite.userID, (*string)(nil)).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts/r1/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("JE-000007", resp.Reference)
	suite.assertMocks()
}

func (suite *PaymentHandlerTestSuite) TestReverseReceiptWithoutEntry() {
	suite.mockReceiptService.On("ReverseReceipt", mock.Anything, "r1", suite.userID, mock.Anything).
		Return(nil, services.ErrEntryNotPosted).Once()

	w := suite.do(http.MethodPost, "/api/v1/receipts/r1/reverse", gin.H{"description": "bounced cheque"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}
