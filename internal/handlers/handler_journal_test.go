package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	handlerSuite
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}

func (suite *JournalHandlerTestSuite) entryRequest(post bool) gin.H {
	return gin.H{
		"date":        "2025-01-05T00:00:00Z",
		"description": "Owner capital",
		"post":        post,
		"lines": []gin.H{
			{"accountID": "cash", "amount": "500", "isDebit": true},
			{"accountID": "capital", "amount": "500", "isDebit": false},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreateDraft() {
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "JE-000001", EntryType: domain.EntryManual}
	suite.mockJournalService.On("CreateEntry", mock.Anything,
		mock.MatchedBy(func(e domain.NewEntry) bool {
			return e.EntryType == domain.EntryManual && len(e.Lines) == 2 && e.Lines[0].IsDebit && !e.Lines[1].IsDebit
		}), suite.userID,
	).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", suite.entryRequest(false))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("JE-000001", resp.Reference)
	suite.False(resp.IsPosted)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestCreateAndPost() {
	posted := time.Now()
	entry := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "JE-000002", IsPosted: true, PostedAt: &posted}
	suite.mockJournalService.On("CreateAndPost", mock.Anything, mock.AnythingOfType("domain.NewEntry"), suite.userID).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", suite.entryRequest(true))

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestCreateUnbalanced() {
	suite.mockJournalService.On("CreateAndPost", mock.Anything, mock.Anything, suite.userID).Return(nil, services.ErrUnbalancedEntry).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", suite.entryRequest(true))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not balance")
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestCreateRejectsZeroAmountLine() {
	req := suite.entryRequest(false)
	req["lines"] = []gin.H{
		{"accountID": "cash", "amount": "0", "isDebit": true},
		{"accountID": "capital", "amount": "0", "isDebit": false},
	}

	w := suite.do(http.MethodPost, "/api/v1/journals", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostTwiceConflicts() {
	suite.mockJournalService.On("PostEntry", mock.Anything, "e1", suite.userID).Return(nil, services.ErrAlreadyPosted).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/e1/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestGetEntryWithLines() {
	entry := &domain.JournalEntry{EntryID: "e1", Reference: "JE-000001", TotalAmount: decimal.NewFromInt(500)}
	txns := []domain.Transaction{
		{TransactionID: "t1", EntryID: "e1", AccountID: "cash", Amount: decimal.NewFromInt(500), IsDebit: true},
		{TransactionID: "t2", EntryID: "e1", AccountID: "capital", Amount: decimal.NewFromInt(500)},
	}
	suite.mockJournalService.On("GetEntry", mock.Anything, "e1").Return(entry, txns, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals/e1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GetJournalEntryResponse
	suite.decode(w, &resp)
	suite.Equal("e1", resp.Entry.EntryID)
	suite.Require().Len(resp.Transactions, 2)
	suite.Equal("DEBIT", resp.Transactions[0].Type)
	suite.Equal("CREDIT", resp.Transactions[1].Type)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestListEntriesFilters() {
	suite.mockJournalService.On("ListEntries", mock.Anything,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == 20 && p.EntryType != nil && *p.EntryType == "PAYMENT" && p.Posted != nil && *p.Posted
		}),
	).Return(&dto.ListJournalEntriesResponse{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?entryType=PAYMENT&posted=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestReverseWithoutBody() {
	reversal := &domain.JournalEntry{EntryID: "e2", Reference: "JE-000003", IsPosted: true}
	suite.mockJournalService.On("ReverseEntry", mock.Anything, "e1", suite.userID, (*string)(nil)).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/e1/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.assertMocks()
}

func (suite *JournalHandlerTestSuite) TestReverseTwiceConflicts() {
	suite.mockJournalService.On("ReverseEntry", mock.Anything, "e1", suite.userID,
		mock.MatchedBy(func(d *string) bool { return d != nil && *d == "typo" }),
	).Return(nil, services.ErrAlreadyReversed).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/e1/reverse", gin.H{"description": "typo"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.assertMocks()
}
