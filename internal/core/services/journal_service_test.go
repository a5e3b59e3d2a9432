package services_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/dto"
	"github.com/SscSPs/institute_ledger/internal/platform/metrics"
	"github.com/SscSPs/institute_ledger/internal/repositories/memory"
)

type JournalServiceTestSuite struct {
	ledgerSuite
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) contribution(amount string) domain.NewEntry {
	return suite.newEntry("Owner contribution",
		suite.line("1211", amount, true),
		suite.line("3100", amount, false),
	)
}

func (suite *JournalServiceTestSuite) TestCreateAndPost() {
	entry, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.contribution("250.50"), testUser)
	suite.Require().NoError(err)

	suite.Regexp(regexp.MustCompile(`^JE-\d{6}$`), entry.Reference)
	suite.True(entry.IsPosted)
	suite.Require().NotNil(entry.PostedBy)
	suite.Equal(testUser, *entry.PostedBy)
	suite.Equal(testUser, entry.CreatedBy)
	suite.True(dec("250.50").Equal(entry.TotalAmount))

	got, txns, err := suite.svc.Journal.GetEntry(suite.ctx, entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(entry.Reference, got.Reference)
	suite.Len(txns, 2)

	next, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.contribution("1"), testUser)
	suite.Require().NoError(err)
	suite.NotEqual(entry.Reference, next.Reference)
}

func (suite *JournalServiceTestSuite) TestExplicitReferenceMustBeUnique() {
	entry := suite.contribution("10")
	entry.Reference = "OPENING-2025"
	_, err := suite.svc.Journal.CreateAndPost(suite.ctx, entry, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, entry, testUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.assertCached("1211", "10")
}

func (suite *JournalServiceTestSuite) TestUnbalancedPostLeavesBalancesUnchanged() {
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("Typo",
		suite.line("1211", "100", true),
		suite.line("3100", "90", false),
	), testUser)
	suite.Require().NoError(err)
	suite.False(draft.IsPosted)

	_, err = suite.svc.Journal.PostEntry(suite.ctx, draft.EntryID, testUser)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.assertCached("1211", "0")
	suite.assertCached("3100", "0")
	got, _, err := suite.svc.Journal.GetEntry(suite.ctx, draft.EntryID)
	suite.Require().NoError(err)
	suite.False(got.IsPosted)

	_, err = suite.svc.Journal.CreateAndPost(suite.ctx, suite.newEntry("Typo again",
		suite.line("1211", "100", true),
		suite.line("3100", "90", false),
	), testUser)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.Equal(1, suite.countEntries(domain.EntryManual), "failed create-and-post must leave nothing behind")
}

func (suite *JournalServiceTestSuite) TestEntryValidation() {
	_, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("One line",
		suite.line("1211", "10", true),
	), testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("",
		suite.line("1211", "10", true),
		suite.line("3100", "10", false),
	), testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("Sub-cent",
		suite.line("1211", "0.001", true),
		suite.line("3100", "0.001", false),
	), testUser)
	suite.ErrorIs(err, services.ErrInvalidAmount)

	_, err = suite.svc.Journal.CreateEntry(suite.ctx, suite.newEntry("Ghost",
		domain.EntryLine{AccountID: "missing", Amount: dec("10"), IsDebit: true},
		suite.line("3100", "10", false),
	), testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestDoublePostIsConflict() {
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.contribution("40"), testUser)
	suite.Require().NoError(err)
	_, err = suite.svc.Journal.PostEntry(suite.ctx, draft.EntryID, testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.PostEntry(suite.ctx, draft.EntryID, testUser)
	suite.ErrorIs(err, services.ErrAlreadyPosted)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.assertCached("1211", "40")
}

func (suite *JournalServiceTestSuite) TestReverseRestoresBalances() {
	before := suite.snapshot()
	original, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.contribution("250"), testUser)
	suite.Require().NoError(err)
	suite.assertCached("1000", "250")

	reversal, err := suite.svc.Journal.ReverseEntry(suite.ctx, original.EntryID, testUser, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.EntryAdjustment, reversal.EntryType)
	suite.Equal("Reversal of "+original.Reference, reversal.Description)
	suite.Require().NotNil(reversal.ReversalOfID)
	suite.Equal(original.EntryID, *reversal.ReversalOfID)
	suite.assertSameBalances(before, suite.snapshot())

	reloaded, _, err := suite.svc.Journal.GetEntry(suite.ctx, original.EntryID)
	suite.Require().NoError(err)
	suite.True(reloaded.IsPosted)
	suite.Require().NotNil(reloaded.ReversedByID)
	suite.Equal(reversal.EntryID, *reloaded.ReversedByID)

	_, err = suite.svc.Journal.ReverseEntry(suite.ctx, original.EntryID, testUser, nil)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
}

func (suite *JournalServiceTestSuite) TestReverseDraftIsRejected() {
	draft, err := suite.svc.Journal.CreateEntry(suite.ctx, suite.contribution("5"), testUser)
	suite.Require().NoError(err)

	_, err = suite.svc.Journal.ReverseEntry(suite.ctx, draft.EntryID, testUser, nil)
	suite.ErrorIs(err, services.ErrEntryNotPosted)

	_, err = suite.svc.Journal.ReverseEntry(suite.ctx, "missing", testUser, nil)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestAccountLedgerRunningBalance() {
	for i, line := range []struct {
		amount string
		debit  bool
	}{{"100", true}, {"50", false}, {"25", true}} {
		entry := suite.newEntry("Cash movement",
			suite.line("1211", line.amount, line.debit),
			suite.line("3100", line.amount, !line.debit),
		)
		entry.Date = time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC)
		_, err := suite.svc.Journal.CreateAndPost(suite.ctx, entry, testUser)
		suite.Require().NoError(err)
	}
	cash := suite.account("1211")

	page, err := suite.svc.Journal.AccountLedger(suite.ctx, cash.AccountID, dto.LedgerParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(page.Lines, 2)
	suite.True(dec("100").Equal(page.Lines[0].RunningBalance))
	suite.True(dec("50").Equal(page.Lines[1].RunningBalance))
	suite.True(dec("50").Equal(page.Lines[1].Credit))
	suite.Require().NotNil(page.NextToken)

	rest, err := suite.svc.Journal.AccountLedger(suite.ctx, cash.AccountID, dto.LedgerParams{Limit: 2, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Require().Len(rest.Lines, 1)
	suite.True(dec("75").Equal(rest.Lines[0].RunningBalance))
	suite.Nil(rest.NextToken)

	bad := "not-a-token"
	_, err = suite.svc.Journal.AccountLedger(suite.ctx, cash.AccountID, dto.LedgerParams{NextToken: &bad})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestListEntriesPagination() {
	for i := 1; i <= 3; i++ {
		entry := suite.contribution("1")
		entry.Date = time.Date(2025, 2, i, 0, 0, 0, 0, time.UTC)
		_, err := suite.svc.Journal.CreateAndPost(suite.ctx, entry, testUser)
		suite.Require().NoError(err)
	}

	first, err := suite.svc.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(first.Entries, 2)
	suite.Equal(3, first.Entries[0].Date.Day())
	suite.Require().NotNil(first.NextToken)

	second, err := suite.svc.Journal.ListEntries(suite.ctx, dto.ListJournalEntriesParams{Limit: 2, NextToken: first.NextToken})
	suite.Require().NoError(err)
	suite.Require().Len(second.Entries, 1)
	suite.Equal(1, second.Entries[0].Date.Day())
	suite.Nil(second.NextToken)
}

func (suite *JournalServiceTestSuite) TestNoActorIsRejected() {
	svc := newContainer(memory.NewStore(), "")
	_, err := svc.Journal.CreateEntry(suite.ctx, suite.contribution("1"), "")
	suite.ErrorIs(err, services.ErrNoActor)
}

func (suite *JournalServiceTestSuite) TestSystemActorFallback() {
	entry, err := suite.svc.Journal.CreateAndPost(suite.ctx, suite.contribution("1"), "")
	suite.Require().NoError(err)
	suite.Equal(systemActor, entry.CreatedBy)
	suite.Equal(systemActor, *entry.PostedBy)
}

func (suite *JournalServiceTestSuite) TestPostingMetrics() {
	reg := prometheus.NewRegistry()
	svc := newContainer(suite.store, systemActor, services.WithMetrics(metrics.NewLedger(reg)))

	entry, err := svc.Journal.CreateAndPost(suite.ctx, suite.contribution("3"), testUser)
	suite.Require().NoError(err)
	_, err = svc.Journal.ReverseEntry(suite.ctx, entry.EntryID, testUser, nil)
	suite.Require().NoError(err)
	_, err = svc.Journal.CreateAndPost(suite.ctx, suite.newEntry("Bad",
		suite.line("1211", "3", true),
		suite.line("3100", "2", false),
	), testUser)
	suite.Require().Error(err)

	count, err := testutil.GatherAndCount(reg, "ledger_entries_posted_total", "ledger_entries_reversed_total", "ledger_posting_failures_total")
	suite.Require().NoError(err)
	suite.Equal(4, count)
}

func TestActorResolver(t *testing.T) {
	resolver := services.NewActorResolver("system")
	got, err := resolver.Resolve("", "registrar")
	if err != nil || got != "registrar" {
		t.Fatalf("Resolve() = %q, %v; want registrar", got, err)
	}
	got, err = resolver.Resolve("", "")
	if err != nil || got != "system" {
		t.Fatalf("Resolve() = %q, %v; want system", got, err)
	}
	if _, err := services.NewActorResolver("").Resolve(""); err == nil {
		t.Fatal("Resolve() without any actor should fail")
	}
}
