package commands_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/commands"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/institute_ledger/internal/core/ports/services"
	"github.com/SscSPs/institute_ledger/internal/core/services"
	"github.com/SscSPs/institute_ledger/internal/platform/config"
	"github.com/SscSPs/institute_ledger/internal/repositories/memory"
)

const operator = "user-ops"

type CommandsTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (suite *CommandsTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.svc = services.NewServiceContainer(&config.Config{SystemActorID: "user-system"}, suite.store.Provider())
}

func (suite *CommandsTestSuite) run(args ...string) (string, error) {
	open := func(context.Context) (*portssvc.ServiceContainer, func(), error) {
		return suite.svc, func() {}, nil
	}
	cmd := commands.NewRootCommand(open, operator)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(suite.ctx)
	return out.String(), err
}

func (suite *CommandsTestSuite) TestSetupChartIsIdempotent() {
	out, err := suite.run("setup-chart")
	suite.Require().NoError(err)
	suite.NotContains(out, "created 0 accounts")

	cash, err := suite.svc.Account.GetAccountByCode(suite.ctx, "1211")
	suite.Require().NoError(err)
	suite.Equal(operator, cash.CreatedBy)

	out, err = suite.run("setup-chart")
	suite.Require().NoError(err)
	suite.Contains(out, "created 0 accounts")
}

func (suite *CommandsTestSuite) TestVerifyFailsOnDriftUntilRebuilt() {
	_, err := suite.run("setup-chart")
	suite.Require().NoError(err)

	_, err = suite.run("verify-balances")
	suite.Require().NoError(err)

	cash, err := suite.svc.Account.GetAccountByCode(suite.ctx, "1211")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SetAccountBalances(suite.ctx,
		map[string]decimal.Decimal{cash.AccountID: decimal.NewFromInt(99)}, operator, time.Now()))

	out, err := suite.run("verify-balances")
	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.Contains(out, "1211")

	_, err = suite.run("rebuild-balances")
	suite.Require().NoError(err)

	_, err = suite.run("verify-balances")
	suite.NoError(err)
}

func (suite *CommandsTestSuite) TestAttachParentsDryRun() {
	_, err := suite.run("setup-chart")
	suite.Require().NoError(err)

	now := time.Now()
	orphan := domain.Account{
		AccountID:   "acc-orphan",
		Code:        "1211-PETTY",
		Name:        "Petty cash",
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: operator, LastUpdatedAt: now, LastUpdatedBy: operator},
	}
	suite.Require().NoError(suite.store.SaveAccount(suite.ctx, orphan))

	out, err := suite.run("attach-parents", "--dry-run")
	suite.Require().NoError(err)
	suite.Contains(out, "would attach 1 accounts")
	reloaded, err := suite.svc.Account.GetAccountByID(suite.ctx, orphan.AccountID)
	suite.Require().NoError(err)
	suite.Nil(reloaded.ParentAccountID)

	_, err = suite.run("attach-parents")
	suite.Require().NoError(err)
	reloaded, err = suite.svc.Account.GetAccountByID(suite.ctx, orphan.AccountID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.ParentAccountID)
}

func (suite *CommandsTestSuite) TestReconcileJSON() {
	out, err := suite.run("reconcile", "--json")
	suite.Require().NoError(err)
	suite.Contains(out, `"enrollmentsChecked": 0`)
}
