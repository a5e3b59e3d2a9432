package accounting_test

import (
	"testing"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/SscSPs/institute_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(account string, amount int64, debit bool) domain.Transaction {
	return domain.Transaction{AccountID: account, Amount: decimal.NewFromInt(amount), IsDebit: debit}
}

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name        string
		isDebit     bool
		accountType domain.AccountType
		want        int64
	}{
		{"debit asset", true, domain.Asset, 100},
		{"credit asset", false, domain.Asset, -100},
		{"debit expense", true, domain.Expense, 100},
		{"debit liability", true, domain.Liability, -100},
		{"credit revenue", false, domain.Revenue, 100},
		{"credit equity", false, domain.Equity, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(hundred, tt.isDebit, tt.accountType)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got))
		})
	}

	_, err := accounting.SignedAmount(hundred, true, domain.AccountType("INCOME"))
	assert.Error(t, err)
}

func TestValidateEntryBalance(t *testing.T) {
	assert.NoError(t, accounting.ValidateEntryBalance([]domain.Transaction{
		line("a", 500, true), line("b", 300, false), line("c", 200, false),
	}))

	assert.Error(t, accounting.ValidateEntryBalance([]domain.Transaction{line("a", 500, true)}))
	assert.Error(t, accounting.ValidateEntryBalance([]domain.Transaction{
		line("a", 500, true), line("b", 400, false),
	}))
	assert.Error(t, accounting.ValidateEntryBalance([]domain.Transaction{
		line("a", 0, true), line("b", 0, false),
	}))
}
