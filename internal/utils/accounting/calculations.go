package accounting

import (
	"fmt"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to an amount based on account type and side.
// It is used by both the incremental posting path and the full rebuild so the two agree.
func SignedAmount(amount decimal.Decimal, isDebit bool, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	return amount, nil
}

// CalculateSignedAmount is SignedAmount for a stored transaction line.
func CalculateSignedAmount(txn domain.Transaction, accountType domain.AccountType) (decimal.Decimal, error) {
	signed, err := SignedAmount(txn.Amount, txn.IsDebit, accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("transaction %s: %w", txn.TransactionID, err)
	}
	return signed, nil
}

// Totals sums the debit and credit sides of a set of lines.
func Totals(transactions []domain.Transaction) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, txn := range transactions {
		if txn.IsDebit {
			debits = debits.Add(txn.Amount)
		} else {
			credits = credits.Add(txn.Amount)
		}
	}
	return debits, credits
}

// ValidateEntryBalance checks that an entry has at least two lines, every amount
// is at least the minimum, and debits equal credits.
func ValidateEntryBalance(transactions []domain.Transaction) error {
	if len(transactions) < 2 {
		return fmt.Errorf("journal entry must have at least two transaction lines")
	}

	for _, txn := range transactions {
		if txn.Amount.LessThan(domain.MinimumAmount) {
			return fmt.Errorf("transaction amount must be at least %s (got %s on account %s)",
				domain.MinimumAmount, txn.Amount, txn.AccountID)
		}
	}

	debits, credits := Totals(transactions)
	if !debits.Equal(credits) {
		return fmt.Errorf("debits %s do not equal credits %s", debits.String(), credits.String())
	}

	return nil
}
