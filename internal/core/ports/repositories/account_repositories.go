package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique chart code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListChildren retrieves the direct children of an account.
	ListChildren(ctx context.Context, parentID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when the code exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates names, parent, flags and active status. Balance is untouched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountBalances overwrites cached balances, used by the full rebuild.
	SetAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within the
	// transaction carried by ctx. Rows are locked in ascending id order.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalances adds each delta to the cached balance of its account.
	UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
