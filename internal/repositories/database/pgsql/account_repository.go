package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const accountColumns = `account_id, code, name, name_local, account_type, parent_account_id, is_active,
	is_course_account, course_name, is_student_account, student_name, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err, "query account %v", arg)
	}
	modelAcc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError(err, "account %v", arg)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

func (r *PgxAccountRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query accounts")
	}
	modelAccs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapError(err, "scan accounts")
	}
	return mapping.ToDomainAccountSlice(modelAccs), nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are absent from the map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, err
	}
	return toAccountMap(accounts), nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code`)
}

func (r *PgxAccountRepository) ListChildren(ctx context.Context, parentID string) ([]domain.Account, error) {
	return r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE parent_account_id = $1 ORDER BY code`, parentID)
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.NameLocal, m.AccountType, m.ParentAccountID, m.IsActive,
		m.IsCourseAccount, m.CourseName, m.IsStudentAccount, m.StudentName, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save account %s", m.Code)
}

// UpdateAccount updates descriptive fields, parent and status. Balance is left alone.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, name_local = $3, parent_account_id = $4, is_active = $5,
			is_course_account = $6, course_name = $7, is_student_account = $8, student_name = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE account_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Name, m.NameLocal, m.ParentAccountID, m.IsActive,
		m.IsCourseAccount, m.CourseName, m.IsStudentAccount, m.StudentName,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update account %s", m.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// SetAccountBalances overwrites cached balances in one batch.
func (r *PgxAccountRepository) SetAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, userID string, now time.Time) error {
	return r.batchBalances(ctx, `UPDATE accounts SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE account_id = $4`, balances, userID, now)
}

// FindAccountsByIDsForUpdate selects accounts with FOR UPDATE. Ids are locked in
// ascending order so concurrent postings touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)
	accounts, err := r.findMany(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	return toAccountMap(accounts), nil
}

// UpdateAccountBalances adds each delta to the cached balance.
func (r *PgxAccountRepository) UpdateAccountBalances(ctx context.Context, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return r.batchBalances(ctx, `UPDATE accounts SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3 WHERE account_id = $4`, balanceChanges, userID, now)
}

func (r *PgxAccountRepository) batchBalances(ctx context.Context, query string, values map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(values) == 0 {
		return nil
	}
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, values[id], now, userID, id)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return mapError(err, "update balance of account %s", id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}

func toAccountMap(accounts []domain.Account) map[string]domain.Account {
	result := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result
}
