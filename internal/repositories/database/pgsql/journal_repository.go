package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/apperrors"
	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
	"github.com/SscSPs/institute_ledger/internal/utils/pagination"
)

const entryColumns = `entry_id, reference, entry_date, description, entry_type, total_amount, is_posted,
	posted_at, posted_by, reversal_of_id, reversed_by_id,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, entry_id, account_id, amount, is_debit, cost_center, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func (r *PgxJournalRepository) findEntry(ctx context.Context, query, entryID string) (*domain.JournalEntry, error) {
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, mapError(err, "query journal entry %s", entryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, mapError(err, "journal entry %s", entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1`, entryID)
}

// FindEntryForUpdate retrieves an entry and locks its row until the transaction ends.
func (r *PgxJournalRepository) FindEntryForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1 FOR UPDATE`, entryID)
}

// FindTransactionsByEntryID returns the lines of an entry in the order they were written.
func (r *PgxJournalRepository) FindTransactionsByEntryID(ctx context.Context, entryID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE entry_id = $1 ORDER BY line_no`
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, mapError(err, "query transactions of entry %s", entryID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(err, "scan transactions of entry %s", entryID)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListEntries returns entries newest first by (entry_date, created_at, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	var (
		args  argList
		conds []string
	)
	arg := args.add

	if params.EntryType != nil {
		conds = append(conds, "entry_type = "+arg(string(*params.EntryType)))
	}
	if params.Posted != nil {
		conds = append(conds, "is_posted = "+arg(*params.Posted))
	}
	conds = append(conds, rangeConds("entry_date", params.Range, arg)...)
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		conds = append(conds, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			arg(cursor.Date), arg(cursor.CreatedAt), arg(cursor.ID)))
	}

	limit := pagination.ClampLimit(params.Limit)
	query := `SELECT ` + entryColumns + ` FROM journal_entries` + where(conds) +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT ` + arg(limit+1)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list journal entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, mapError(err, "scan journal entries")
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		next = &token
	}
	return mapping.ToDomainJournalEntrySlice(ms), next, nil
}

// ListPostedLinesByAccount returns posted lines oldest first. The running
// balance is the window sum over the whole ledger of the account, so it is
// correct on every page, not just the first.
func (r *PgxJournalRepository) ListPostedLinesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	var accountType string
	err := r.db(ctx).QueryRow(ctx, `SELECT account_type FROM accounts WHERE account_id = $1`, accountID).Scan(&accountType)
	if err != nil {
		return nil, nil, mapError(err, "account %s", accountID)
	}
	debitNormal := domain.AccountType(accountType).IsDebitNormal()

	args := []any{accountID, debitNormal}
	cursorCond := ""
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
		cursorCond = `WHERE (entry_date, created_at, transaction_id) > ($3, $4, $5)`
	}
	limit = pagination.ClampLimit(limit)
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		WITH ledger AS (
			SELECT t.transaction_id, t.entry_id, t.account_id, t.amount, t.is_debit, t.cost_center, t.description,
				t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
				j.reference, j.entry_date, j.entry_type, j.description AS entry_description,
				SUM(CASE WHEN t.is_debit = $2 THEN t.amount ELSE -t.amount END)
					OVER (ORDER BY j.entry_date, t.created_at, t.transaction_id) AS running_balance
			FROM transactions t
			JOIN journal_entries j ON j.entry_id = t.entry_id
			WHERE t.account_id = $1 AND j.is_posted
		)
		SELECT * FROM ledger %s
		ORDER BY entry_date, created_at, transaction_id
		LIMIT $%d;
	`, cursorCond, len(args))

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list ledger of account %s", accountID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, nil, mapError(err, "scan ledger of account %s", accountID)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.TransactionID)
		next = &token
	}
	lines := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		lines[i] = mapping.ToDomainLedgerLine(m)
	}
	return lines, next, nil
}

// SumPostedByAccount totals posted debits and credits per account inside the range.
func (r *PgxJournalRepository) SumPostedByAccount(ctx context.Context, dateRange domain.DateRange) (map[string]domain.AccountTotals, error) {
	var args argList
	conds := append([]string{"j.is_posted"}, rangeConds("j.entry_date", dateRange, args.add)...)

	query := `
		SELECT t.account_id,
			COALESCE(SUM(t.amount) FILTER (WHERE t.is_debit), 0) AS debit,
			COALESCE(SUM(t.amount) FILTER (WHERE NOT t.is_debit), 0) AS credit
		FROM transactions t
		JOIN journal_entries j ON j.entry_id = t.entry_id` + where(conds) + `
		GROUP BY t.account_id`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "sum posted lines")
	}
	defer rows.Close()

	totals := make(map[string]domain.AccountTotals)
	for rows.Next() {
		var (
			accountID     string
			debit, credit decimal.Decimal
		)
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, mapError(err, "scan posted sums")
		}
		totals[accountID] = domain.AccountTotals{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate posted sums")
	}
	return totals, nil
}

// SumPostedForAccount totals posted debits and credits of one account.
func (r *PgxJournalRepository) SumPostedForAccount(ctx context.Context, accountID string) (domain.AccountTotals, error) {
	query := `
		SELECT COALESCE(SUM(t.amount) FILTER (WHERE t.is_debit), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE NOT t.is_debit), 0)
		FROM transactions t
		JOIN journal_entries j ON j.entry_id = t.entry_id
		WHERE t.account_id = $1 AND j.is_posted;
	`
	total := domain.AccountTotals{}
	if err := r.db(ctx).QueryRow(ctx, query, accountID).Scan(&total.Debit, &total.Credit); err != nil {
		return domain.AccountTotals{}, mapError(err, "sum posted lines of account %s", accountID)
	}
	return total, nil
}

// SaveEntry inserts the draft entry and queues its lines in one batch.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, transactions []domain.Transaction) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `, line_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	batch := &pgx.Batch{}
	batch.Queue(entryQuery,
		m.EntryID, m.Reference, m.EntryDate, m.Description, m.EntryType, m.TotalAmount, m.IsPosted,
		m.PostedAt, m.PostedBy, m.ReversalOfID, m.ReversedByID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for i, txn := range transactions {
		t := mapping.ToModelTransaction(txn)
		batch.Queue(txnQuery,
			t.TransactionID, t.EntryID, t.AccountID, t.Amount, t.IsDebit, t.CostCenter, t.Description,
			t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy, i+1,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return mapError(err, "save journal entry %s", m.Reference)
		}
	}
	return nil
}

// MarkEntryPosted flips a draft to posted. An entry that is already posted is a conflict.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND NOT is_posted;
	`
	tag, err := r.db(ctx).Exec(ctx, query, entryID, postedAt, postedBy)
	if err != nil {
		return mapError(err, "post journal entry %s", entryID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.FindEntryByID(ctx, entryID); err != nil {
		return err
	}
	return fmt.Errorf("%w: entry %s already posted", apperrors.ErrConflict, entryID)
}

// MarkEntryReversed links an entry to its reversal.
func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, entryID string, reversedByID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversed_by_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, entryID, reversedByID, now, userID)
	if err != nil {
		return mapError(err, "mark journal entry %s reversed", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

// rangeConds renders inclusive bounds of a DateRange on column.
func rangeConds(column string, r domain.DateRange, arg func(any) string) []string {
	var conds []string
	if r.From != nil {
		conds = append(conds, column+" >= "+arg(*r.From))
	}
	if r.To != nil {
		conds = append(conds, column+" <= "+arg(*r.To))
	}
	return conds
}

func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
