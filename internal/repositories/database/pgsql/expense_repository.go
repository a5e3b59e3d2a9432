package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const expenseColumns = `expense_id, reference, expense_date, category, description, amount, vendor,
	payment_method, employee_id, employee_name, teacher_id, teacher_name, entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseEntry) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ExpenseID, m.Reference, m.ExpenseDate, m.Category, m.Description, m.Amount, m.Vendor,
		m.PaymentMethod, m.EmployeeID, m.EmployeeName, m.TeacherID, m.TeacherName, m.EntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save expense %s", m.Reference)
}

func (r *PgxExpenseRepository) UpdateExpenseEntry(ctx context.Context, expenseID string, entryID string, userID string) error {
	query := `UPDATE expenses SET entry_id = $2, last_updated_at = NOW(), last_updated_by = $3 WHERE expense_id = $1`
	return execOne(ctx, r.db(ctx), "link expense "+expenseID, query, expenseID, entryID, userID)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.ExpenseEntry, error) {
	m, err := queryOne[models.Expense](ctx, r.db(ctx), "expense "+expenseID,
		`SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1`, expenseID)
	if err != nil {
		return nil, err
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// ListExpenses returns expenses newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.ExpenseEntry, error) {
	var (
		args  argList
		conds []string
	)
	if filter.Category != nil {
		conds = append(conds, "category = "+args.add(string(*filter.Category)))
	}
	conds = append(conds, rangeConds("expense_date", filter.Range, args.add)...)
	query := `SELECT ` + expenseColumns + ` FROM expenses` + where(conds) +
		` ORDER BY expense_date DESC, reference DESC` + pageClause(filter.Limit, filter.Offset, args.add)

	ms, err := queryAll[models.Expense](ctx, r.db(ctx), "expenses", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}
