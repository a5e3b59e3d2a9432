package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const advanceColumns = `advance_id, reference, employee_id, employee_name, advance_date, amount, purpose,
	repaid_amount, is_repaid, entry_id, created_at, created_by, last_updated_at, last_updated_by`

const repaymentColumns = `repayment_id, advance_id, reference, repayment_date, amount, notes, entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAdvanceRepository struct {
	BaseRepository
}

func newPgxAdvanceRepository(pool *pgxpool.Pool) *PgxAdvanceRepository {
	return &PgxAdvanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AdvanceRepositoryFacade = (*PgxAdvanceRepository)(nil)

func (r *PgxAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	m := mapping.ToModelAdvance(advance)
	query := `
		INSERT INTO employee_advances (` + advanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AdvanceID, m.Reference, m.EmployeeID, m.EmployeeName, m.AdvanceDate, m.Amount, m.Purpose,
		m.RepaidAmount, m.IsRepaid, m.EntryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save advance %s", m.Reference)
}

// UpdateAdvance persists repaid amount, repaid flag and entry link.
func (r *PgxAdvanceRepository) UpdateAdvance(ctx context.Context, advance domain.Advance) error {
	m := mapping.ToModelAdvance(advance)
	query := `
		UPDATE employee_advances
		SET repaid_amount = $2, is_repaid = $3, entry_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE advance_id = $1;
	`
	return execOne(ctx, r.db(ctx), "update advance "+m.AdvanceID, query,
		m.AdvanceID, m.RepaidAmount, m.IsRepaid, m.EntryID, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	return r.findAdvance(ctx, `SELECT `+advanceColumns+` FROM employee_advances WHERE advance_id = $1`, advanceID)
}

func (r *PgxAdvanceRepository) FindAdvanceForUpdate(ctx context.Context, advanceID string) (*domain.Advance, error) {
	return r.findAdvance(ctx, `SELECT `+advanceColumns+` FROM employee_advances WHERE advance_id = $1 FOR UPDATE`, advanceID)
}

func (r *PgxAdvanceRepository) findAdvance(ctx context.Context, query, advanceID string) (*domain.Advance, error) {
	m, err := queryOne[models.Advance](ctx, r.db(ctx), "advance "+advanceID, query, advanceID)
	if err != nil {
		return nil, err
	}
	advance := mapping.ToDomainAdvance(m)
	return &advance, nil
}

// ListAdvances returns advances newest first.
func (r *PgxAdvanceRepository) ListAdvances(ctx context.Context, filter domain.AdvanceFilter) ([]domain.Advance, error) {
	var (
		args  argList
		conds []string
	)
	if filter.EmployeeID != nil {
		conds = append(conds, "employee_id = "+args.add(*filter.EmployeeID))
	}
	if filter.Open != nil {
		conds = append(conds, "is_repaid = "+args.add(!*filter.Open))
	}
	query := `SELECT ` + advanceColumns + ` FROM employee_advances` + where(conds) +
		` ORDER BY advance_date DESC, reference DESC` + pageClause(filter.Limit, filter.Offset, args.add)

	ms, err := queryAll[models.Advance](ctx, r.db(ctx), "advances", query, args...)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Advance, len(ms))
	for i, m := range ms {
		result[i] = mapping.ToDomainAdvance(m)
	}
	return result, nil
}

func (r *PgxAdvanceRepository) SaveRepayment(ctx context.Context, repayment domain.Repayment) error {
	m := mapping.ToModelRepayment(repayment)
	query := `
		INSERT INTO advance_repayments (` + repaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RepaymentID, m.AdvanceID, m.Reference, m.RepaymentDate, m.Amount, m.Notes, m.EntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save repayment %s", m.Reference)
}

// ListRepayments returns repayments of an advance oldest first.
func (r *PgxAdvanceRepository) ListRepayments(ctx context.Context, advanceID string) ([]domain.Repayment, error) {
	ms, err := queryAll[models.Repayment](ctx, r.db(ctx), "repayments of advance "+advanceID,
		`SELECT `+repaymentColumns+` FROM advance_repayments WHERE advance_id = $1 ORDER BY repayment_date, reference`, advanceID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Repayment, len(ms))
	for i, m := range ms {
		result[i] = mapping.ToDomainRepayment(m)
	}
	return result, nil
}
