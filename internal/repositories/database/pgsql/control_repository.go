package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const costCenterColumns = `code, name, name_local, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const periodColumns = `period_id, name, start_date, end_date, is_closed, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by`

const budgetColumns = `budget_id, account_id, period_id, budgeted_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`

const discountRuleColumns = `rule_id, reason, reason_local, discount_percent, discount_amount, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCostCenterRepository struct {
	BaseRepository
}

func newPgxCostCenterRepository(pool *pgxpool.Pool) *PgxCostCenterRepository {
	return &PgxCostCenterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CostCenterRepositoryFacade = (*PgxCostCenterRepository)(nil)

func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, center domain.CostCenter) error {
	m := mapping.ToModelCostCenter(center)
	query := `INSERT INTO cost_centers (` + costCenterColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.Code, m.Name, m.NameLocal, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save cost center %s", m.Code)
}

func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, center domain.CostCenter) error {
	m := mapping.ToModelCostCenter(center)
	query := `
		UPDATE cost_centers
		SET name = $2, name_local = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE code = $1;
	`
	return execOne(ctx, r.db(ctx), "update cost center "+m.Code, query,
		m.Code, m.Name, m.NameLocal, m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxCostCenterRepository) FindCostCenterByCode(ctx context.Context, code string) (*domain.CostCenter, error) {
	m, err := queryOne[models.CostCenter](ctx, r.db(ctx), "cost center "+code,
		`SELECT `+costCenterColumns+` FROM cost_centers WHERE code = $1`, code)
	if err != nil {
		return nil, err
	}
	center := mapping.ToDomainCostCenter(m)
	return &center, nil
}

func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, activeOnly bool) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers`
	if activeOnly {
		query += ` WHERE is_active`
	}
	ms, err := queryAll[models.CostCenter](ctx, r.db(ctx), "cost centers", query+` ORDER BY code`)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCostCenterSlice(ms), nil
}

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `INSERT INTO accounting_periods (` + periodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PeriodID, m.Name, m.StartDate, m.EndDate, m.IsClosed, m.ClosedAt, m.ClosedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save period %s", m.Name)
}

// UpdatePeriod persists the closing fields. Name and dates are fixed at creation.
func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		UPDATE accounting_periods
		SET is_closed = $2, closed_at = $3, closed_by = $4, last_updated_at = $5, last_updated_by = $6
		WHERE period_id = $1;
	`
	return execOne(ctx, r.db(ctx), "update period "+m.PeriodID, query,
		m.PeriodID, m.IsClosed, m.ClosedAt, m.ClosedBy, m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	return r.findPeriod(ctx, periodID, "")
}

// FindPeriodForUpdate locks the period row for the current transaction.
func (r *PgxPeriodRepository) FindPeriodForUpdate(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	return r.findPeriod(ctx, periodID, " FOR UPDATE")
}

func (r *PgxPeriodRepository) findPeriod(ctx context.Context, periodID, suffix string) (*domain.AccountingPeriod, error) {
	m, err := queryOne[models.AccountingPeriod](ctx, r.db(ctx), "period "+periodID,
		`SELECT `+periodColumns+` FROM accounting_periods WHERE period_id = $1`+suffix, periodID)
	if err != nil {
		return nil, err
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	ms, err := queryAll[models.AccountingPeriod](ctx, r.db(ctx), "periods",
		`SELECT `+periodColumns+` FROM accounting_periods ORDER BY start_date DESC, period_id`)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainPeriodSlice(ms), nil
}

// FindClosedPeriodCovering compares in UTC; end_date is inclusive of its whole day.
func (r *PgxPeriodRepository) FindClosedPeriodCovering(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	m, err := queryOne[models.AccountingPeriod](ctx, r.db(ctx), "closed period covering "+date.Format(time.DateOnly),
		`SELECT `+periodColumns+` FROM accounting_periods
		WHERE is_closed AND ($1::timestamptz AT TIME ZONE 'UTC')::date BETWEEN start_date AND end_date
		ORDER BY start_date LIMIT 1`, date)
	if err != nil {
		return nil, err
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

func (r *PgxPeriodRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `INSERT INTO budgets (` + budgetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BudgetID, m.AccountID, m.PeriodID, m.BudgetedAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save budget for account %s", m.AccountID)
}

func (r *PgxPeriodRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	m, err := queryOne[models.Budget](ctx, r.db(ctx), "budget "+budgetID,
		`SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1`, budgetID)
	if err != nil {
		return nil, err
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

func (r *PgxPeriodRepository) ListBudgets(ctx context.Context, periodID string) ([]domain.Budget, error) {
	ms, err := queryAll[models.Budget](ctx, r.db(ctx), "budgets",
		`SELECT `+budgetColumns+` FROM budgets WHERE period_id = $1 ORDER BY budget_id`, periodID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

type PgxDiscountRuleRepository struct {
	BaseRepository
}

func newPgxDiscountRuleRepository(pool *pgxpool.Pool) *PgxDiscountRuleRepository {
	return &PgxDiscountRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DiscountRuleRepositoryFacade = (*PgxDiscountRuleRepository)(nil)

func (r *PgxDiscountRuleRepository) SaveDiscountRule(ctx context.Context, rule domain.DiscountRule) error {
	m := mapping.ToModelDiscountRule(rule)
	query := `INSERT INTO discount_rules (` + discountRuleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.RuleID, m.Reason, m.ReasonLocal, m.DiscountPercent, m.DiscountAmount, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save discount rule %q", m.Reason)
}

func (r *PgxDiscountRuleRepository) UpdateDiscountRule(ctx context.Context, rule domain.DiscountRule) error {
	m := mapping.ToModelDiscountRule(rule)
	query := `
		UPDATE discount_rules
		SET reason_local = $2, discount_percent = $3, discount_amount = $4, description = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE rule_id = $1;
	`
	return execOne(ctx, r.db(ctx), "update discount rule "+m.RuleID, query,
		m.RuleID, m.ReasonLocal, m.DiscountPercent, m.DiscountAmount, m.Description, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy)
}

func (r *PgxDiscountRuleRepository) FindDiscountRuleByID(ctx context.Context, ruleID string) (*domain.DiscountRule, error) {
	m, err := queryOne[models.DiscountRule](ctx, r.db(ctx), "discount rule "+ruleID,
		`SELECT `+discountRuleColumns+` FROM discount_rules WHERE rule_id = $1`, ruleID)
	if err != nil {
		return nil, err
	}
	rule := mapping.ToDomainDiscountRule(m)
	return &rule, nil
}

func (r *PgxDiscountRuleRepository) ListDiscountRules(ctx context.Context, activeOnly bool) ([]domain.DiscountRule, error) {
	query := `SELECT ` + discountRuleColumns + ` FROM discount_rules`
	if activeOnly {
		query += ` WHERE is_active`
	}
	ms, err := queryAll[models.DiscountRule](ctx, r.db(ctx), "discount rules", query+` ORDER BY reason`)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainDiscountRuleSlice(ms), nil
}
