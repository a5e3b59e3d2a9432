package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const receiptColumns = `receipt_id, receipt_number, student_id, student_code, student_name, registrar_id,
	course_id, course_name, enrollment_id, receipt_date, amount, discount_percent, discount_amount,
	net_amount, paid_amount, payment_method, notes, entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReceiptRepository struct {
	BaseRepository
}

func newPgxReceiptRepository(pool *pgxpool.Pool) *PgxReceiptRepository {
	return &PgxReceiptRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ReceiptID, m.ReceiptNumber, m.StudentID, m.StudentCode, m.StudentName, m.RegistrarID,
		m.CourseID, m.CourseName, m.EnrollmentID, m.ReceiptDate, m.Amount, m.DiscountPercent, m.DiscountAmount,
		m.NetAmount, m.PaidAmount, m.PaymentMethod, m.Notes, m.EntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save receipt %s", m.ReceiptNumber)
}

// UpdateReceiptEntry links a receipt to the journal entry it produced.
func (r *PgxReceiptRepository) UpdateReceiptEntry(ctx context.Context, receiptID string, entryID string, userID string) error {
	query := `UPDATE receipts SET entry_id = $2, last_updated_at = NOW(), last_updated_by = $3 WHERE receipt_id = $1`
	return execOne(ctx, r.db(ctx), "link receipt "+receiptID, query, receiptID, entryID, userID)
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	m, err := queryOne[models.Receipt](ctx, r.db(ctx), "receipt "+receiptID,
		`SELECT `+receiptColumns+` FROM receipts WHERE receipt_id = $1`, receiptID)
	if err != nil {
		return nil, err
	}
	receipt := mapping.ToDomainReceipt(m)
	return &receipt, nil
}

// ListReceipts returns receipts newest first.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, filter domain.ReceiptFilter) ([]domain.Receipt, error) {
	var (
		args  argList
		conds []string
	)
	if filter.StudentID != nil {
		conds = append(conds, "student_id = "+args.add(*filter.StudentID))
	}
	if filter.EnrollmentID != nil {
		conds = append(conds, "enrollment_id = "+args.add(*filter.EnrollmentID))
	}
	query := `SELECT ` + receiptColumns + ` FROM receipts` + where(conds) +
		` ORDER BY receipt_date DESC, receipt_number DESC` + pageClause(filter.Limit, filter.Offset, args.add)

	ms, err := queryAll[models.Receipt](ctx, r.db(ctx), "receipts", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainReceiptSlice(ms), nil
}

// Receipts whose journal entry has been reversed no longer count as paid.
const sumPaidQuery = `SELECT COALESCE(SUM(r.paid_amount), 0) FROM receipts r
	LEFT JOIN journal_entries je ON je.entry_id = r.entry_id
	WHERE je.reversed_by_id IS NULL AND `

// SumPaidByEnrollment totals paid_amount over receipts linked to the enrollment.
func (r *PgxReceiptRepository) SumPaidByEnrollment(ctx context.Context, enrollmentID string) (decimal.Decimal, error) {
	return r.sum(ctx, "paid on enrollment "+enrollmentID,
		sumPaidQuery+`r.enrollment_id = $1`, enrollmentID)
}

// SumPaidByStudentCourse totals paid_amount over the student's receipts for the course.
func (r *PgxReceiptRepository) SumPaidByStudentCourse(ctx context.Context, studentID, courseID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "paid by student for course",
		sumPaidQuery+`r.student_id = $1 AND r.course_id = $2`, studentID, courseID)
}

func (r *PgxReceiptRepository) sum(ctx context.Context, what, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, mapError(err, "sum %s", what)
	}
	return total, nil
}
