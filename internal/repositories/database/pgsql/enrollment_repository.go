package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/institute_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/institute_ledger/internal/models"
	"github.com/SscSPs/institute_ledger/internal/utils/mapping"
)

const enrollmentColumns = `enrollment_id, student_id, student_code, student_name, registrar_id,
	course_id, course_name, enrollment_date, total_amount, discount_percent, discount_amount, discount_reason, net_amount,
	payment_method, is_completed, completion_date, opening_entry_id, completion_entry_id, closed_at, is_withdrawn,
	created_at, created_by, last_updated_at, last_updated_by`

const withdrawalColumns = `withdrawal_id, enrollment_id, refunded_amount, written_off_amount, entry_id,
	reason, performed_by, withdrawn_at`

type PgxEnrollmentRepository struct {
	BaseRepository
}

func newPgxEnrollmentRepository(pool *pgxpool.Pool) *PgxEnrollmentRepository {
	return &PgxEnrollmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EnrollmentRepositoryFacade = (*PgxEnrollmentRepository)(nil)

func (r *PgxEnrollmentRepository) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	m, err := queryOne[models.Enrollment](ctx, r.db(ctx), "enrollment "+enrollmentID,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE enrollment_id = $1`, enrollmentID)
	if err != nil {
		return nil, err
	}
	enr := mapping.ToDomainEnrollment(m)
	return &enr, nil
}

// FindEnrollmentForUpdate locks the enrollment row for the current transaction.
func (r *PgxEnrollmentRepository) FindEnrollmentForUpdate(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	m, err := queryOne[models.Enrollment](ctx, r.db(ctx), "enrollment "+enrollmentID,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE enrollment_id = $1 FOR UPDATE`, enrollmentID)
	if err != nil {
		return nil, err
	}
	enr := mapping.ToDomainEnrollment(m)
	return &enr, nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByStudentCourse(ctx context.Context, studentID, courseID int64) (*domain.Enrollment, error) {
	m, err := queryOne[models.Enrollment](ctx, r.db(ctx), fmt.Sprintf("enrollment of student %d in course %d", studentID, courseID),
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return nil, err
	}
	enr := mapping.ToDomainEnrollment(m)
	return &enr, nil
}

// ListEnrollments returns enrollments newest first.
func (r *PgxEnrollmentRepository) ListEnrollments(ctx context.Context, filter domain.EnrollmentFilter) ([]domain.Enrollment, error) {
	var (
		args  argList
		conds []string
	)
	if filter.StudentID != nil {
		conds = append(conds, "student_id = "+args.add(*filter.StudentID))
	}
	if filter.CourseID != nil {
		conds = append(conds, "course_id = "+args.add(*filter.CourseID))
	}
	if filter.Open != nil {
		if *filter.Open {
			conds = append(conds, "closed_at IS NULL AND NOT is_withdrawn")
		} else {
			conds = append(conds, "(closed_at IS NOT NULL OR is_withdrawn)")
		}
	}
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments` + where(conds) +
		` ORDER BY enrollment_date DESC, enrollment_id` + pageClause(filter.Limit, filter.Offset, args.add)

	ms, err := queryAll[models.Enrollment](ctx, r.db(ctx), "enrollments", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainEnrollmentSlice(ms), nil
}

func (r *PgxEnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	m := mapping.ToModelEnrollment(enrollment)
	query := `
		INSERT INTO enrollments (` + enrollmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EnrollmentID, m.StudentID, m.StudentCode, m.StudentName, m.RegistrarID,
		m.CourseID, m.CourseName, m.EnrollmentDate, m.TotalAmount, m.DiscountPercent, m.DiscountAmount, m.DiscountReason, m.NetAmount,
		m.PaymentMethod, m.IsCompleted, m.CompletionDate, m.OpeningEntryID, m.CompletionEntryID, m.ClosedAt, m.IsWithdrawn,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError(err, "save enrollment %s", m.EnrollmentID)
}

// UpdateEnrollment persists the lifecycle fields. Amounts and parties are fixed at creation.
func (r *PgxEnrollmentRepository) UpdateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	m := mapping.ToModelEnrollment(enrollment)
	query := `
		UPDATE enrollments
		SET student_name = $2, course_name = $3, is_completed = $4, completion_date = $5,
			opening_entry_id = $6, completion_entry_id = $7, closed_at = $8, is_withdrawn = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE enrollment_id = $1;
	`
	return execOne(ctx, r.db(ctx), "update enrollment "+m.EnrollmentID, query,
		m.EnrollmentID, m.StudentName, m.CourseName, m.IsCompleted, m.CompletionDate,
		m.OpeningEntryID, m.CompletionEntryID, m.ClosedAt, m.IsWithdrawn,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
}

func (r *PgxEnrollmentRepository) SaveWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
		INSERT INTO enrollment_withdrawals (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.WithdrawalID, m.EnrollmentID, m.RefundedAmount, m.WrittenOffAmount, m.EntryID,
		m.Reason, m.PerformedBy, m.WithdrawnAt,
	)
	return mapError(err, "save withdrawal of enrollment %s", m.EnrollmentID)
}

func (r *PgxEnrollmentRepository) ListWithdrawals(ctx context.Context, enrollmentID string) ([]domain.Withdrawal, error) {
	ms, err := queryAll[models.Withdrawal](ctx, r.db(ctx), "withdrawals of enrollment "+enrollmentID,
		`SELECT `+withdrawalColumns+` FROM enrollment_withdrawals WHERE enrollment_id = $1 ORDER BY withdrawn_at`, enrollmentID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Withdrawal, len(ms))
	for i, m := range ms {
		result[i] = mapping.ToDomainWithdrawal(m)
	}
	return result, nil
}
