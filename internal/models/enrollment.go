package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enrollment is a row of the enrollments table. Student and course naming
// data is denormalized so account names can be rebuilt without joins.
type Enrollment struct {
	EnrollmentID      string          `db:"enrollment_id"`
	StudentID         int64           `db:"student_id"`
	StudentCode       string          `db:"student_code"`
	StudentName       string          `db:"student_name"`
	RegistrarID       string          `db:"registrar_id"`
	CourseID          int64           `db:"course_id"`
	CourseName        string          `db:"course_name"`
	EnrollmentDate    time.Time       `db:"enrollment_date"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	DiscountPercent   decimal.Decimal `db:"discount_percent"`
	DiscountAmount    decimal.Decimal `db:"discount_amount"`
	DiscountReason    string          `db:"discount_reason"`
	NetAmount         decimal.Decimal `db:"net_amount"`
	PaymentMethod     string          `db:"payment_method"`
	IsCompleted       bool            `db:"is_completed"`
	CompletionDate    *time.Time      `db:"completion_date"`
	OpeningEntryID    *string         `db:"opening_entry_id"`
	CompletionEntryID *string         `db:"completion_entry_id"`
	ClosedAt          *time.Time      `db:"closed_at"`
	IsWithdrawn       bool            `db:"is_withdrawn"`
	AuditFields
}

// Withdrawal is a row of the enrollment_withdrawals table.
type Withdrawal struct {
	WithdrawalID     string          `db:"withdrawal_id"`
	EnrollmentID     string          `db:"enrollment_id"`
	RefundedAmount   decimal.Decimal `db:"refunded_amount"`
	WrittenOffAmount decimal.Decimal `db:"written_off_amount"`
	EntryID          *string         `db:"entry_id"`
	Reason           string          `db:"reason"`
	PerformedBy      string          `db:"performed_by"`
	WithdrawnAt      time.Time       `db:"withdrawn_at"`
}
