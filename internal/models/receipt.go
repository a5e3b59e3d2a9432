package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is a row of the receipts table. Course columns are NULL for
// receipts not tied to a course.
type Receipt struct {
	ReceiptID       string          `db:"receipt_id"`
	ReceiptNumber   string          `db:"receipt_number"`
	StudentID       int64           `db:"student_id"`
	StudentCode     string          `db:"student_code"`
	StudentName     string          `db:"student_name"`
	RegistrarID     string          `db:"registrar_id"`
	CourseID        *int64          `db:"course_id"`
	CourseName      *string         `db:"course_name"`
	EnrollmentID    *string         `db:"enrollment_id"`
	ReceiptDate     time.Time       `db:"receipt_date"`
	Amount          decimal.Decimal `db:"amount"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	NetAmount       decimal.Decimal `db:"net_amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	PaymentMethod   string          `db:"payment_method"`
	Notes           string          `db:"notes"`
	EntryID         *string         `db:"entry_id"`
	AuditFields
}
