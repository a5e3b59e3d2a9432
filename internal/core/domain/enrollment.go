package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NetAmount computes max(0, total*(1-pct/100) - fixed) rounded to cents.
func NetAmount(total, discountPercent, discountAmount decimal.Decimal) decimal.Decimal {
	net := total.Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))).Sub(discountAmount)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net.Round(2)
}

// Enrollment is one student's financial obligation for one course.
type Enrollment struct {
	EnrollmentID      string          `json:"enrollmentID"`
	Student           StudentRef      `json:"student"`
	Course            CourseRef       `json:"course"`
	EnrollmentDate    time.Time       `json:"enrollmentDate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	DiscountPercent   decimal.Decimal `json:"discountPercent"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	DiscountReason    string          `json:"discountReason"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	PaymentMethod     string          `json:"paymentMethod"`
	IsCompleted       bool            `json:"isCompleted"`
	CompletionDate    *time.Time      `json:"completionDate"`
	OpeningEntryID    *string         `json:"openingEntryID"`
	CompletionEntryID *string         `json:"completionEntryID"`
	ClosedAt          *time.Time      `json:"closedAt"`
	IsWithdrawn       bool            `json:"isWithdrawn"`
	AuditFields
}

// ARKey addresses the enrollment's receivable account.
func (e Enrollment) ARKey() AccountKey {
	return EnrollmentARKey(e.Course.ID, e.Student.ID)
}

// IsClosed reports whether the enrollment has been closed.
func (e Enrollment) IsClosed() bool {
	return e.ClosedAt != nil
}

// Withdrawal is the audit row written when an enrollment is withdrawn.
type Withdrawal struct {
	WithdrawalID     string          `json:"withdrawalID"`
	EnrollmentID     string          `json:"enrollmentID"`
	RefundedAmount   decimal.Decimal `json:"refundedAmount"`
	WrittenOffAmount decimal.Decimal `json:"writtenOffAmount"`
	EntryID          *string         `json:"entryID"`
	Reason           string          `json:"reason"`
	PerformedBy      string          `json:"performedBy"`
	WithdrawnAt      time.Time       `json:"withdrawnAt"`
}

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	StudentID *int64
	CourseID  *int64
	Open      *bool
	Limit     int
	Offset    int
}
