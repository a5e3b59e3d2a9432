package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records one payment made by a student.
type Receipt struct {
	ReceiptID       string          `json:"receiptID"`
	ReceiptNumber   string          `json:"receiptNumber"`
	Student         StudentRef      `json:"student"`
	Course          *CourseRef      `json:"course"`
	EnrollmentID    *string         `json:"enrollmentID"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	NetAmount       decimal.Decimal `json:"netAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes"`
	EntryID         *string         `json:"entryID"`
	AuditFields
}

// ReceiptFilter narrows receipt listings.
type ReceiptFilter struct {
	StudentID    *int64
	EnrollmentID *string
	Limit        int
	Offset       int
}
