package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest defines the data needed to record a student payment.
// EnrollmentID is preferred; without it the receipt is matched by student and course.
type CreateReceiptRequest struct {
	EnrollmentID    *string         `json:"enrollmentID"`
	Student         StudentRequest  `json:"student" binding:"required"`
	Course          *CourseRequest  `json:"course"`
	Date            *time.Time      `json:"date"`
	Amount          decimal.Decimal `json:"amount" binding:"gte=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"gte=0,lte=100"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" binding:"gte=0"`
	PaidAmount      decimal.Decimal `json:"paidAmount" binding:"required,gt=0"`
	PaymentMethod   string          `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK CARD TRANSFER"`
	Notes           string          `json:"notes"`
}

// ListReceiptsParams defines query parameters for listing receipts.
type ListReceiptsParams struct {
	StudentID    *int64  `form:"studentID"`
	EnrollmentID *string `form:"enrollmentID"`
	Limit        int     `form:"limit,default=50" binding:"min=1,max=200"`
	Offset       int     `form:"offset,default=0" binding:"min=0"`
}

// ToDomain converts the query to a repository filter.
func (p ListReceiptsParams) ToDomain() domain.ReceiptFilter {
	return domain.ReceiptFilter{StudentID: p.StudentID, EnrollmentID: p.EnrollmentID, Limit: p.Limit, Offset: p.Offset}
}
