package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StudentRequest identifies the student a record belongs to.
type StudentRequest struct {
	ID          int64  `json:"id" binding:"required,gt=0"`
	Code        string `json:"code" binding:"max=32"`
	FullName    string `json:"fullName" binding:"required"`
	RegistrarID string `json:"registrarID"`
}

// ToDomain converts the request to a domain.StudentRef.
func (s StudentRequest) ToDomain() domain.StudentRef {
	return domain.StudentRef{ID: s.ID, Code: s.Code, FullName: s.FullName, RegistrarID: s.RegistrarID}
}

// CourseRequest identifies a course.
type CourseRequest struct {
	ID   int64  `json:"id" binding:"required,gt=0"`
	Name string `json:"name" binding:"required"`
}

// ToDomain converts the request to a domain.CourseRef.
func (c CourseRequest) ToDomain() domain.CourseRef {
	return domain.CourseRef{ID: c.ID, Name: c.Name}
}

// CreateEnrollmentRequest defines the data needed to enroll a student in a course.
type CreateEnrollmentRequest struct {
	Student         StudentRequest  `json:"student" binding:"required"`
	Course          CourseRequest   `json:"course" binding:"required"`
	EnrollmentDate  *time.Time      `json:"enrollmentDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount" binding:"gte=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"gte=0,lte=100"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" binding:"gte=0"`
	DiscountReason  string          `json:"discountReason" binding:"max=100"`
	DiscountRuleID  *string         `json:"discountRuleID"` // replaces the explicit discount fields
	PaymentMethod   string          `json:"paymentMethod" binding:"omitempty,oneof=CASH BANK CARD TRANSFER"`
}

// WithdrawEnrollmentRequest defines the data for withdrawing an enrollment.
type WithdrawEnrollmentRequest struct {
	RefundAmount *decimal.Decimal `json:"refundAmount" binding:"omitempty,gte=0"` // defaults to everything paid
	Reason       string           `json:"reason"`
}

// ListEnrollmentsParams defines query parameters for listing enrollments.
type ListEnrollmentsParams struct {
	StudentID *int64 `form:"studentID"`
	CourseID  *int64 `form:"courseID"`
	Open      *bool  `form:"open"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
}

// ToDomain converts the query to a repository filter.
func (p ListEnrollmentsParams) ToDomain() domain.EnrollmentFilter {
	return domain.EnrollmentFilter{StudentID: p.StudentID, CourseID: p.CourseID, Open: p.Open, Limit: p.Limit, Offset: p.Offset}
}

// ARBalanceResponse reports the live receivable of an enrollment.
type ARBalanceResponse struct {
	EnrollmentID string          `json:"enrollmentID"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	ARBalance    decimal.Decimal `json:"arBalance"`
	Paid         decimal.Decimal `json:"paid"`
	Closed       bool            `json:"closed"`
}
