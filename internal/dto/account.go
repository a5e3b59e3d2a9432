package dto

import (
	"time"

	"github.com/SscSPs/institute_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=32"`
	Name        string             `json:"name" binding:"required,max=255"`
	NameLocal   string             `json:"nameLocal" binding:"max=255"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentCode  string             `json:"parentCode"` // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	NameLocal        string             `json:"nameLocal,omitempty"`
	AccountType      domain.AccountType `json:"accountType"`
	ParentAccountID  string             `json:"parentAccountID"` // Note: Empty string if null in DB
	IsActive         bool               `json:"isActive"`
	IsCourseAccount  bool               `json:"isCourseAccount"`
	CourseName       string             `json:"courseName,omitempty"`
	IsStudentAccount bool               `json:"isStudentAccount"`
	StudentName      string             `json:"studentName,omitempty"`
	Balance          decimal.Decimal    `json:"balance"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	parentID := ""
	if acc.ParentAccountID != nil {
		parentID = *acc.ParentAccountID
	}
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		NameLocal:        acc.NameLocal,
		AccountType:      acc.AccountType,
		ParentAccountID:  parentID,
		IsActive:         acc.IsActive,
		IsCourseAccount:  acc.IsCourseAccount,
		CourseName:       acc.CourseName,
		IsStudentAccount: acc.IsStudentAccount,
		StudentName:      acc.StudentName,
		Balance:          acc.Balance,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID          string          `json:"accountID"`
	Code               string          `json:"code"`
	IncludeDescendants bool            `json:"includeDescendants"`
	Balance            decimal.Decimal `json:"balance"`
	CachedBalance      decimal.Decimal `json:"cachedBalance"`
}

// AccountBalanceParams defines query parameters for a balance query.
type AccountBalanceParams struct {
	Descendants bool `form:"descendants,default=true"`
}
