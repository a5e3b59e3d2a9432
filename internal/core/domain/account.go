package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether balances of this type grow with debits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID        string          `json:"accountID"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	NameLocal        string          `json:"nameLocal"`
	AccountType      AccountType     `json:"accountType"`
	ParentAccountID  *string         `json:"parentAccountID"`
	IsActive         bool            `json:"isActive"`
	IsCourseAccount  bool            `json:"isCourseAccount"`
	CourseName       string          `json:"courseName"`
	IsStudentAccount bool            `json:"isStudentAccount"`
	StudentName      string          `json:"studentName"`
	Balance          decimal.Decimal `json:"balance"` // cached roll-up: own net + children
	AuditFields
}

// DisplayName prefers the localized name when present.
func (a Account) DisplayName() string {
	if a.NameLocal != "" {
		return a.NameLocal
	}
	return a.Name
}

// HasParent reports whether the account is attached to a parent.
func (a Account) HasParent() bool {
	return a.ParentAccountID != nil && *a.ParentAccountID != ""
}

// AccountSpec describes an account to look up or create by code.
type AccountSpec struct {
	Code             string
	Name             string
	NameLocal        string
	AccountType      AccountType
	ParentCode       string
	IsCourseAccount  bool
	CourseName       string
	IsStudentAccount bool
	StudentName      string
}

// AccountTotals holds the posted debit and credit sums of a single account.
type AccountTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns the signed own balance for an account of the given type.
func (t AccountTotals) Net(accountType AccountType) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return t.Debit.Sub(t.Credit)
	}
	return t.Credit.Sub(t.Debit)
}

// AccountNode is an account with its children, used for tree views.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// BalanceDrift records an account whose cached balance differs from the recomputed one.
type BalanceDrift struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Cached    decimal.Decimal `json:"cached"`
	Computed  decimal.Decimal `json:"computed"`
}

// RebuildReport summarizes a full balance recomputation.
type RebuildReport struct {
	AccountsScanned int            `json:"accountsScanned"`
	Drifts          []BalanceDrift `json:"drifts"`
	Applied         bool           `json:"applied"`
}

// ParentAttachment is one inferred parent link from the parent repair tool.
type ParentAttachment struct {
	AccountID  string `json:"accountID"`
	Code       string `json:"code"`
	ParentCode string `json:"parentCode"`
}
