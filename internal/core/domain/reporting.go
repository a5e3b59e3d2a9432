package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the trial balance as of a date.
type TrialBalance struct {
	AsOf        *time.Time        `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// IncomeStatement is revenue and expenses over a period.
type IncomeStatement struct {
	Range         DateRange       `json:"-"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	AsOf             *time.Time      `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"` // revenue minus expenses not yet closed to equity
}

// ReconcileSummary counts what the reconciliation sweep touched.
type ReconcileSummary struct {
	StudentAccountsEnsured int `json:"studentAccountsEnsured"`
	EnrollmentsChecked     int `json:"enrollmentsChecked"`
	OpeningEntriesPosted   int `json:"openingEntriesPosted"`
	ReceiptsChecked        int `json:"receiptsChecked"`
	ReceiptEntriesCreated  int `json:"receiptEntriesCreated"`
	ReceiptEntriesPosted   int `json:"receiptEntriesPosted"`
	BalanceDrifts          int `json:"balanceDrifts"`
}
