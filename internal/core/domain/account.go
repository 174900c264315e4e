package domain

import (
	"github.com/shopspring/decimal"
)

// EntrySide indicates the debit/credit direction of a journal entry line, and
// doubles as an account's normal side (the direction its balance grows in).
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Valid reports whether the side is one of the two recognised values.
func (s EntrySide) Valid() bool {
	return s == Debit || s == Credit
}

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Account represents one row of the chart of accounts.
//
// InitialBalance is fixed at creation and is the anchor the ledger view folds
// postings onto. Balance is the denormalized running aggregate; its sole
// writer is the ledger poster.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary key (UUID)
	AccountNumber string          `json:"accountNumber"` // Unique, user-facing
	AccountName   string          `json:"accountName"`   // Unique
	Description   string          `json:"description"`   // Nullable user description
	NormalSide    EntrySide       `json:"normalSide"`    // DEBIT or CREDIT
	Category      AccountCategory `json:"category"`
	Subcategory   string          `json:"subcategory"` // Nullable
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsDebitNormal reports whether the account balance grows on the debit side.
func (a Account) IsDebitNormal() bool {
	return a.NormalSide == Debit
}
