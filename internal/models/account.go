package models

import (
	"github.com/shopspring/decimal"
)

// EntrySide mirrors domain.EntrySide for DB storage.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// AccountCategory mirrors domain.AccountCategory for DB storage.
type AccountCategory string

// Account is the DB representation of a chart-of-accounts row.
type Account struct {
	AccountID      string          `db:"account_id"`
	AccountNumber  string          `db:"account_number"`
	AccountName    string          `db:"account_name"`
	Description    string          `db:"description"`
	NormalSide     EntrySide       `db:"normal_side"`
	Category       AccountCategory `db:"category"`
	Subcategory    string          `db:"subcategory"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Balance        decimal.Decimal `db:"balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
