package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningReference is the reference shown on the synthetic first ledger row
// that carries an account's starting balance.
const OpeningReference = "Opening"

// LedgerRow is one line of an account ledger statement. The first row of a
// ledger for an account with a nonzero starting balance is synthetic: it
// carries OpeningReference and no debit or credit movement.
type LedgerRow struct {
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerParams defines filters for building an account ledger.
type LedgerParams struct {
	From *time.Time `form:"from"`
	To   *time.Time `form:"to"`
}

// LedgerResponse wraps the ledger rows for one account.
type LedgerResponse struct {
	AccountID string      `json:"accountID"`
	Rows      []LedgerRow `json:"rows"`
}

// BalanceDivergence reports an account whose stored balance no longer matches
// the balance replayed from its postings.
type BalanceDivergence struct {
	AccountID       string          `json:"accountID"`
	AccountNumber   string          `json:"accountNumber"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
}
