package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerPosting is the DB representation of an append-only ledger row.
type LedgerPosting struct {
	PostingID       string          `db:"posting_id"`
	AccountID       string          `db:"account_id"`
	EntryID         string          `db:"journal_entry_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	PostedAt        time.Time       `db:"post_timestamp"`
}
