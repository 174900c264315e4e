package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerPosting is an immutable ledger row recording one side of one journal
// entry line against one account. Postings are created only at approval time
// and are never updated or deleted.
type LedgerPosting struct {
	PostingID       string          `json:"postingID"` // Primary key (UUID)
	AccountID       string          `json:"accountID"`
	EntryID         string          `json:"entryID"` // Source journal entry
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`  // Exactly one of Debit/Credit is nonzero
	Credit          decimal.Decimal `json:"credit"`
	PostedAt        time.Time       `json:"postedAt"`
}

// Side returns which side of the posting carries the amount.
func (p LedgerPosting) Side() EntrySide {
	if !p.Debit.IsZero() {
		return Debit
	}
	return Credit
}

// Amount returns the nonzero side's value.
func (p LedgerPosting) Amount() decimal.Decimal {
	if !p.Debit.IsZero() {
		return p.Debit
	}
	return p.Credit
}

// PostingTotals aggregates the posted debit and credit volume of one account.
type PostingTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}
