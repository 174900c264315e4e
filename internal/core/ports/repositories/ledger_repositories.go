package repositories

import (
	"context"
	"time"

	"github.com/finken/finken_backend/internal/core/domain"
)

// LedgerReader defines read operations over the append-only posting store
type LedgerReader interface {
	// FindPostingsByAccountID retrieves postings for one account ordered by
	// transaction date then post timestamp. From and to bound the transaction
	// date inclusively when non-nil.
	FindPostingsByAccountID(ctx context.Context, accountID string, from *time.Time, to *time.Time) ([]domain.LedgerPosting, error)

	// FindPostingsByEntryID retrieves the postings produced by a single entry approval.
	FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerPosting, error)

	// SumPostingsByAccount aggregates debit and credit totals per account across all postings.
	SumPostingsByAccount(ctx context.Context) (map[string]domain.PostingTotals, error)
}
