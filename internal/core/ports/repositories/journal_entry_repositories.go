package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/dto"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry, without its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a filtered, paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntry rewrites a pending entry's header and lines atomically.
	// Returns apperrors.ErrInvalidState if the entry is no longer pending.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a pending entry and its lines.
	// Returns apperrors.ErrInvalidState if the entry is no longer pending.
	DeleteEntry(ctx context.Context, entryID string) error

	// ApproveAndPost flips a pending entry to approved, writes its ledger postings
	// and applies account balance changes, all within a single transaction.
	// Returns apperrors.ErrInvalidState if the entry was not pending.
	ApproveAndPost(ctx context.Context, entry domain.JournalEntry, postings []domain.LedgerPosting, balanceChanges map[string]decimal.Decimal) error

	// RejectEntry flips a pending entry to rejected with the reviewer's reason.
	// Returns apperrors.ErrInvalidState if the entry was not pending.
	RejectEntry(ctx context.Context, entryID string, approverID string, reason string, now time.Time) error
}

// JournalEntryRepositoryFacade combines all entry-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends JournalEntryRepositoryFacade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
