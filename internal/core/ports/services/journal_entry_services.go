package services

import (
	"context"

	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entry data
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a filtered, paginated list of entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalEntryWriterSvc defines write operations for journal entry data
type JournalEntryWriterSvc interface {
	// SubmitEntry validates and persists a new entry in pending status.
	SubmitEntry(ctx context.Context, req dto.SubmitEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry edits a pending entry owned by the requesting user.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a pending entry owned by the requesting user.
	DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error
}

// JournalEntryApproverSvc defines the review operations on pending entries
type JournalEntryApproverSvc interface {
	// ApproveEntry approves a pending entry and posts it to the ledger atomically.
	ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error)

	// RejectEntry rejects a pending entry with a mandatory reason.
	RejectEntry(ctx context.Context, entryID string, req dto.RejectEntryRequest, approverUserID string) (*domain.JournalEntry, error)
}

// JournalEntrySvcFacade combines all entry-related service interfaces
// This is a facade for clients that need access to all operations
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	JournalEntryApproverSvc
}
