package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finken/finken_backend/internal/core/domain"
)

// EntryLineRequest defines a single debit or credit leg of a journal entry.
type EntryLineRequest struct {
	AccountID string          `json:"accountID" validate:"required"`
	Side      string          `json:"side" validate:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount"`
}

// SubmitEntryRequest defines the data needed to submit a new journal entry.
type SubmitEntryRequest struct {
	EntryDate   time.Time          `json:"entryDate" validate:"required"`
	Description string             `json:"description"`
	IsAdjusting bool               `json:"isAdjusting"`
	Lines       []EntryLineRequest `json:"lines" validate:"required,min=2,dive"`
}

// UpdateEntryRequest defines the data allowed for updating a pending entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
// A nil Lines keeps the existing lines; a non-nil Lines replaces them entirely.
type UpdateEntryRequest struct {
	EntryDate   *time.Time          `json:"entryDate"`
	Description *string             `json:"description"`
	IsAdjusting *bool               `json:"isAdjusting"`
	Lines       *[]EntryLineRequest `json:"lines" validate:"omitempty,min=2,dive"`
}

// RejectEntryRequest carries the mandatory reviewer comment for a rejection.
type RejectEntryRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// ListEntriesParams defines filters for listing journal entries.
type ListEntriesParams struct {
	Status    *domain.EntryStatus `form:"status"`
	From      *time.Time          `form:"from"`
	To        *time.Time          `form:"to"`
	CreatedBy *string             `form:"createdBy"`
	Limit     int                 `form:"limit,default=20"`
	NextToken *string             `form:"nextToken"`
}

// EntryLineResponse defines the data returned for a journal entry line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Side      domain.EntrySide `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	EntryDate       time.Time           `json:"entryDate"`
	Description     string              `json:"description"`
	Status          domain.EntryStatus  `json:"status"`
	IsAdjusting     bool                `json:"isAdjusting"`
	ApprovedBy      *string             `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time          `json:"approvedAt,omitempty"`
	RejectionReason *string             `json:"rejectionReason,omitempty"`
	Lines           []EntryLineResponse `json:"lines"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy   string              `json:"lastUpdatedBy"`
}

// ListEntriesResponse wraps a page of journal entries with the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalEntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:    line.LineID,
		AccountID: line.AccountID,
		Side:      line.Side,
		Amount:    line.Amount,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = ToEntryLineResponse(&line)
	}
	return EntryResponse{
		EntryID:         entry.EntryID,
		EntryDate:       entry.EntryDate,
		Description:     entry.Description,
		Status:          entry.Status,
		IsAdjusting:     entry.IsAdjusting,
		ApprovedBy:      entry.ApprovedBy,
		ApprovedAt:      entry.ApprovedAt,
		RejectionReason: entry.RejectionReason,
		Lines:           lines,
		CreatedAt:       entry.CreatedAt,
		CreatedBy:       entry.CreatedBy,
		LastUpdatedAt:   entry.LastUpdatedAt,
		LastUpdatedBy:   entry.LastUpdatedBy,
	}
}

// ToListEntriesResponse converts a slice of domain.JournalEntry plus the next cursor.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToEntryResponse(&entry)
	}
	return ListEntriesResponse{
		Entries:   res,
		NextToken: nextToken,
	}
}
