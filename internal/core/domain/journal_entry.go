package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Approved EntryStatus = "APPROVED"
	Rejected EntryStatus = "REJECTED"
)

// Terminal reports whether the status permits no further transition.
func (s EntryStatus) Terminal() bool {
	return s == Approved || s == Rejected
}

// JournalEntry represents a single, balanced financial event awaiting or past
// managerial review. Once the status leaves Pending the entry is immutable.
type JournalEntry struct {
	EntryID         string      `json:"entryID"` // Primary key (UUID)
	EntryDate       time.Time   `json:"entryDate"`
	Description     string      `json:"description"` // Nullable user description
	Status          EntryStatus `json:"status"`      // Default: Pending
	IsAdjusting     bool        `json:"isAdjusting"`
	ApprovedBy      *string     `json:"approvedBy,omitempty"` // UserID of the approver/rejecter
	ApprovedAt      *time.Time  `json:"approvedAt,omitempty"`
	RejectionReason *string     `json:"rejectionReason,omitempty"`
	AuditFields                 // CreatedBy is the submitting user
	Lines           []JournalEntryLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalEntryLine represents a single debit or credit within a journal entry,
// affecting one account.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`  // Primary key (UUID)
	EntryID   string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountID string          `json:"accountID"`
	Side      EntrySide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"` // Strictly positive
}

// Attachment references a supporting document uploaded against a journal entry.
// File storage itself lives outside the ledger core; rows are cascade-deleted
// together with a pending entry.
type Attachment struct {
	AttachmentID string    `json:"attachmentID"`
	EntryID      string    `json:"entryID"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	FileType     string    `json:"fileType,omitempty"`
	FileSize     int64     `json:"fileSize,omitempty"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// PendingEntryNotice is the event exposed to the notification collaborator
// when a new entry lands in the approval queue.
type PendingEntryNotice struct {
	EntryID     string          `json:"entryID"`
	SubmittedBy string          `json:"submittedBy"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // Sum of the debit side
}
