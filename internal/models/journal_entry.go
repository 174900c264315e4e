package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for DB storage.
type EntryStatus string

const (
	Pending  EntryStatus = "PENDING"
	Approved EntryStatus = "APPROVED"
	Rejected EntryStatus = "REJECTED"
)

// JournalEntry is the DB representation of a journal entry header.
type JournalEntry struct {
	EntryID         string      `db:"journal_entry_id"`
	EntryDate       time.Time   `db:"entry_date"`
	Description     string      `db:"description"`
	Status          EntryStatus `db:"status"`
	IsAdjusting     bool        `db:"is_adjusting_entry"`
	ApprovedBy      *string     `db:"approved_by_user_id"`
	ApprovedAt      *time.Time  `db:"approval_date"`
	RejectionReason *string     `db:"rejection_reason"`
	AuditFields
}

// JournalEntryLine is the DB representation of a single entry line.
type JournalEntryLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"journal_entry_id"`
	AccountID string          `db:"account_id"`
	Side      EntrySide       `db:"side"`
	Amount    decimal.Decimal `db:"amount"`
}

// Attachment is the DB representation of a journal attachment reference.
type Attachment struct {
	AttachmentID string    `db:"attachment_id"`
	EntryID      string    `db:"journal_entry_id"`
	FileName     string    `db:"file_name"`
	FilePath     string    `db:"file_path"`
	FileType     string    `db:"file_type"`
	FileSize     int64     `db:"file_size"`
	UploadedBy   string    `db:"uploaded_by_user_id"`
	UploadedAt   time.Time `db:"upload_timestamp"`
}
