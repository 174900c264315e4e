package mapping

import (
	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		Status:          models.EntryStatus(d.Status),
		IsAdjusting:     d.IsAdjusting,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry header.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		Status:          domain.EntryStatus(m.Status),
		IsAdjusting:     m.IsAdjusting,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain JournalEntryLine to its model counterpart.
func ToModelEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Side:      models.EntrySide(d.Side),
		Amount:    d.Amount,
	}
}

// ToDomainEntryLine converts a model JournalEntryLine to its domain counterpart.
func ToDomainEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Side:      domain.EntrySide(m.Side),
		Amount:    m.Amount,
	}
}

// ToDomainEntryLineSlice converts a slice of model JournalEntryLines.
func ToDomainEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
