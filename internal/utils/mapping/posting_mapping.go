package mapping

import (
	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/finken/finken_backend/internal/models"
)

// ToModelPosting converts a domain LedgerPosting to a model LedgerPosting.
func ToModelPosting(d domain.LedgerPosting) models.LedgerPosting {
	return models.LedgerPosting{
		PostingID:       d.PostingID,
		AccountID:       d.AccountID,
		EntryID:         d.EntryID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		PostedAt:        d.PostedAt,
	}
}

// ToDomainPosting converts a model LedgerPosting to a domain LedgerPosting.
func ToDomainPosting(m models.LedgerPosting) domain.LedgerPosting {
	return domain.LedgerPosting{
		PostingID:       m.PostingID,
		AccountID:       m.AccountID,
		EntryID:         m.EntryID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		PostedAt:        m.PostedAt,
	}
}

// ToDomainPostingSlice converts a slice of model LedgerPostings.
func ToDomainPostingSlice(ms []models.LedgerPosting) []domain.LedgerPosting {
	ds := make([]domain.LedgerPosting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPosting(m)
	}
	return ds
}
