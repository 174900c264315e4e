package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	"github.com/finken/finken_backend/internal/models"
	"github.com/finken/finken_backend/internal/utils/mapping"
)

const postingColumns = `posting_id, account_id, journal_entry_id, transaction_date, description, debit, credit, post_timestamp`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new read-only repository over the posting store.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerReader
var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) queryPostings(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerPosting, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger postings: %w", err)
	}
	defer rows.Close()

	postings := []models.LedgerPosting{}
	for rows.Next() {
		var m models.LedgerPosting
		err := rows.Scan(
			&m.PostingID,
			&m.AccountID,
			&m.EntryID,
			&m.TransactionDate,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.PostedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger posting row: %w", err)
		}
		postings = append(postings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger posting rows: %w", err)
	}

	return mapping.ToDomainPostingSlice(postings), nil
}

// FindPostingsByAccountID retrieves postings for one account in chronological
// order. From and to bound the transaction date inclusively when non-nil.
func (r *PgxLedgerRepository) FindPostingsByAccountID(ctx context.Context, accountID string, from *time.Time, to *time.Time) ([]domain.LedgerPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM accountledger WHERE account_id = $1`
	args := []interface{}{accountID}

	if from != nil {
		args = append(args, *from)
		query += " AND transaction_date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND transaction_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY transaction_date, post_timestamp;"

	return r.queryPostings(ctx, query, args...)
}

// FindPostingsByEntryID retrieves the postings produced by a single entry approval.
func (r *PgxLedgerRepository) FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.LedgerPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM accountledger WHERE journal_entry_id = $1 ORDER BY posting_id;`
	return r.queryPostings(ctx, query, entryID)
}

// SumPostingsByAccount aggregates debit and credit totals per account across
// all postings. Accounts without postings are absent from the map.
func (r *PgxLedgerRepository) SumPostingsByAccount(ctx context.Context) (map[string]domain.PostingTotals, error) {
	query := `
		SELECT account_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM accountledger
		GROUP BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger postings: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.PostingTotals)
	for rows.Next() {
		var accountID string
		var t domain.PostingTotals
		if err := rows.Scan(&accountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan posting totals row: %w", err)
		}
		totals[accountID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posting totals rows: %w", err)
	}
	return totals, nil
}
