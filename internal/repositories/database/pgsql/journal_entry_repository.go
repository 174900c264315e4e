package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	"github.com/finken/finken_backend/internal/dto"
	"github.com/finken/finken_backend/internal/models"
	"github.com/finken/finken_backend/internal/utils/mapping"
	"github.com/finken/finken_backend/internal/utils/pagination"
)

const entryColumns = `journal_entry_id, entry_date, description, status, is_adjusting_entry, approved_by_user_id, approval_date, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalEntryRepository creates a new repository for journal entry and line data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.IsAdjusting,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertLines queues INSERTs for all lines of an entry onto a batch.
func insertLines(batch *pgx.Batch, lines []domain.JournalEntryLine) {
	query := `
		INSERT INTO journalentrylines (line_id, journal_entry_id, account_id, side, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, line := range lines {
		m := mapping.ToModelEntryLine(line)
		batch.Queue(query, m.LineID, m.EntryID, m.AccountID, m.Side, m.Amount)
	}
}

// SaveEntry persists a new entry header and its lines atomically.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journalentries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Status,
		m.IsAdjusting,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	insertLines(batch, entry.Lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// guardPending reports why a conditional update on a pending entry matched no
// rows: the entry is gone, or it has already left pending.
func (r *PgxJournalEntryRepository) guardPending(ctx context.Context, entryID string) error {
	entry, err := r.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidState, entryID, entry.Status)
}

// ReplaceEntry rewrites a pending entry's header and lines atomically.
func (r *PgxJournalEntryRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journalentries
		SET entry_date = $2, description = $3, is_adjusting_entry = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_entry_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.IsAdjusting,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.guardPending(ctx, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journalentrylines WHERE journal_entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete old lines for entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	insertLines(batch, entry.Lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert replacement lines for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a pending entry. Lines and attachments go with it via
// ON DELETE CASCADE.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM journalentries WHERE journal_entry_id = $1 AND status = 'PENDING';`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.guardPending(ctx, entryID)
	}
	return nil
}

// ApproveAndPost flips a pending entry to approved, writes its ledger
// postings and applies balance changes, all in one transaction. The
// conditional status update is what makes concurrent approvals safe: only
// one of two racing reviewers can match the PENDING row.
func (r *PgxJournalEntryRepository) ApproveAndPost(ctx context.Context, entry domain.JournalEntry, postings []domain.LedgerPosting, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	statusQuery := `
		UPDATE journalentries
		SET status = $2, approved_by_user_id = $3, approval_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_entry_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, statusQuery,
		m.EntryID,
		m.Status,
		m.ApprovedBy,
		m.ApprovedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update status for entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.guardPending(ctx, m.EntryID)
	}

	// Lock the touched accounts before moving their balances so concurrent
	// approvals on shared accounts serialize instead of losing updates.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for posting entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	postingQuery := `
		INSERT INTO accountledger (posting_id, account_id, journal_entry_id, transaction_date, description, debit, credit, post_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, p := range postings {
		mp := mapping.ToModelPosting(p)
		batch.Queue(postingQuery,
			mp.PostingID,
			mp.AccountID,
			mp.EntryID,
			mp.TransactionDate,
			mp.Description,
			mp.Debit,
			mp.Credit,
			mp.PostedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert postings for entry %s: %w", m.EntryID, err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// RejectEntry flips a pending entry to rejected with the reviewer's reason.
func (r *PgxJournalEntryRepository) RejectEntry(ctx context.Context, entryID string, approverID string, reason string, now time.Time) error {
	query := `
		UPDATE journalentries
		SET status = 'REJECTED', approved_by_user_id = $2, approval_date = $3, rejection_reason = $4, last_updated_at = $3, last_updated_by = $2
		WHERE journal_entry_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, approverID, now, reason)
	if err != nil {
		return fmt.Errorf("failed to reject journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.guardPending(ctx, entryID)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journalentries WHERE journal_entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines belonging to a single entry.
func (r *PgxJournalEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_id, side, amount
		FROM journalentrylines
		WHERE journal_entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalEntryLine{}
	for rows.Next() {
		var m models.JournalEntryLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Side, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainEntryLineSlice(lines), nil
}

// ListEntries retrieves a filtered, paginated list of entries using token-based pagination.
func (r *PgxJournalEntryRepository) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journalentries WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if params.Status != nil {
		addArg("status = ", string(*params.Status))
	}
	if params.From != nil {
		addArg("entry_date >= ", *params.From)
	}
	if params.To != nil {
		addArg("entry_date <= ", *params.To)
	}
	if params.CreatedBy != nil {
		addArg("created_by = ", *params.CreatedBy)
	}

	if params.NextToken != nil && *params.NextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable under the same ordering.
		args = append(args, lastEntryDate, lastCreatedAt)
		query += " AND (entry_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}
