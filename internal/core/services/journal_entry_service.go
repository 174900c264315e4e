package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/dto"
	"github.com/finken/finken_backend/internal/platform/logging"
	"github.com/finken/finken_backend/internal/utils/accounting"
)

const minRejectionReasonLen = 5

// validate is the shared request validator for all services in this package.
var validate = validator.New()

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
)

// journalEntryService provides the journal entry lifecycle: submission,
// review and posting to the ledger.
type journalEntryService struct {
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	identitySvc portssvc.IdentitySvc
	audit       portssvc.AuditRecorder
	notifier    portssvc.Notifier
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, identitySvc portssvc.IdentitySvc, audit portssvc.AuditRecorder, notifier portssvc.Notifier) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		identitySvc: identitySvc,
		audit:       audit,
		notifier:    notifier,
	}
}

// Ensure journalEntryService implements the portssvc.JournalEntrySvcFacade interface
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// snapshot marshals a domain value for an audit event payload. A marshal
// failure yields a nil payload rather than failing the caller.
func snapshot(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// recordAudit hands an event to the audit collaborator. Audit delivery is
// best effort and must never fail the business operation that produced it.
func (s *journalEntryService) recordAudit(ctx context.Context, event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, event); err != nil {
		logging.FromContext(ctx).Error("Failed to record audit event",
			slog.String("action", string(event.Action)),
			slog.String("record_id", event.RecordID),
			slog.String("error", err.Error()))
	}
}

// resolveLineAccounts fetches the accounts referenced by the lines and checks
// that every one of them exists and is active.
func (s *journalEntryService) resolveLineAccounts(ctx context.Context, lines []domain.JournalEntryLine) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountIDs = uniqueStrings(accountIDs)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrNotFound, id, ErrAccountNotFound)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrValidation, id, ErrAccountInactive)
		}
	}
	return accounts, nil
}

// linesFromRequests converts request lines into domain lines owned by entryID.
func linesFromRequests(entryID string, reqLines []dto.EntryLineRequest) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalEntryLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: lr.AccountID,
			Side:      domain.EntrySide(lr.Side),
			Amount:    lr.Amount,
		}
	}
	return lines
}

// SubmitEntry validates and persists a new journal entry in pending status.
// Implements portssvc.JournalEntryWriterSvc
func (s *journalEntryService) SubmitEntry(ctx context.Context, req dto.SubmitEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// The submitter must be a known active user; any role may submit.
	if _, err := s.identitySvc.GetUserByID(ctx, creatorUserID); err != nil {
		logger.Warn("Unknown or inactive submitter for SubmitEntry", slog.String("user_id", creatorUserID))
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := linesFromRequests(entryID, req.Lines)
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}
	if _, err := s.resolveLineAccounts(ctx, lines); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Status:      domain.Pending,
		IsAdjusting: req.IsAdjusting,
		AuditFields: domain.NewAuditFields(now, creatorUserID),
		Lines:       lines,
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    creatorUserID,
		Action:     domain.AuditCreate,
		TableName:  "journalentries",
		RecordID:   entryID,
		After:      snapshot(entry),
		OccurredAt: now,
	})

	debits, _ := accounting.SumsBySide(lines)
	if s.notifier != nil {
		notice := domain.PendingEntryNotice{
			EntryID:     entryID,
			SubmittedBy: creatorUserID,
			TotalAmount: debits,
		}
		// Notification is best effort; the entry is already committed.
		if err := s.notifier.NotifyEntrySubmitted(ctx, notice); err != nil {
			logger.Error("Failed to notify approvers of pending entry",
				slog.String("entry_id", entryID),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("Journal entry submitted", slog.String("entry_id", entryID), slog.String("created_by", creatorUserID))
	return &entry, nil
}

// GetEntryByID retrieves a specific entry with its lines.
// Implements portssvc.JournalEntryReaderSvc
func (s *journalEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a filtered, paginated list of entries.
// Implements portssvc.JournalEntryReaderSvc
func (s *journalEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := logging.FromContext(ctx)

	if params.Limit <= 0 {
		params.Limit = 20
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, params)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	resp := dto.ToListEntriesResponse(entries, nextToken)
	return &resp, nil
}

// canModify decides whether userID may edit or delete the pending entry.
// The creator may always modify their own pending work; administrators may
// modify anyone's.
func (s *journalEntryService) canModify(ctx context.Context, entry *domain.JournalEntry, userID string) error {
	if entry.CreatedBy == userID {
		return nil
	}
	return s.identitySvc.AuthorizeRole(ctx, userID, domain.RoleAdministrator)
}

// UpdateEntry edits a pending entry owned by the requesting user.
// Implements portssvc.JournalEntryWriterSvc
func (s *journalEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// State is checked before permission so a terminal entry reports the same
	// failure to everyone.
	if entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: entry is %s", apperrors.ErrInvalidState, entry.Status)
	}
	if err := s.canModify(ctx, entry, requestingUserID); err != nil {
		logger.Warn("Unauthorized journal entry update attempt", slog.String("entry_id", entryID), slog.String("user_id", requestingUserID))
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	before := snapshot(entry)

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.IsAdjusting != nil {
		entry.IsAdjusting = *req.IsAdjusting
	}
	if req.Lines != nil {
		entry.Lines = linesFromRequests(entryID, *req.Lines)
	}

	// The edited entry must balance just like a fresh submission.
	if err := accounting.ValidateLines(entry.Lines); err != nil {
		return nil, err
	}
	if _, err := s.resolveLineAccounts(ctx, entry.Lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Touch(now, requestingUserID)

	if err := s.entryRepo.ReplaceEntry(ctx, *entry); err != nil {
		logger.Error("Failed to replace journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    requestingUserID,
		Action:     domain.AuditUpdate,
		TableName:  "journalentries",
		RecordID:   entryID,
		Before:     before,
		After:      snapshot(entry),
		OccurredAt: now,
	})

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a pending entry owned by the requesting user.
// Implements portssvc.JournalEntryWriterSvc
func (s *journalEntryService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	logger := logging.FromContext(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if entry.Status != domain.Pending {
		return fmt.Errorf("%w: entry is %s", apperrors.ErrInvalidState, entry.Status)
	}
	if err := s.canModify(ctx, entry, requestingUserID); err != nil {
		logger.Warn("Unauthorized journal entry delete attempt", slog.String("entry_id", entryID), slog.String("user_id", requestingUserID))
		return err
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	now := time.Now().UTC()
	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    requestingUserID,
		Action:     domain.AuditDelete,
		TableName:  "journalentries",
		RecordID:   entryID,
		Before:     snapshot(entry),
		OccurredAt: now,
	})

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ApproveEntry approves a pending entry and posts it to the ledger atomically.
// Implements portssvc.JournalEntryApproverSvc
func (s *journalEntryService) ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status.Terminal() {
		return nil, fmt.Errorf("%w: entry is already %s", apperrors.ErrInvalidState, entry.Status)
	}

	if err := s.identitySvc.AuthorizeRole(ctx, approverUserID, domain.ApproverRoles...); err != nil {
		logger.Warn("Unauthorized journal entry approval attempt", slog.String("entry_id", entryID), slog.String("user_id", approverUserID))
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	before := snapshot(entry)

	// Postings are derived from the lines exactly as stored; an unbalanced
	// entry can only exist through data corruption and must not post.
	if err := accounting.ValidateLines(lines); err != nil {
		logger.Error("Stored journal entry fails balance validation", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("entry %s failed integrity validation: %w", entryID, apperrors.ErrInternal)
	}

	accounts, err := s.resolveLineAccounts(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	postings := make([]domain.LedgerPosting, len(lines))
	balanceChanges := make(map[string]decimal.Decimal)
	for i, line := range lines {
		posting := domain.LedgerPosting{
			PostingID:       uuid.NewString(),
			AccountID:       line.AccountID,
			EntryID:         entryID,
			TransactionDate: entry.EntryDate,
			Description:     entry.Description,
			Debit:           decimal.Zero,
			Credit:          decimal.Zero,
			PostedAt:        now,
		}
		if line.Side == domain.Debit {
			posting.Debit = line.Amount
		} else {
			posting.Credit = line.Amount
		}
		postings[i] = posting

		acc := accounts[line.AccountID]
		signed := accounting.SignedAmount(line.Amount, line.Side, acc.NormalSide)
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	entry.Status = domain.Approved
	entry.ApprovedBy = &approverUserID
	entry.ApprovedAt = &now
	entry.Touch(now, approverUserID)

	if err := s.entryRepo.ApproveAndPost(ctx, *entry, postings, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			// Lost the race against a concurrent reviewer: the entry left
			// pending between our read and the conditional update.
			logger.Warn("Journal entry left pending before approval committed", slog.String("entry_id", entryID))
		} else {
			logger.Error("Failed to approve and post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    approverUserID,
		Action:     domain.AuditApprove,
		TableName:  "journalentries",
		RecordID:   entryID,
		Before:     before,
		After:      snapshot(entry),
		OccurredAt: now,
	})

	logger.Info("Journal entry approved and posted",
		slog.String("entry_id", entryID),
		slog.String("approved_by", approverUserID),
		slog.Int("posting_count", len(postings)))
	return entry, nil
}

// RejectEntry rejects a pending entry with a mandatory reason.
// Implements portssvc.JournalEntryApproverSvc
func (s *journalEntryService) RejectEntry(ctx context.Context, entryID string, req dto.RejectEntryRequest, approverUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	reason := strings.TrimSpace(req.Reason)
	if len(reason) < minRejectionReasonLen {
		return nil, fmt.Errorf("%w: rejection reason must be at least %d characters", apperrors.ErrValidation, minRejectionReasonLen)
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status.Terminal() {
		return nil, fmt.Errorf("%w: entry is already %s", apperrors.ErrInvalidState, entry.Status)
	}

	if err := s.identitySvc.AuthorizeRole(ctx, approverUserID, domain.ApproverRoles...); err != nil {
		logger.Warn("Unauthorized journal entry rejection attempt", slog.String("entry_id", entryID), slog.String("user_id", approverUserID))
		return nil, err
	}

	before := snapshot(entry)
	now := time.Now().UTC()

	if err := s.entryRepo.RejectEntry(ctx, entryID, approverUserID, reason, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			logger.Warn("Journal entry left pending before rejection committed", slog.String("entry_id", entryID))
		} else {
			logger.Error("Failed to reject journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Status = domain.Rejected
	entry.ApprovedBy = &approverUserID
	entry.ApprovedAt = &now
	entry.RejectionReason = &reason
	entry.Touch(now, approverUserID)

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    approverUserID,
		Action:     domain.AuditReject,
		TableName:  "journalentries",
		RecordID:   entryID,
		Before:     before,
		After:      snapshot(entry),
		OccurredAt: now,
	})

	logger.Info("Journal entry rejected", slog.String("entry_id", entryID), slog.String("rejected_by", approverUserID))
	return entry, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
