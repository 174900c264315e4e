package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/dto"
	"github.com/finken/finken_backend/internal/platform/logging"
)

// accountService manages the chart of accounts. All mutations are reserved
// for administrators.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	identitySvc portssvc.IdentitySvc
	audit       portssvc.AuditRecorder
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, identitySvc portssvc.IdentitySvc, audit portssvc.AuditRecorder) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		identitySvc: identitySvc,
		audit:       audit,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) recordAudit(ctx context.Context, event domain.AuditEvent) {
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

// GetAccountByID retrieves a specific account by its unique identifier.
// Implements portssvc.AccountReaderSvc
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
// Implements portssvc.AccountReaderSvc
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	logger := logging.FromContext(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount persists a new account.
// Implements portssvc.AccountWriterSvc
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if err := s.identitySvc.AuthorizeRole(ctx, userID, domain.RoleAdministrator); err != nil {
		logger.Warn("Unauthorized account creation attempt", slog.String("user_id", userID))
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		AccountNumber:  req.AccountNumber,
		AccountName:    req.AccountName,
		Description:    req.Description,
		NormalSide:     req.NormalSide,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		InitialBalance: req.InitialBalance,
		// The live balance starts at the initial balance; only the ledger
		// poster moves it afterwards.
		Balance:     req.InitialBalance,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(now, userID),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account number or name", slog.String("account_number", req.AccountNumber))
		} else {
			logger.Error("Failed to save account", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    userID,
		Action:     domain.AuditCreate,
		TableName:  "chartofaccounts",
		RecordID:   account.AccountID,
		After:      snapshot(account),
		OccurredAt: now,
	})

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// UpdateAccount updates an existing account's details.
// Implements portssvc.AccountWriterSvc
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if err := s.identitySvc.AuthorizeRole(ctx, userID, domain.RoleAdministrator); err != nil {
		logger.Warn("Unauthorized account update attempt", slog.String("user_id", userID), slog.String("account_id", accountID))
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	before := snapshot(account)

	updated := false
	if req.AccountName != nil {
		account.AccountName = *req.AccountName
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Subcategory != nil {
		account.Subcategory = *req.Subcategory
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.Touch(now, userID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account name on update", slog.String("account_id", accountID))
		} else {
			logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    userID,
		Action:     domain.AuditUpdate,
		TableName:  "chartofaccounts",
		RecordID:   accountID,
		Before:     before,
		After:      snapshot(account),
		OccurredAt: now,
	})

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. An account still carrying
// a balance cannot be deactivated.
// Implements portssvc.AccountWriterSvc
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := logging.FromContext(ctx)

	if err := s.identitySvc.AuthorizeRole(ctx, userID, domain.RoleAdministrator); err != nil {
		logger.Warn("Unauthorized account deactivation attempt", slog.String("user_id", userID), slog.String("account_id", accountID))
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s has nonzero balance %s and cannot be deactivated", apperrors.ErrValidation, account.AccountNumber, account.Balance.String())
	}
	if !account.IsActive {
		return nil // already inactive
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	before := snapshot(account)
	account.IsActive = false
	account.Touch(now, userID)

	s.recordAudit(ctx, domain.AuditEvent{
		ActorID:    userID,
		Action:     domain.AuditUpdate,
		TableName:  "chartofaccounts",
		RecordID:   accountID,
		Before:     before,
		After:      snapshot(account),
		OccurredAt: now,
	})

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
