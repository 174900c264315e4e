package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
	"github.com/finken/finken_backend/internal/dto"
	"github.com/finken/finken_backend/internal/platform/logging"
	"github.com/finken/finken_backend/internal/utils/accounting"
)

// ledgerService reconstructs account ledger views from postings and watches
// the stored balances for drift.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerReader) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvc interface
var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// withinRange reports whether t falls inside the optional [from, to] bounds.
func withinRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// BuildLedger produces the ledger statement for one account, oldest first.
// The running balance on each row is folded fresh from the account's initial
// balance on every call; it is never read from storage.
// Implements portssvc.LedgerSvc
func (s *ledgerService) BuildLedger(ctx context.Context, accountID string, params dto.LedgerParams) (*dto.LedgerResponse, error) {
	logger := logging.FromContext(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	postings, err := s.ledgerRepo.FindPostingsByAccountID(ctx, accountID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to fetch postings for ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve postings for account %s: %w", accountID, err)
	}

	// The opening row appears when the account has any history to anchor:
	// postings in range or a nonzero starting balance. Under date filters it
	// additionally requires the account to have been created inside the range.
	filtered := params.From != nil || params.To != nil
	hasHistory := len(postings) > 0 || !account.InitialBalance.IsZero()
	showOpening := hasHistory && (!filtered || withinRange(account.CreatedAt, params.From, params.To))

	rows := make([]dto.LedgerRow, 0, len(postings)+1)
	running := account.InitialBalance

	if showOpening {
		rows = append(rows, dto.LedgerRow{
			Date:        account.CreatedAt,
			Reference:   dto.OpeningReference,
			Description: "Starting balance",
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Balance:     running,
		})
	}

	for _, p := range postings {
		running = running.Add(accounting.SignedPostingAmount(p, account.NormalSide))
		rows = append(rows, dto.LedgerRow{
			Date:        p.TransactionDate,
			Reference:   p.EntryID,
			Description: p.Description,
			Debit:       p.Debit,
			Credit:      p.Credit,
			Balance:     running,
		})
	}

	logger.Debug("Ledger built", slog.String("account_id", accountID), slog.Int("row_count", len(rows)))
	return &dto.LedgerResponse{
		AccountID: accountID,
		Rows:      rows,
	}, nil
}

// ReconcileBalances replays every account's postings onto its initial balance
// and reports accounts whose stored balance has diverged. Divergence is an
// integrity fault to be investigated, never silently repaired, so this only
// reads.
// Implements portssvc.LedgerSvc
func (s *ledgerService) ReconcileBalances(ctx context.Context) ([]dto.BalanceDivergence, error) {
	logger := logging.FromContext(ctx)

	accounts, err := s.accountRepo.ListAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for reconciliation: %w", err)
	}

	totals, err := s.ledgerRepo.SumPostingsByAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate postings for reconciliation: %w", err)
	}

	var divergences []dto.BalanceDivergence
	for _, acc := range accounts {
		t := totals[acc.AccountID] // zero totals for accounts without postings

		var movement decimal.Decimal
		if acc.IsDebitNormal() {
			movement = t.Debit.Sub(t.Credit)
		} else {
			movement = t.Credit.Sub(t.Debit)
		}
		replayed := acc.InitialBalance.Add(movement)

		if !replayed.Equal(acc.Balance) {
			logger.Error("Account balance diverged from posting replay",
				slog.String("account_id", acc.AccountID),
				slog.String("account_number", acc.AccountNumber),
				slog.String("stored_balance", acc.Balance.String()),
				slog.String("replayed_balance", replayed.String()))
			divergences = append(divergences, dto.BalanceDivergence{
				AccountID:       acc.AccountID,
				AccountNumber:   acc.AccountNumber,
				StoredBalance:   acc.Balance,
				ReplayedBalance: replayed,
			})
		}
	}

	logger.Info("Balance reconciliation completed",
		slog.Int("account_count", len(accounts)),
		slog.Int("divergence_count", len(divergences)))
	return divergences, nil
}
