package services

import (
	"context"

	"github.com/finken/finken_backend/internal/dto"
)

// LedgerSvc defines read and maintenance operations over posted ledger data
type LedgerSvc interface {
	// BuildLedger produces the ledger statement for one account, oldest first,
	// with a running balance on every row.
	BuildLedger(ctx context.Context, accountID string, params dto.LedgerParams) (*dto.LedgerResponse, error)

	// ReconcileBalances replays every account's postings and reports accounts
	// whose stored balance has diverged. It never repairs balances.
	ReconcileBalances(ctx context.Context) ([]dto.BalanceDivergence, error)
}
