package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalEntryRepo := newPgxJournalEntryRepository(dbPool, accountRepo)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalEntryRepo: journalEntryRepo,
		LedgerRepo:       ledgerRepo,
		UserRepo:         userRepo,
	}
}
