package services

import (
	portsrepo "github.com/finken/finken_backend/internal/core/ports/repositories"
	portssvc "github.com/finken/finken_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The audit recorder and notifier are optional collaborators; nil disables them.
func NewServiceContainer(repos portsrepo.RepositoryProvider, audit portssvc.AuditRecorder, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Identity comes first since the other services gate on it.
	container.Identity = NewIdentityService(repos.UserRepo)

	container.Account = NewAccountService(repos.AccountRepo, container.Identity, audit)
	container.JournalEntry = NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, container.Identity, audit, notifier)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.LedgerRepo)

	return container
}
