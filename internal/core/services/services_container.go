package services

import (
	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
)

// NewServiceContainer wires the services over the provided repositories.
// retryLimit bounds posting retries on document number races.
func NewServiceContainer(repos portsrepo.RepositoryProvider, retryLimit int) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account())
	ledgerSvc := NewLedgerService(repos.Entry(), accountSvc, retryLimit)
	reportingSvc := NewReportingService(repos.Reporting(), repos.Entry(), accountSvc)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
	}
}
