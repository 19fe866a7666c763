package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
)

// repositoryProvider bundles the pgsql repositories over one pool.
type repositoryProvider struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	entryRepo     portsrepo.EntryRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewRepositoryProvider constructs all repositories over the given pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return &repositoryProvider{
		accountRepo:   newPgxAccountRepository(dbPool),
		entryRepo:     newPgxEntryRepository(dbPool),
		reportingRepo: newReportingRepository(dbPool),
	}
}

func (p *repositoryProvider) Account() portsrepo.AccountRepositoryFacade { return p.accountRepo }
func (p *repositoryProvider) Entry() portsrepo.EntryRepositoryFacade     { return p.entryRepo }
func (p *repositoryProvider) Reporting() portsrepo.ReportingRepository   { return p.reportingRepo }
