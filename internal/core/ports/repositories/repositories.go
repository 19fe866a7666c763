package repositories

// RepositoryProvider groups the repositories the service layer wires at
// startup. Implementations (pgsql) construct all of them over one
// connection pool.
type RepositoryProvider interface {
	Account() AccountRepositoryFacade
	Entry() EntryRepositoryFacade
	Reporting() ReportingRepository
}
