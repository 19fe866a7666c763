package services

// ServiceContainer groups the service facades handed to the HTTP layer,
// so route registration depends on interfaces rather than concrete
// service types.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
}
