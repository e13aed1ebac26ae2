package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AdminRepo    AdminRepositoryWithTx
	TenantRepo   TenantRepositoryFacade
	StoreRepo    StoreRepositoryFacade
	EmployeeRepo EmployeeRepositoryFacade
	VoucherRepo  VoucherRepositoryFacade
	CompanyRepo  CompanyRepositoryFacade
	JournalRepo  JournalRepositoryFacade
}
