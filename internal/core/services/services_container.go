package services

import (
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/platform/config"
)

// Collaborators bundles the external engines the capture pipeline depends on.
// Completer and Locator may be nil; the pipeline then runs without AI cleanup
// or external registry lookup.
type Collaborators struct {
	Extractor portssvc.TextExtractor
	Completer portssvc.TextCompleter
	Locator   portssvc.CompanyLocator
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(
		repos.AdminRepo,
		repos.EmployeeRepo,
		repos.TenantRepo,
		cfg.Auth.SigningKey,
		cfg.Auth.TokenTTL,
	)
	container.Admin = NewAdminService(repos.AdminRepo)
	container.Tenant = NewTenantService(repos.TenantRepo, repos.AdminRepo)
	container.Store = NewStoreService(repos.StoreRepo, repos.AdminRepo)
	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.CompanyRepo,
		repos.TenantRepo,
		collab.Extractor,
		collab.Completer,
		collab.Locator,
	)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.JournalRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.VoucherRepo, repos.CompanyRepo)

	return container
}

// Compile-time interface checks
var (
	_ portssvc.AuthSvcFacade     = (*authService)(nil)
	_ portssvc.AdminSvcFacade    = (*adminService)(nil)
	_ portssvc.TenantSvcFacade   = (*tenantService)(nil)
	_ portssvc.StoreSvcFacade    = (*storeService)(nil)
	_ portssvc.EmployeeSvcFacade = (*employeeService)(nil)
	_ portssvc.VoucherSvcFacade  = (*voucherService)(nil)
	_ portssvc.CompanySvcFacade  = (*companyService)(nil)
	_ portssvc.JournalSvcFacade  = (*journalService)(nil)
)
