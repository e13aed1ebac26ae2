package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AdminRepo:    newPgxAdminRepository(dbPool),
		TenantRepo:   newPgxTenantRepository(dbPool),
		StoreRepo:    newPgxStoreRepository(dbPool),
		EmployeeRepo: newPgxEmployeeRepository(dbPool),
		VoucherRepo:  newPgxVoucherRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
	}
}
