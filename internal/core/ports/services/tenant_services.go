package services

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// TenantReaderSvc defines read operations for tenant data
type TenantReaderSvc interface {
	// GetTenant retrieves a tenant the actor may see.
	GetTenant(ctx context.Context, actor domain.Actor, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants. System admins only.
	ListTenants(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenant data
type TenantWriterSvc interface {
	// CreateTenant creates a tenant together with its first tenant admin,
	// who becomes the tenant scope owner. System admins only.
	CreateTenant(ctx context.Context, actor domain.Actor, name, slug string, firstAdmin domain.Administrator, password string) (*domain.Tenant, error)

	// UpdateTenant updates a tenant's profile fields.
	UpdateTenant(ctx context.Context, actor domain.Actor, tenantID, name string, isActive bool) (*domain.Tenant, error)

	// UpdateAISettings replaces the tenant's text-completion configuration.
	UpdateAISettings(ctx context.Context, actor domain.Actor, tenantID string, settings domain.AISettings) (*domain.Tenant, error)

	// DeleteTenant removes the tenant and everything under it. The acting
	// system admin must re-authenticate with their password.
	DeleteTenant(ctx context.Context, actor domain.Actor, tenantID, password string) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}

// StoreSvcFacade defines operations for stores within a tenant
type StoreSvcFacade interface {
	// GetStore retrieves a store the actor may see.
	GetStore(ctx context.Context, actor domain.Actor, storeID string) (*domain.Store, error)

	// ListStores retrieves the stores of a tenant.
	ListStores(ctx context.Context, actor domain.Actor, tenantID string, includeInactive bool) ([]domain.Store, error)

	// CreateStore creates a store together with its first store admin,
	// who becomes the store scope owner.
	CreateStore(ctx context.Context, actor domain.Actor, tenantID, name, slug string, firstAdmin domain.Administrator, password string) (*domain.Store, error)

	// UpdateStore updates a store's profile fields.
	UpdateStore(ctx context.Context, actor domain.Actor, storeID, name string, isActive bool) (*domain.Store, error)

	// DeleteStore removes a store and its grants.
	DeleteStore(ctx context.Context, actor domain.Actor, storeID string) error
}

// EmployeeSvcFacade defines operations for employee accounts
type EmployeeSvcFacade interface {
	// GetEmployee retrieves an employee the actor may see.
	GetEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves the employees of a tenant, optionally limited
	// to one store.
	ListEmployees(ctx context.Context, actor domain.Actor, tenantID string, storeID *string) ([]domain.Employee, error)

	// CreateEmployee creates an employee account with store assignments.
	CreateEmployee(ctx context.Context, actor domain.Actor, employee domain.Employee, password string) (*domain.Employee, error)

	// UpdateEmployee updates an employee's profile and store assignments.
	UpdateEmployee(ctx context.Context, actor domain.Actor, employee domain.Employee) (*domain.Employee, error)

	// DeleteEmployee removes an employee account.
	DeleteEmployee(ctx context.Context, actor domain.Actor, employeeID string) error
}
