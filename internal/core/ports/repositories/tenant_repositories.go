package repositories

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// TenantReader defines read operations for tenant data
type TenantReader interface {
	// FindTenantByID retrieves a specific tenant by its ID.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// FindTenantBySlug retrieves a tenant by its URL-safe slug.
	FindTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants, optionally including inactive ones.
	ListTenants(ctx context.Context, includeInactive bool) ([]domain.Tenant, error)
}

// TenantWriter defines write operations for tenant data
type TenantWriter interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// UpdateTenant updates a stored tenant, AI settings included.
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error

	// DeleteTenantCascade removes a tenant and everything under it
	// (stores, employees, grants, vouchers, companies, journal entries)
	// in a single transaction.
	DeleteTenantCascade(ctx context.Context, tenantID string) error
}

// TenantRepositoryFacade combines all tenant-related repository interfaces
type TenantRepositoryFacade interface {
	TenantReader
	TenantWriter
}

// StoreReader defines read operations for store data
type StoreReader interface {
	// FindStoreByID retrieves a specific store by its ID.
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)

	// ListStoresByTenant retrieves all stores of a tenant.
	ListStoresByTenant(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Store, error)
}

// StoreWriter defines write operations for store data
type StoreWriter interface {
	// SaveStore persists a new store.
	SaveStore(ctx context.Context, store domain.Store) error

	// UpdateStore updates a stored store.
	UpdateStore(ctx context.Context, store domain.Store) error

	// DeleteStore removes a store and its grants.
	DeleteStore(ctx context.Context, storeID string) error
}

// StoreRepositoryFacade combines all store-related repository interfaces
type StoreRepositoryFacade interface {
	StoreReader
	StoreWriter
}
