package repositories

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// AdminReader defines read operations for administrator accounts
type AdminReader interface {
	// FindAdminByID retrieves an administrator by its unique identifier.
	FindAdminByID(ctx context.Context, adminID string) (*domain.Administrator, error)

	// FindAdminByLoginID retrieves an administrator by login ID within a tier.
	FindAdminByLoginID(ctx context.Context, tier domain.Tier, loginID string) (*domain.Administrator, error)
}

// AdminWriter defines write operations for administrator accounts
type AdminWriter interface {
	// SaveAdmin persists a new administrator account.
	SaveAdmin(ctx context.Context, admin domain.Administrator) error

	// UpdateAdmin updates a stored administrator account.
	UpdateAdmin(ctx context.Context, admin domain.Administrator) error

	// DeleteAdmin removes an administrator account and all of its grants.
	DeleteAdmin(ctx context.Context, adminID string) error
}

// GrantManager defines operations on the admin-to-scope grant relation.
// Ownership and the manage-admins permission live only here.
type GrantManager interface {
	// SaveGrant persists a new grant binding an admin to a scope.
	SaveGrant(ctx context.Context, grant domain.AdminGrant) error

	// FindGrant retrieves the grant of one admin in one scope.
	FindGrant(ctx context.Context, adminID string, scope domain.Scope) (*domain.AdminGrant, error)

	// ListGrantsByScope retrieves all grants in a scope, owner first.
	ListGrantsByScope(ctx context.Context, scope domain.Scope) ([]domain.AdminGrant, error)

	// ListGrantsByAdmin retrieves all grants held by one admin.
	ListGrantsByAdmin(ctx context.Context, adminID string) ([]domain.AdminGrant, error)

	// UpdateGrant updates the flags of a stored grant.
	UpdateGrant(ctx context.Context, grant domain.AdminGrant) error

	// DeleteGrant removes one admin's grant in one scope.
	DeleteGrant(ctx context.Context, adminID string, scope domain.Scope) error

	// FindOwner retrieves the owning grant of a scope, if any.
	FindOwner(ctx context.Context, scope domain.Scope) (*domain.AdminGrant, error)

	// ClearOwnership drops the owner flag from every grant in a scope.
	// Tenant and store scopes also lose the manage-admins flag on the
	// relinquished grant; the system scope keeps it.
	ClearOwnership(ctx context.Context, scope domain.Scope) error

	// CountGrantsByAdmin reports how many scopes an admin is granted into.
	CountGrantsByAdmin(ctx context.Context, adminID string) (int, error)
}

// AdminRepositoryFacade combines all administrator-related repository interfaces
// This is a facade for clients that need access to all operations
type AdminRepositoryFacade interface {
	AdminReader
	AdminWriter
	GrantManager
}

// AdminRepositoryWithTx extends AdminRepositoryFacade with scoped transaction capabilities
type AdminRepositoryWithTx interface {
	AdminRepositoryFacade
	ScopeTransactor
}
