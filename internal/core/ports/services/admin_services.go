package services

import (
	"context"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// AdminReaderSvc defines read operations for administrator accounts and grants
type AdminReaderSvc interface {
	// GetAdmin retrieves an administrator visible to the acting admin.
	GetAdmin(ctx context.Context, actor domain.Actor, adminID string) (*domain.Administrator, error)

	// ListAdmins retrieves the grants of a scope, owner first. Any admin
	// granted into the scope may list it.
	ListAdmins(ctx context.Context, actor domain.Actor, scope domain.Scope) ([]domain.AdminGrant, error)
}

// AdminWriterSvc defines write operations on administrator accounts.
// All of them require an effective manage permission in the target scope,
// and some are reserved to the scope owner.
type AdminWriterSvc interface {
	// CreateAdmin creates a new administrator account and grants it into the
	// scope. The first admin of a scope becomes its owner.
	CreateAdmin(ctx context.Context, actor domain.Actor, scope domain.Scope, loginID, name, email, password string, canManageAdmins bool) (*domain.Administrator, error)

	// UpdateAdmin updates the profile fields of an administrator.
	UpdateAdmin(ctx context.Context, actor domain.Actor, adminID string, name, email string) (*domain.Administrator, error)

	// ToggleActive flips the active flag of an admin in the scope. Acting on
	// yourself or on the scope owner is rejected.
	ToggleActive(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string) (*domain.AdminGrant, error)

	// SetManagePermission grants or revokes the manage-admins permission.
	// Owner only. The owner's own flags are immutable.
	SetManagePermission(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string, canManage bool) (*domain.AdminGrant, error)

	// TransferOwnership moves scope ownership from the acting owner to
	// another admin granted into the same scope.
	TransferOwnership(ctx context.Context, actor domain.Actor, scope domain.Scope, newOwnerID string) error

	// DeleteAdmin removes an admin's grant from the scope. When that was the
	// admin's last grant the account itself is removed too. Deleting yourself
	// or the scope owner is rejected.
	DeleteAdmin(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string) error
}

// AdminSvcFacade combines all administrator-related service interfaces
type AdminSvcFacade interface {
	AdminReaderSvc
	AdminWriterSvc
}
