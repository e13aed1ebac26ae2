package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portsrepo "github.com/keiri-app/keiri-backend/internal/core/ports/repositories"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/utils"
)

// adminService implements the AdminSvcFacade interface.
//
// Every state transition runs inside a serializable transaction pinned to the
// target scope (InScopeTx), so owner uniqueness and the self/owner protection
// rules hold even when two managers act on the same scope at once.
type adminService struct {
	BaseService
	adminRepo portsrepo.AdminRepositoryWithTx
}

// NewAdminService creates a new admin service with the provided dependencies
func NewAdminService(adminRepo portsrepo.AdminRepositoryWithTx) portssvc.AdminSvcFacade {
	return &adminService{adminRepo: adminRepo}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// authorizeManage checks that the actor may manage admins of the given scope.
// Same-tier actors need an effective manage permission on their own grant in
// the scope. Higher-tier actors manage through the containing scope: a tenant
// admin with manage permission governs the store scopes of their tenant, and
// system admins with manage permission govern everything below.
func (s *adminService) authorizeManage(ctx context.Context, actor domain.Actor, scope domain.Scope) (*domain.AdminGrant, error) {
	if actor.Tier == scope.Tier {
		grant, err := s.adminRepo.FindGrant(ctx, actor.ID, scope)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: not a member of this scope", apperrors.ErrForbidden)
			}
			return nil, err
		}
		if !grant.CanManage() {
			return nil, fmt.Errorf("%w: admin management permission required", apperrors.ErrForbidden)
		}
		return grant, nil
	}

	if !actor.Tier.Outranks(scope.Tier) {
		return nil, fmt.Errorf("%w: tier %s may not manage %s scopes", apperrors.ErrForbidden, actor.Tier, scope.Tier)
	}

	var containing domain.Scope
	switch actor.Tier {
	case domain.TierSystem:
		containing = domain.SystemScope()
	case domain.TierTenant:
		if scope.TenantID != actor.TenantID {
			return nil, fmt.Errorf("%w: scope belongs to another tenant", apperrors.ErrForbidden)
		}
		containing = domain.TenantScope(actor.TenantID)
	default:
		return nil, fmt.Errorf("%w: tier %s may not manage %s scopes", apperrors.ErrForbidden, actor.Tier, scope.Tier)
	}

	grant, err := s.adminRepo.FindGrant(ctx, actor.ID, containing)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: not a member of the containing scope", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !grant.CanManage() {
		return nil, fmt.Errorf("%w: admin management permission required", apperrors.ErrForbidden)
	}
	return grant, nil
}

// ownerGrant fetches the actor's grant in the scope and requires ownership.
// Owner-only actions have no higher-tier override.
func (s *adminService) ownerGrant(ctx context.Context, actor domain.Actor, scope domain.Scope) (*domain.AdminGrant, error) {
	grant, err := s.adminRepo.FindGrant(ctx, actor.ID, scope)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: not a member of this scope", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !grant.IsOwner {
		return nil, fmt.Errorf("%w: only the scope owner may do this", apperrors.ErrForbidden)
	}
	return grant, nil
}

// GetAdmin retrieves an administrator account
func (s *adminService) GetAdmin(ctx context.Context, actor domain.Actor, adminID string) (*domain.Administrator, error) {
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant, domain.TierStore); err != nil {
		return nil, err
	}
	admin, err := s.adminRepo.FindAdminByID(ctx, adminID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find admin by ID", slog.String("admin_id", adminID))
		}
		return nil, err
	}
	return admin, nil
}

// ListAdmins retrieves the grants of a scope, owner first
func (s *adminService) ListAdmins(ctx context.Context, actor domain.Actor, scope domain.Scope) ([]domain.AdminGrant, error) {
	if err := scope.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	// Membership in the scope is enough to list it; managing is not required.
	if actor.Tier == scope.Tier {
		if _, err := s.adminRepo.FindGrant(ctx, actor.ID, scope); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: not a member of this scope", apperrors.ErrForbidden)
			}
			return nil, err
		}
	} else if _, err := s.authorizeManage(ctx, actor, scope); err != nil {
		return nil, err
	}

	grants, err := s.adminRepo.ListGrantsByScope(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list grants", slog.String("scope", scope.Key()))
		return nil, err
	}
	if grants == nil {
		grants = []domain.AdminGrant{}
	}
	return grants, nil
}

// CreateAdmin creates an administrator account and grants it into the scope.
// If an account with the login ID already exists at the scope's tier, only a
// new grant is added, so one admin can serve several tenants or stores.
func (s *adminService) CreateAdmin(ctx context.Context, actor domain.Actor, scope domain.Scope, loginID, name, email, password string, canManageAdmins bool) (*domain.Administrator, error) {
	if err := scope.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.authorizeManage(ctx, actor, scope); err != nil {
		return nil, err
	}

	var created *domain.Administrator
	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		now := time.Now()

		admin, err := s.adminRepo.FindAdminByLoginID(ctx, scope.Tier, loginID)
		switch {
		case err == nil:
			if existing, ferr := s.adminRepo.FindGrant(ctx, admin.AdminID, scope); ferr == nil && existing != nil {
				return apperrors.NewConflictError("admin already belongs to this scope")
			} else if ferr != nil && !errors.Is(ferr, apperrors.ErrNotFound) {
				return ferr
			}
		case errors.Is(err, apperrors.ErrNotFound):
			hash, herr := utils.HashPassword(password)
			if herr != nil {
				return herr
			}
			admin = &domain.Administrator{
				AdminID:      uuid.NewString(),
				LoginID:      loginID,
				Name:         name,
				Email:        email,
				PasswordHash: hash,
				Tier:         scope.Tier,
				IsActive:     true,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actor.ID,
					LastUpdatedAt: now,
					LastUpdatedBy: actor.ID,
				},
			}
			if serr := s.adminRepo.SaveAdmin(ctx, *admin); serr != nil {
				return serr
			}
		default:
			return err
		}

		owner, err := s.adminRepo.FindOwner(ctx, scope)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		// The first admin of a scope owns it and always gets the manage
		// flag, whatever the caller asked for.
		isOwner := owner == nil
		grant := domain.AdminGrant{
			AdminID:         admin.AdminID,
			Scope:           scope,
			IsOwner:         isOwner,
			CanManageAdmins: canManageAdmins || isOwner,
			GrantedAt:       now,
		}
		if err := s.adminRepo.SaveGrant(ctx, grant); err != nil {
			return err
		}
		created = admin
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create admin",
			slog.String("scope", scope.Key()),
			slog.String("login_id", loginID))
		return nil, err
	}

	s.LogInfo(ctx, "Admin created",
		slog.String("admin_id", created.AdminID),
		slog.String("scope", scope.Key()),
		slog.String("created_by", actor.ID))
	return created, nil
}

// UpdateAdmin updates the profile fields of an administrator
func (s *adminService) UpdateAdmin(ctx context.Context, actor domain.Actor, adminID string, name, email string) (*domain.Administrator, error) {
	admin, err := s.adminRepo.FindAdminByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	// Self-service profile edits are always allowed; editing someone else
	// requires manage permission over one of their scopes.
	if !actor.IsSelf(adminID) {
		grants, err := s.adminRepo.ListGrantsByAdmin(ctx, adminID)
		if err != nil {
			return nil, err
		}
		authorized := false
		for _, g := range grants {
			if _, err := s.authorizeManage(ctx, actor, g.Scope); err == nil {
				authorized = true
				break
			}
		}
		if !authorized {
			return nil, fmt.Errorf("%w: may not edit this admin", apperrors.ErrForbidden)
		}
	}

	if name != "" {
		admin.Name = name
	}
	if email != "" {
		admin.Email = email
	}
	admin.LastUpdatedAt = time.Now()
	admin.LastUpdatedBy = actor.ID

	if err := s.adminRepo.UpdateAdmin(ctx, *admin); err != nil {
		s.LogError(ctx, err, "Failed to update admin", slog.String("admin_id", adminID))
		return nil, err
	}
	return admin, nil
}

// ToggleActive flips the active flag of an admin in the scope
func (s *adminService) ToggleActive(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string) (*domain.AdminGrant, error) {
	if err := scope.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.authorizeManage(ctx, actor, scope); err != nil {
		return nil, err
	}
	if actor.IsSelf(adminID) {
		return nil, fmt.Errorf("%w: may not deactivate yourself", apperrors.ErrForbidden)
	}

	var result *domain.AdminGrant
	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		grant, err := s.adminRepo.FindGrant(ctx, adminID, scope)
		if err != nil {
			return err
		}

		admin, err := s.adminRepo.FindAdminByID(ctx, adminID)
		if err != nil {
			return err
		}

		// The active flag lives on the account, not the grant, so
		// deactivation through one scope would lock the admin out of every
		// scope they own. Refuse while any owning grant exists.
		if admin.IsActive {
			grants, err := s.adminRepo.ListGrantsByAdmin(ctx, adminID)
			if err != nil {
				return err
			}
			for _, g := range grants {
				if g.IsOwner {
					return fmt.Errorf("%w: a scope owner cannot be deactivated", apperrors.ErrForbidden)
				}
			}
		}
		admin.IsActive = !admin.IsActive
		admin.LastUpdatedAt = time.Now()
		admin.LastUpdatedBy = actor.ID
		if err := s.adminRepo.UpdateAdmin(ctx, *admin); err != nil {
			return err
		}
		result = grant
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to toggle admin active flag",
			slog.String("admin_id", adminID), slog.String("scope", scope.Key()))
		return nil, err
	}

	s.LogInfo(ctx, "Admin active flag toggled",
		slog.String("admin_id", adminID),
		slog.String("scope", scope.Key()),
		slog.String("toggled_by", actor.ID))
	return result, nil
}

// SetManagePermission grants or revokes the manage-admins permission
func (s *adminService) SetManagePermission(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string, canManage bool) (*domain.AdminGrant, error) {
	if err := scope.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.ownerGrant(ctx, actor, scope); err != nil {
		return nil, err
	}
	if actor.IsSelf(adminID) {
		return nil, fmt.Errorf("%w: may not change your own permission", apperrors.ErrForbidden)
	}

	var result *domain.AdminGrant
	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		grant, err := s.adminRepo.FindGrant(ctx, adminID, scope)
		if err != nil {
			return err
		}
		if grant.IsOwner {
			return fmt.Errorf("%w: the owner's permissions are immutable", apperrors.ErrForbidden)
		}
		grant.CanManageAdmins = canManage
		if err := s.adminRepo.UpdateGrant(ctx, *grant); err != nil {
			return err
		}
		result = grant
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set manage permission",
			slog.String("admin_id", adminID), slog.String("scope", scope.Key()))
		return nil, err
	}

	s.LogInfo(ctx, "Manage permission updated",
		slog.String("admin_id", adminID),
		slog.String("scope", scope.Key()),
		slog.Bool("can_manage", canManage),
		slog.String("updated_by", actor.ID))
	return result, nil
}

// TransferOwnership moves scope ownership to another admin of the same scope
func (s *adminService) TransferOwnership(ctx context.Context, actor domain.Actor, scope domain.Scope, newOwnerID string) error {
	if err := scope.Validate(); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.ownerGrant(ctx, actor, scope); err != nil {
		return err
	}
	if actor.IsSelf(newOwnerID) {
		return apperrors.NewValidationFailedError("already the owner of this scope")
	}

	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		target, err := s.adminRepo.FindGrant(ctx, newOwnerID, scope)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("new owner must already belong to this scope")
			}
			return err
		}
		admin, err := s.adminRepo.FindAdminByID(ctx, newOwnerID)
		if err != nil {
			return err
		}
		if !admin.IsActive {
			return apperrors.NewValidationFailedError("new owner must be an active admin")
		}

		// Drop ownership everywhere in the scope first, then promote. Both
		// steps share the serializable transaction, so there is never a
		// moment with two owners visible. The new owner's manage flag is
		// forced true so a later relinquishment leaves them a plain manager.
		if err := s.adminRepo.ClearOwnership(ctx, scope); err != nil {
			return err
		}
		target.IsOwner = true
		target.CanManageAdmins = true
		return s.adminRepo.UpdateGrant(ctx, *target)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to transfer ownership",
			slog.String("scope", scope.Key()), slog.String("new_owner_id", newOwnerID))
		return err
	}

	s.LogInfo(ctx, "Ownership transferred",
		slog.String("scope", scope.Key()),
		slog.String("previous_owner", actor.ID),
		slog.String("new_owner", newOwnerID))
	return nil
}

// DeleteAdmin removes an admin's grant from the scope, and the account itself
// when that was its last grant
func (s *adminService) DeleteAdmin(ctx context.Context, actor domain.Actor, scope domain.Scope, adminID string) error {
	if err := scope.Validate(); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.authorizeManage(ctx, actor, scope); err != nil {
		return err
	}
	if actor.IsSelf(adminID) {
		return fmt.Errorf("%w: may not delete yourself", apperrors.ErrForbidden)
	}

	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		grant, err := s.adminRepo.FindGrant(ctx, adminID, scope)
		if err != nil {
			return err
		}
		if grant.IsOwner {
			return fmt.Errorf("%w: transfer ownership before deleting the owner", apperrors.ErrForbidden)
		}
		if err := s.adminRepo.DeleteGrant(ctx, adminID, scope); err != nil {
			return err
		}

		remaining, err := s.adminRepo.CountGrantsByAdmin(ctx, adminID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return s.adminRepo.DeleteAdmin(ctx, adminID)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete admin",
			slog.String("admin_id", adminID), slog.String("scope", scope.Key()))
		return err
	}

	s.LogInfo(ctx, "Admin removed from scope",
		slog.String("admin_id", adminID),
		slog.String("scope", scope.Key()),
		slog.String("removed_by", actor.ID))
	return nil
}
