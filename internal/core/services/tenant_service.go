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

// tenantService implements the TenantSvcFacade interface
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
	adminRepo  portsrepo.AdminRepositoryWithTx
}

// NewTenantService creates a new tenant service with the provided dependencies
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade, adminRepo portsrepo.AdminRepositoryWithTx) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo, adminRepo: adminRepo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// requireTenantAccess allows system admins everywhere and tenant admins only
// in their selected tenant.
func requireTenantAccess(actor domain.Actor, tenantID string) error {
	if actor.Tier == domain.TierSystem {
		return nil
	}
	if actor.Tier == domain.TierTenant && actor.TenantID == tenantID {
		return nil
	}
	return fmt.Errorf("%w: no access to this tenant", apperrors.ErrForbidden)
}

// GetTenant retrieves a tenant the actor may see
func (s *tenantService) GetTenant(ctx context.Context, actor domain.Actor, tenantID string) (*domain.Tenant, error) {
	if err := requireTenantAccess(actor, tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tenant", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}
	return tenant, nil
}

// ListTenants retrieves all tenants
func (s *tenantService) ListTenants(ctx context.Context, actor domain.Actor, includeInactive bool) ([]domain.Tenant, error) {
	if err := actor.Authorize(domain.TierSystem); err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.ListTenants(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants")
		return nil, err
	}
	if tenants == nil {
		tenants = []domain.Tenant{}
	}
	return tenants, nil
}

// CreateTenant creates a tenant together with its first tenant admin
func (s *tenantService) CreateTenant(ctx context.Context, actor domain.Actor, name, slug string, firstAdmin domain.Administrator, password string) (*domain.Tenant, error) {
	if err := actor.Authorize(domain.TierSystem); err != nil {
		return nil, err
	}
	if name == "" || slug == "" {
		return nil, apperrors.NewValidationFailedError("tenant name and slug are required")
	}

	now := time.Now()
	tenant := domain.Tenant{
		TenantID: uuid.NewString(),
		Name:     name,
		Slug:     slug,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}
	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant", slog.String("slug", slug))
		return nil, err
	}

	// The first tenant admin owns the new tenant scope.
	scope := domain.TenantScope(tenant.TenantID)
	err := s.adminRepo.InScopeTx(ctx, scope, func(ctx context.Context) error {
		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		admin := domain.Administrator{
			AdminID:      uuid.NewString(),
			LoginID:      firstAdmin.LoginID,
			Name:         firstAdmin.Name,
			Email:        firstAdmin.Email,
			PasswordHash: hash,
			Tier:         domain.TierTenant,
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.ID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.ID,
			},
		}
		if err := s.adminRepo.SaveAdmin(ctx, admin); err != nil {
			return err
		}
		return s.adminRepo.SaveGrant(ctx, domain.AdminGrant{
			AdminID:         admin.AdminID,
			Scope:           scope,
			IsOwner:         true,
			CanManageAdmins: true,
			GrantedAt:       now,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create first tenant admin",
			slog.String("tenant_id", tenant.TenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Tenant created",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("slug", slug),
		slog.String("created_by", actor.ID))
	return &tenant, nil
}

// UpdateTenant updates a tenant's profile fields
func (s *tenantService) UpdateTenant(ctx context.Context, actor domain.Actor, tenantID, name string, isActive bool) (*domain.Tenant, error) {
	if err := actor.Authorize(domain.TierSystem); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		tenant.Name = name
	}
	tenant.IsActive = isActive
	tenant.LastUpdatedAt = time.Now()
	tenant.LastUpdatedBy = actor.ID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update tenant", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return tenant, nil
}

// UpdateAISettings replaces the tenant's text-completion configuration
func (s *tenantService) UpdateAISettings(ctx context.Context, actor domain.Actor, tenantID string, settings domain.AISettings) (*domain.Tenant, error) {
	if err := requireTenantAccess(actor, tenantID); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	tenant.AISettings = settings
	tenant.LastUpdatedAt = time.Now()
	tenant.LastUpdatedBy = actor.ID

	if err := s.tenantRepo.UpdateTenant(ctx, *tenant); err != nil {
		s.LogError(ctx, err, "Failed to update AI settings", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "AI settings updated",
		slog.String("tenant_id", tenantID),
		slog.String("model", settings.AIModel),
		slog.String("updated_by", actor.ID))
	return tenant, nil
}

// DeleteTenant removes the tenant and everything under it. The acting system
// admin re-authenticates with their password before the cascade runs.
func (s *tenantService) DeleteTenant(ctx context.Context, actor domain.Actor, tenantID, password string) error {
	if err := actor.Authorize(domain.TierSystem); err != nil {
		return err
	}
	acting, err := s.adminRepo.FindAdminByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(password, acting.PasswordHash) {
		return fmt.Errorf("%w: password confirmation failed", apperrors.ErrForbidden)
	}
	if _, err := s.tenantRepo.FindTenantByID(ctx, tenantID); err != nil {
		return err
	}

	if err := s.tenantRepo.DeleteTenantCascade(ctx, tenantID); err != nil {
		s.LogError(ctx, err, "Failed to delete tenant", slog.String("tenant_id", tenantID))
		return err
	}

	s.LogInfo(ctx, "Tenant deleted",
		slog.String("tenant_id", tenantID),
		slog.String("deleted_by", actor.ID))
	return nil
}
