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

// storeService implements the StoreSvcFacade interface
type storeService struct {
	BaseService
	storeRepo portsrepo.StoreRepositoryFacade
	adminRepo portsrepo.AdminRepositoryWithTx
}

// NewStoreService creates a new store service with the provided dependencies
func NewStoreService(storeRepo portsrepo.StoreRepositoryFacade, adminRepo portsrepo.AdminRepositoryWithTx) portssvc.StoreSvcFacade {
	return &storeService{storeRepo: storeRepo, adminRepo: adminRepo}
}

var _ portssvc.StoreSvcFacade = (*storeService)(nil)

// requireStoreAccess allows system admins everywhere, tenant admins within
// their tenant, and store admins only in their selected store.
func requireStoreAccess(actor domain.Actor, store *domain.Store) error {
	switch actor.Tier {
	case domain.TierSystem:
		return nil
	case domain.TierTenant:
		if actor.TenantID == store.TenantID {
			return nil
		}
	case domain.TierStore:
		if actor.StoreID == store.StoreID {
			return nil
		}
	}
	return fmt.Errorf("%w: no access to this store", apperrors.ErrForbidden)
}

// GetStore retrieves a store the actor may see
func (s *storeService) GetStore(ctx context.Context, actor domain.Actor, storeID string) (*domain.Store, error) {
	store, err := s.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find store", slog.String("store_id", storeID))
		}
		return nil, err
	}
	if err := requireStoreAccess(actor, store); err != nil {
		return nil, err
	}
	return store, nil
}

// ListStores retrieves the stores of a tenant
func (s *storeService) ListStores(ctx context.Context, actor domain.Actor, tenantID string, includeInactive bool) ([]domain.Store, error) {
	if err := requireTenantAccess(actor, tenantID); err != nil {
		return nil, err
	}
	stores, err := s.storeRepo.ListStoresByTenant(ctx, tenantID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stores", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if stores == nil {
		stores = []domain.Store{}
	}
	return stores, nil
}

// CreateStore creates a store together with its first store admin
func (s *storeService) CreateStore(ctx context.Context, actor domain.Actor, tenantID, name, slug string, firstAdmin domain.Administrator, password string) (*domain.Store, error) {
	if err := requireTenantAccess(actor, tenantID); err != nil {
		return nil, err
	}
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant); err != nil {
		return nil, err
	}
	if name == "" || slug == "" {
		return nil, apperrors.NewValidationFailedError("store name and slug are required")
	}

	now := time.Now()
	store := domain.Store{
		StoreID:  uuid.NewString(),
		TenantID: tenantID,
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
	if err := s.storeRepo.SaveStore(ctx, store); err != nil {
		s.LogError(ctx, err, "Failed to save store", slog.String("slug", slug))
		return nil, err
	}

	// The first store admin owns the new store scope.
	scope := domain.StoreScope(tenantID, store.StoreID)
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
			Tier:         domain.TierStore,
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
		s.LogError(ctx, err, "Failed to create first store admin", slog.String("store_id", store.StoreID))
		return nil, err
	}

	s.LogInfo(ctx, "Store created",
		slog.String("store_id", store.StoreID),
		slog.String("tenant_id", tenantID),
		slog.String("created_by", actor.ID))
	return &store, nil
}

// UpdateStore updates a store's profile fields
func (s *storeService) UpdateStore(ctx context.Context, actor domain.Actor, storeID, name string, isActive bool) (*domain.Store, error) {
	store, err := s.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := requireStoreAccess(actor, store); err != nil {
		return nil, err
	}
	if name != "" {
		store.Name = name
	}
	store.IsActive = isActive
	store.LastUpdatedAt = time.Now()
	store.LastUpdatedBy = actor.ID

	if err := s.storeRepo.UpdateStore(ctx, *store); err != nil {
		s.LogError(ctx, err, "Failed to update store", slog.String("store_id", storeID))
		return nil, err
	}
	return store, nil
}

// DeleteStore removes a store and its grants
func (s *storeService) DeleteStore(ctx context.Context, actor domain.Actor, storeID string) error {
	store, err := s.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return err
	}
	if err := actor.Authorize(domain.TierSystem, domain.TierTenant); err != nil {
		return err
	}
	if err := requireStoreAccess(actor, store); err != nil {
		return err
	}

	if err := s.storeRepo.DeleteStore(ctx, storeID); err != nil {
		s.LogError(ctx, err, "Failed to delete store", slog.String("store_id", storeID))
		return err
	}

	s.LogInfo(ctx, "Store deleted",
		slog.String("store_id", storeID),
		slog.String("deleted_by", actor.ID))
	return nil
}
