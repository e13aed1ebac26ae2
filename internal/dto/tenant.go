package dto

import (
	"time"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// FirstAdminRequest describes the owner account created together with a new
// tenant or store.
type FirstAdminRequest struct {
	LoginID  string `json:"loginID" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateTenantRequest defines the data needed to create a tenant.
type CreateTenantRequest struct {
	Name       string            `json:"name" binding:"required"`
	Slug       string            `json:"slug" binding:"required"`
	FirstAdmin FirstAdminRequest `json:"firstAdmin" binding:"required"`
}

// UpdateTenantRequest defines the profile fields allowed for updating a tenant.
type UpdateTenantRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

// UpdateAISettingsRequest replaces the tenant's text-completion configuration.
type UpdateAISettingsRequest struct {
	AIModel         string `json:"aiModel"`
	OpenAIAPIKey    string `json:"openaiAPIKey"`
	GoogleAPIKey    string `json:"googleAPIKey"`
	AnthropicAPIKey string `json:"anthropicAPIKey"`
}

// ToAISettings converts the request into domain AI settings.
func (r UpdateAISettingsRequest) ToAISettings() domain.AISettings {
	return domain.AISettings{
		AIModel:         r.AIModel,
		OpenAIAPIKey:    r.OpenAIAPIKey,
		GoogleAPIKey:    r.GoogleAPIKey,
		AnthropicAPIKey: r.AnthropicAPIKey,
	}
}

// DeleteTenantRequest carries the re-authentication password for tenant removal.
type DeleteTenantRequest struct {
	Password string `json:"password" binding:"required"`
}

// TenantResponse defines the data returned for a tenant. API keys are never
// echoed back; only whether AI assistance is configured.
type TenantResponse struct {
	TenantID     string    `json:"tenantID"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	IsActive     bool      `json:"isActive"`
	AIModel      string    `json:"aiModel,omitempty"`
	AIConfigured bool      `json:"aiConfigured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:     t.TenantID,
		Name:         t.Name,
		Slug:         t.Slug,
		IsActive:     t.IsActive,
		AIModel:      t.AIModel,
		AIConfigured: t.AISettings.Configured(),
		CreatedAt:    t.CreatedAt,
	}
}

// ListTenantsResponse wraps the list of tenants.
type ListTenantsResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// ToListTenantsResponse converts a slice of domain.Tenant to ListTenantsResponse DTO.
func ToListTenantsResponse(tenants []domain.Tenant) ListTenantsResponse {
	responses := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		responses[i] = ToTenantResponse(&t)
	}
	return ListTenantsResponse{Tenants: responses}
}

// CreateStoreRequest defines the data needed to create a store.
type CreateStoreRequest struct {
	Name       string            `json:"name" binding:"required"`
	Slug       string            `json:"slug" binding:"required"`
	FirstAdmin FirstAdminRequest `json:"firstAdmin" binding:"required"`
}

// UpdateStoreRequest defines the profile fields allowed for updating a store.
type UpdateStoreRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

// StoreResponse defines the data returned for a store.
type StoreResponse struct {
	StoreID   string    `json:"storeID"`
	TenantID  string    `json:"tenantID"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToStoreResponse converts a domain.Store to StoreResponse DTO.
func ToStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		StoreID:   s.StoreID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		Slug:      s.Slug,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// ListStoresResponse wraps the list of stores.
type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}

// ToListStoresResponse converts a slice of domain.Store to ListStoresResponse DTO.
func ToListStoresResponse(stores []domain.Store) ListStoresResponse {
	responses := make([]StoreResponse, len(stores))
	for i, s := range stores {
		responses[i] = ToStoreResponse(&s)
	}
	return ListStoresResponse{Stores: responses}
}
