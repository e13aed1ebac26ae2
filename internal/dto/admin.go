package dto

import (
	"time"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// ScopeRequest addresses one place in the admin hierarchy in request bodies.
type ScopeRequest struct {
	Tier     string `json:"tier" binding:"required"`
	TenantID string `json:"tenantID"`
	StoreID  string `json:"storeID"`
}

// ToScope converts the request fields into a domain scope.
func (s ScopeRequest) ToScope() domain.Scope {
	return domain.Scope{
		Tier:     domain.Tier(s.Tier),
		TenantID: s.TenantID,
		StoreID:  s.StoreID,
	}
}

// CreateAdminRequest defines the data needed to create an administrator and
// grant it into a scope.
type CreateAdminRequest struct {
	Scope           ScopeRequest `json:"scope" binding:"required"`
	LoginID         string       `json:"loginID" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Email           string       `json:"email" binding:"omitempty,email"`
	Password        string       `json:"password" binding:"required,min=8"`
	CanManageAdmins bool         `json:"canManageAdmins"`
}

// UpdateAdminRequest defines the profile fields allowed for updating an admin.
type UpdateAdminRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// SetPermissionRequest toggles the manage-admins flag of a grant.
type SetPermissionRequest struct {
	Scope           ScopeRequest `json:"scope" binding:"required"`
	CanManageAdmins *bool        `json:"canManageAdmins" binding:"required"`
}

// TransferOwnershipRequest hands scope ownership to another admin.
type TransferOwnershipRequest struct {
	Scope      ScopeRequest `json:"scope" binding:"required"`
	NewOwnerID string       `json:"newOwnerID" binding:"required"`
}

// ToggleActiveRequest identifies the scope the toggle is performed in.
type ToggleActiveRequest struct {
	Scope ScopeRequest `json:"scope" binding:"required"`
}

// AdminResponse defines the data returned for an administrator account.
type AdminResponse struct {
	AdminID   string    `json:"adminID"`
	LoginID   string    `json:"loginID"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Tier      string    `json:"tier"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAdminResponse converts a domain.Administrator to AdminResponse DTO.
func ToAdminResponse(a *domain.Administrator) AdminResponse {
	return AdminResponse{
		AdminID:   a.AdminID,
		LoginID:   a.LoginID,
		Name:      a.Name,
		Email:     a.Email,
		Tier:      string(a.Tier),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// GrantResponse defines the data returned for one scope membership.
type GrantResponse struct {
	AdminID         string       `json:"adminID"`
	AdminName       string       `json:"adminName,omitempty"`
	Scope           domain.Scope `json:"scope"`
	IsOwner         bool         `json:"isOwner"`
	CanManageAdmins bool         `json:"canManageAdmins"`
	CanManage       bool         `json:"canManage"`
	GrantedAt       time.Time    `json:"grantedAt"`
}

// ToGrantResponse converts a domain.AdminGrant to GrantResponse DTO.
func ToGrantResponse(g *domain.AdminGrant) GrantResponse {
	return GrantResponse{
		AdminID:         g.AdminID,
		AdminName:       g.AdminName,
		Scope:           g.Scope,
		IsOwner:         g.IsOwner,
		CanManageAdmins: g.CanManageAdmins,
		CanManage:       g.CanManage(),
		GrantedAt:       g.GrantedAt,
	}
}

// ListGrantsResponse wraps the grants of one scope.
type ListGrantsResponse struct {
	Admins []GrantResponse `json:"admins"`
}

// ToListGrantsResponse converts a slice of domain.AdminGrant to ListGrantsResponse DTO.
func ToListGrantsResponse(grants []domain.AdminGrant) ListGrantsResponse {
	responses := make([]GrantResponse, len(grants))
	for i, g := range grants {
		responses[i] = ToGrantResponse(&g)
	}
	return ListGrantsResponse{Admins: responses}
}
