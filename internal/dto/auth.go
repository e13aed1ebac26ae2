package dto

import (
	"time"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// LoginRequest carries the credentials for any of the login gates. Employees
// pass tier "employee" together with their tenant's slug.
type LoginRequest struct {
	Tier       string `json:"tier" binding:"required"`
	TenantSlug string `json:"tenantSlug"`
	LoginID    string `json:"loginID" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// SelectScopeRequest narrows a multi-scope admin session to one granted scope.
type SelectScopeRequest struct {
	Scope ScopeRequest `json:"scope" binding:"required"`
}

// BootstrapRequest creates the very first system administrator.
type BootstrapRequest struct {
	LoginID  string `json:"loginID" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ChangePasswordRequest replaces the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// LoginResponse carries the issued token and the resolved actor.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Actor     domain.Actor `json:"actor"`
}

// ToLoginResponse assembles a LoginResponse from the auth service results.
func ToLoginResponse(token string, expiresAt time.Time, actor *domain.Actor) LoginResponse {
	return LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Actor:     *actor,
	}
}
