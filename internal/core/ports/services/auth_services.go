package services

import (
	"context"
	"time"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// AuthSvcFacade defines authentication and scope-selection operations.
type AuthSvcFacade interface {
	// Login verifies credentials for the given tier and issues a token.
	// Employees log in with tier "employee" and a tenant slug.
	Login(ctx context.Context, tier domain.Tier, tenantSlug, loginID, password string) (string, time.Time, *domain.Actor, error)

	// SelectScope narrows a logged-in admin to one of its granted scopes and
	// issues a replacement token carrying that scope.
	SelectScope(ctx context.Context, actor domain.Actor, scope domain.Scope) (string, time.Time, *domain.Actor, error)

	// ListSelectableScopes returns the grants the admin can select between.
	ListSelectableScopes(ctx context.Context, actor domain.Actor) ([]domain.AdminGrant, error)

	// ChangePassword replaces the authenticated account's password after
	// confirming the current one. Works for admins and employees alike.
	ChangePassword(ctx context.Context, actor domain.Actor, currentPassword, newPassword string) error

	// ParseToken validates a token string and reconstructs the actor.
	ParseToken(ctx context.Context, token string) (*domain.Actor, error)

	// Bootstrap creates the very first system administrator when none exists.
	Bootstrap(ctx context.Context, loginID, name, email, password string) (*domain.Administrator, error)
}
